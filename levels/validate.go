package levels

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownScene  = errors.New("levels: unknown scene")
	ErrInvalidConfig = errors.New("levels: invalid scene config")
)

// MaxCharacterCode is the highest cell value a character matrix may hold.
const MaxCharacterCode = 7

// Validate checks grid dimensions and cross references. Every problem is
// reported; the result wraps ErrInvalidConfig.
func Validate(s *Scene) error {
	if s == nil {
		return fmt.Errorf("%w: nil scene", ErrInvalidConfig)
	}

	var errs []error
	if !s.Tag.Valid() {
		errs = append(errs, fmt.Errorf("%w %q", ErrUnknownScene, s.Tag))
	}
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", s.Width, s.Height))
	}

	errs = append(errs, checkGrid("doors", s.Doors.Grid, s.Width, s.Height, func(v int) error {
		if v == 0 {
			return nil
		}
		code := DoorCode(v)
		if _, ok := TagForCode(code); !ok {
			return fmt.Errorf("unknown door code %d", v)
		}
		if _, ok := s.Doors.Spawns[code]; !ok {
			return fmt.Errorf("door code %d has no spawn", v)
		}
		return nil
	})...)

	errs = append(errs, checkGrid("boundaries", s.Boundaries, s.Width, s.Height, func(v int) error {
		if v != 0 && v != 1 {
			return fmt.Errorf("boundary cell must be 0 or 1, got %d", v)
		}
		return nil
	})...)

	errs = append(errs, checkGrid("characters", s.Characters, s.Width, s.Height, func(v int) error {
		if v < 0 || v > MaxCharacterCode {
			return fmt.Errorf("unknown character code %d", v)
		}
		return nil
	})...)

	for code := range s.Doors.Spawns {
		if _, ok := TagForCode(code); !ok {
			errs = append(errs, fmt.Errorf("spawn for unknown door code %d", code))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w %s: %w", ErrInvalidConfig, s.Tag, errors.Join(errs...))
}

// checkGrid validates shape and cells of an optional grid. A nil grid is
// allowed and means "empty".
func checkGrid(name string, grid [][]int, width, height int, cell func(int) error) []error {
	if grid == nil {
		return nil
	}
	var errs []error
	if len(grid) != height {
		errs = append(errs, fmt.Errorf("%s: %d rows, want %d", name, len(grid), height))
	}
	for r, row := range grid {
		if len(row) != width {
			errs = append(errs, fmt.Errorf("%s: row %d has %d cells, want %d", name, r, len(row), width))
		}
		for c, v := range row {
			if err := cell(v); err != nil {
				errs = append(errs, fmt.Errorf("%s: row %d col %d: %w", name, r, c, err))
			}
		}
	}
	return errs
}
