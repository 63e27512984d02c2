package levels

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var LevelsFS embed.FS

// DiskDir is checked before the embedded copies, so edited scene files take
// effect without a rebuild.
var DiskDir = "levels"

// Read returns the raw YAML for tag, preferring the disk copy.
func Read(tag Tag) ([]byte, error) {
	if !tag.Valid() {
		return nil, fmt.Errorf("%w %q", ErrUnknownScene, tag)
	}
	name := fileName(tag)
	if data, err := os.ReadFile(filepath.Join(DiskDir, name)); err == nil {
		return data, nil
	}
	return LevelsFS.ReadFile(name)
}

// Load reads, parses and validates one scene.
func Load(tag Tag) (*Scene, error) {
	data, err := Read(tag)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", tag, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: parse %s: %w", tag, err)
	}
	if s.Tag == "" {
		s.Tag = tag
	}
	if s.Tag != tag {
		return nil, fmt.Errorf("levels: %s.yaml declares tag %q: %w", tag, s.Tag, ErrInvalidConfig)
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadAll loads every known scene. Errors for individual scenes are joined.
func LoadAll() (map[Tag]*Scene, error) {
	scenes := make(map[Tag]*Scene, len(Tags))
	var errs []error
	for _, tag := range Tags {
		s, err := Load(tag)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenes[tag] = s
	}
	return scenes, errors.Join(errs...)
}

// LoadFile parses and validates a scene file at an arbitrary path.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: parse %s: %w", path, err)
	}
	if s.Tag == "" {
		s.Tag = TagForPath(path)
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// TagForPath maps "levels/block-a.yaml" to BlockA. Unknown names return "".
func TagForPath(path string) Tag {
	base := filepath.Base(filepath.ToSlash(path))
	tag := Tag(strings.TrimSuffix(base, filepath.Ext(base)))
	if !tag.Valid() {
		return ""
	}
	return tag
}

// IsSceneFile reports whether path looks like a scene YAML file.
func IsSceneFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return (ext == ".yaml" || ext == ".yml") && TagForPath(path) != ""
}

func fileName(tag Tag) string {
	return string(tag) + ".yaml"
}
