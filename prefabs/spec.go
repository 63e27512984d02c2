package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name        string          `yaml:"name"`
	WalkSpeed   float64         `yaml:"walk_speed"`
	RunSpeed    float64         `yaml:"run_speed"`
	AnimRates   AnimRatesSpec   `yaml:"anim_rates"`
	Transform   TransformSpec   `yaml:"transform"`
	Collider    ColliderSpec    `yaml:"collider"`
	Sprite      SpriteSpec      `yaml:"sprite"`
	Sheet       SheetSpec       `yaml:"sheet"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

// AnimRatesSpec scales the sheet FPS per locomotion state.
type AnimRatesSpec struct {
	Idle float64 `yaml:"idle"`
	Walk float64 `yaml:"walk"`
	Run  float64 `yaml:"run"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CameraSpec struct {
	Name   string  `yaml:"name"`
	Target string  `yaml:"target"`
	Zoom   float64 `yaml:"zoom"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Inflation modes for the culling window membership test.
const (
	InflationSymmetric = "symmetric"
	InflationReference = "reference"
)

type CullingSpec struct {
	WindowSize float64 `yaml:"window_size"`
	Inflation  string  `yaml:"inflation"`
}

func LoadCullingSpec() (*CullingSpec, error) {
	spec, err := LoadSpec[CullingSpec]("culling.yaml")
	if err != nil {
		return nil, err
	}
	if spec.WindowSize <= 0 {
		spec.WindowSize = 100
	}
	switch spec.Inflation {
	case "":
		spec.Inflation = InflationSymmetric
	case InflationSymmetric, InflationReference:
	default:
		return nil, fmt.Errorf("prefabs: culling.yaml: unknown inflation %q", spec.Inflation)
	}
	return &spec, nil
}

type CharactersSpec struct {
	// Kinds is indexed by the character matrix cell code.
	Kinds        map[int]CharacterKindSpec `yaml:"kinds"`
	Collider     ColliderSpec              `yaml:"collider"`
	RenderLayer  RenderLayerSpec           `yaml:"render_layer"`
	ScriptPeriod int                       `yaml:"script_period"`
	// Character sheets hold one frame per facing, in Facing order.
	FrameW int `yaml:"frame_w"`
	FrameH int `yaml:"frame_h"`
}

type CharacterKindSpec struct {
	Name   string     `yaml:"name"`
	Sprite SpriteSpec `yaml:"sprite"`
	Facing string     `yaml:"facing"`
	Script string     `yaml:"script"`
	Tint   *YAMLColor `yaml:"tint"`
}

func LoadCharactersSpec() (*CharactersSpec, error) {
	spec, err := LoadSpec[CharactersSpec]("characters.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type ColliderSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offsetX"`
	OffsetY float64 `yaml:"offsetY"`
}

type SpriteSpec struct {
	Image     string  `yaml:"image"`
	UseSource bool    `yaml:"use_source"`
	OriginX   float64 `yaml:"origin_x"`
	OriginY   float64 `yaml:"origin_y"`
}

// SheetSpec describes a grid sprite sheet where clip i occupies row i.
type SheetSpec struct {
	Image   string   `yaml:"image"`
	Columns int      `yaml:"columns"`
	Rows    int      `yaml:"rows"`
	FrameW  int      `yaml:"frame_w"`
	FrameH  int      `yaml:"frame_h"`
	FPS     float64  `yaml:"fps"`
	Loop    bool     `yaml:"loop"`
	Clips   []string `yaml:"clips"`
	Initial string   `yaml:"initial"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
