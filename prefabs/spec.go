package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// LoadSpec reads and decodes a yaml prefab into T.
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

// ChanceSpec is a spawn probability that grows linearly with difficulty:
// base + scale*factor.
type ChanceSpec struct {
	Base  float64 `yaml:"base"`
	Scale float64 `yaml:"scale"`
}

// At returns the probability for a difficulty factor in [0, 1].
func (c ChanceSpec) At(factor float64) float64 {
	return c.Base + c.Scale*factor
}

// PlatformRuleSpec picks a platform kind. Rules are listed in priority order.
type PlatformRuleSpec struct {
	Kind   string     `yaml:"kind"`
	Chance ChanceSpec `yaml:"chance"`
}

// BuddySpec describes the extra static platform placed next to a new one.
type BuddySpec struct {
	Chance   float64  `yaml:"chance"`
	Jitter   float64  `yaml:"jitter"`
	ForceFor []string `yaml:"force_for"`
}

// SpawnRuleSpec places one hazard or pickup near a new platform. The first
// rule whose draw succeeds wins.
type SpawnRuleSpec struct {
	Prefab string     `yaml:"prefab"`
	Chance ChanceSpec `yaml:"chance"`
	// Anchor is "platform" (x relative to the new platform) or "random"
	// (x uniform in [0, viewport width - margin)).
	Anchor  string  `yaml:"anchor"`
	Margin  float64 `yaml:"margin"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type DifficultySpec struct {
	SaturateAt float64 `yaml:"saturate_at"`
	Script     string  `yaml:"script"`
}

type GeneratorSpec struct {
	GapMin        float64            `yaml:"gap_min"`
	GapMax        float64            `yaml:"gap_max"`
	PlatformWidth float64            `yaml:"platform_width"`
	FirstOffset   float64            `yaml:"first_offset"`
	RefillMargin  float64            `yaml:"refill_margin"`
	Difficulty    DifficultySpec     `yaml:"difficulty"`
	PlatformRules []PlatformRuleSpec `yaml:"platform_rules"`
	Buddy         BuddySpec          `yaml:"buddy"`
	SpawnRules    []SpawnRuleSpec    `yaml:"spawn_rules"`
}

func LoadGeneratorSpec() (*GeneratorSpec, error) {
	spec, err := LoadSpec[GeneratorSpec]("generator.yaml")
	if err != nil {
		return nil, err
	}
	if spec.GapMin <= 0 || spec.GapMax < spec.GapMin {
		return nil, fmt.Errorf("prefabs: generator.yaml: invalid gap range [%v, %v]", spec.GapMin, spec.GapMax)
	}
	return &spec, nil
}

// WorldSpec holds the logical viewport and scoring constants.
type WorldSpec struct {
	Width        float64   `yaml:"width"`
	Height       float64   `yaml:"height"`
	SpawnOffsetY float64   `yaml:"spawn_offset_y"`
	LethalInset  float64   `yaml:"lethal_inset"`
	Background   YAMLColor `yaml:"background"`
	GridColor    YAMLColor `yaml:"grid_color"`
	GridSize     float64   `yaml:"grid_size"`
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec]("world.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("prefabs: world.yaml: invalid viewport %vx%v", spec.Width, spec.Height)
	}
	return &spec, nil
}

// YAMLColor decodes "#rrggbb", "#rrggbbaa" or an SVG colour name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// RGBA8 returns the colour as non-premultiplied RGBA, black when unset.
func (c YAMLColor) RGBA8() color.RGBA {
	if c.Color == nil {
		return color.RGBA{A: 0xff}
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}

func ParseColor(v string) (color.Color, error) {
	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(v))]; ok {
		return named, nil
	}

	s := strings.TrimPrefix(v, "#")

	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	r, err := parse(0)
	if err != nil {
		return nil, err
	}
	g, err := parse(2)
	if err != nil {
		return nil, err
	}
	b, err := parse(4)
	if err != nil {
		return nil, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return nil, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// BurstSpec is one particle burst: colour and particle count.
type BurstSpec struct {
	Color YAMLColor `yaml:"color"`
	Count int       `yaml:"count"`
}

type EffectsSpec struct {
	Bursts map[string]BurstSpec `yaml:"bursts"`
}

func LoadEffectsSpec() (*EffectsSpec, error) {
	spec, err := LoadSpec[EffectsSpec]("effects.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Burst returns the named burst, falling back to ten white particles.
func (s *EffectsSpec) Burst(name string) BurstSpec {
	if s != nil {
		if b, ok := s.Bursts[name]; ok {
			if b.Count <= 0 {
				b.Count = 10
			}
			return b
		}
	}
	return BurstSpec{Color: YAMLColor{Color: color.White}, Count: 10}
}
