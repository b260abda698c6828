package prefabs

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// SpecCache memoises parsed entity prefabs. The generator spawns entities
// every few ticks, so prefabs are parsed once and invalidated by the watcher.
type SpecCache struct {
	mu    sync.Mutex
	specs map[string]EntityBuildSpec
}

func NewSpecCache() *SpecCache {
	return &SpecCache{specs: make(map[string]EntityBuildSpec)}
}

func (c *SpecCache) Get(filename string) (EntityBuildSpec, error) {
	key := cleanPrefabPath(filename)
	c.mu.Lock()
	defer c.mu.Unlock()
	if spec, ok := c.specs[key]; ok {
		return spec, nil
	}
	spec, err := LoadEntityBuildSpec(key)
	if err != nil {
		return EntityBuildSpec{}, err
	}
	if len(spec.Components) == 0 {
		return EntityBuildSpec{}, fmt.Errorf("prefabs: %s does not define components", key)
	}
	c.specs[key] = spec
	return spec, nil
}

// Invalidate drops one prefab, or every prefab when filename is empty.
func (c *SpecCache) Invalidate(filename string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if filename == "" {
		clear(c.specs)
		return
	}
	delete(c.specs, cleanPrefabPath(filename))
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type VelocityComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	// RandomSignX flips X with probability one half at spawn.
	RandomSignX bool `yaml:"random_sign_x"`
}

type BodyComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type DoodlerComponentSpec struct {
	Gravity         float64 `yaml:"gravity"`
	JumpImpulse     float64 `yaml:"jump_impulse"`
	MoveSpeed       float64 `yaml:"move_speed"`
	JetpackSpeed    float64 `yaml:"jetpack_speed"`
	JetpackFrames   int     `yaml:"jetpack_frames"`
	PropellerSpeed  float64 `yaml:"propeller_speed"`
	PropellerFrames int     `yaml:"propeller_frames"`
	FireInterval    int     `yaml:"fire_interval"`
}

type PlatformComponentSpec struct {
	Kind          string  `yaml:"kind"`
	MoveSpeed     float64 `yaml:"move_speed"`
	BreakVelocity float64 `yaml:"break_velocity"`
	FallGravity   float64 `yaml:"fall_gravity"`
}

type HazardComponentSpec struct {
	Kind       string  `yaml:"kind"`
	KillScore  int     `yaml:"kill_score"`
	Spin       float64 `yaml:"spin"`
	LightSpeed float64 `yaml:"light_speed"`
}

type PickupComponentSpec struct {
	Kind  string  `yaml:"kind"`
	Boost float64 `yaml:"boost"`
}

type ProjectileComponentSpec struct {
	Ceiling float64 `yaml:"ceiling"`
}

type ParticleComponentSpec struct {
	LifeMin  int     `yaml:"life_min"`
	LifeMax  int     `yaml:"life_max"`
	SpeedMin float64 `yaml:"speed_min"`
	SpeedMax float64 `yaml:"speed_max"`
	SizeMin  float64 `yaml:"size_min"`
	SizeMax  float64 `yaml:"size_max"`
	Shrink   float64 `yaml:"shrink"`
	Gravity  float64 `yaml:"gravity"`
}
