package system

import (
	"fmt"
	"log"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/doodler/common"
	"github.com/milk9111/doodler/prefabs"
)

// DifficultyCurve maps a score to a difficulty factor in [0, 1]. It must be
// non-decreasing in score.
type DifficultyCurve interface {
	Factor(score int) float64
}

// LinearDifficulty is min(score/SaturateAt, 1).
type LinearDifficulty struct {
	SaturateAt float64
}

func (d LinearDifficulty) Factor(score int) float64 {
	if d.SaturateAt <= 0 {
		return 1
	}
	return clamp01(float64(score) / d.SaturateAt)
}

// ScriptDifficulty evaluates a tengo script that reads `score` and
// `saturate_at` and assigns `factor`. Script errors fall back to the linear
// curve.
type ScriptDifficulty struct {
	name     string
	compiled *tengo.Compiled
	fallback LinearDifficulty
	last     int
	lastOK   bool
	lastF    float64
}

func NewScriptDifficulty(name string, src []byte, saturateAt float64) (*ScriptDifficulty, error) {
	script := tengo.NewScript(src)
	_ = script.Add("score", 0)
	_ = script.Add("saturate_at", saturateAt)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("difficulty: compile %s: %w", name, err)
	}

	return &ScriptDifficulty{
		name:     name,
		compiled: compiled,
		fallback: LinearDifficulty{SaturateAt: saturateAt},
	}, nil
}

// LoadScriptDifficulty compiles the script named in spec, or returns the
// linear curve when none is configured.
func LoadScriptDifficulty(spec prefabs.DifficultySpec) (DifficultyCurve, error) {
	linear := LinearDifficulty{SaturateAt: spec.SaturateAt}
	if spec.Script == "" {
		return linear, nil
	}
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return linear, fmt.Errorf("difficulty: load %s: %w", spec.Script, err)
	}
	curve, err := NewScriptDifficulty(spec.Script, src, spec.SaturateAt)
	if err != nil {
		return linear, err
	}
	return curve, nil
}

func (d *ScriptDifficulty) Factor(score int) float64 {
	if d.lastOK && d.last == score {
		return d.lastF
	}

	f, err := d.run(score)
	if err != nil {
		log.Printf("difficulty: %s: %v", d.name, err)
		f = d.fallback.Factor(score)
	}
	d.last, d.lastF, d.lastOK = score, f, true
	return f
}

func (d *ScriptDifficulty) run(score int) (float64, error) {
	if err := d.compiled.Set("score", score); err != nil {
		return 0, err
	}
	if err := d.compiled.Run(); err != nil {
		return 0, err
	}
	if !d.compiled.IsDefined("factor") {
		return 0, fmt.Errorf("script does not define factor")
	}
	f := d.compiled.Get("factor").Float()
	if math.IsNaN(f) {
		return 0, fmt.Errorf("factor is NaN")
	}
	return clamp01(f), nil
}

func clamp01(v float64) float64 {
	return common.Clamp(v, 0, 1)
}
