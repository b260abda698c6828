package system

import (
	"math"
	"testing"

	"github.com/milk9111/doodler/prefabs"
)

func TestLinearDifficulty(t *testing.T) {
	d := LinearDifficulty{SaturateAt: 5000}
	cases := []struct {
		score int
		want  float64
	}{
		{0, 0},
		{2500, 0.5},
		{5000, 1},
		{12000, 1},
	}
	for _, c := range cases {
		if got := d.Factor(c.score); got != c.want {
			t.Fatalf("score %d: expected %v, got %v", c.score, c.want, got)
		}
	}

	prev := -1.0
	for s := 0; s <= 6000; s += 37 {
		f := d.Factor(s)
		if f < prev || f < 0 || f > 1 {
			t.Fatalf("score %d: factor %v not monotonic in [0,1]", s, f)
		}
		prev = f
	}
}

func TestScriptDifficultyMatchesLinear(t *testing.T) {
	curve, err := LoadScriptDifficulty(prefabs.DifficultySpec{SaturateAt: 5000, Script: "difficulty.tengo"})
	if err != nil {
		t.Fatalf("LoadScriptDifficulty: %v", err)
	}
	if _, ok := curve.(*ScriptDifficulty); !ok {
		t.Fatalf("expected a script curve, got %T", curve)
	}
	linear := LinearDifficulty{SaturateAt: 5000}
	for _, s := range []int{0, 1, 999, 2500, 4999, 5000, 5001, 100000} {
		if got, want := curve.Factor(s), linear.Factor(s); math.Abs(got-want) > 1e-9 {
			t.Fatalf("score %d: script %v, linear %v", s, got, want)
		}
	}
}

func TestScriptDifficultyClamps(t *testing.T) {
	d, err := NewScriptDifficulty("test", []byte("factor := float(score) / 10.0"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Factor(50); got != 1 {
		t.Fatalf("expected clamp to 1, got %v", got)
	}
	if got := d.Factor(-50); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
}

func TestScriptDifficultyFallback(t *testing.T) {
	d, err := NewScriptDifficulty("test", []byte(`x := 1`), 5000)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Factor(2500); got != 0.5 {
		t.Fatalf("missing factor should fall back to linear, got %v", got)
	}

	if _, err := NewScriptDifficulty("test", []byte("factor := ("), 5000); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestLoadScriptDifficultyWithoutScript(t *testing.T) {
	curve, err := LoadScriptDifficulty(prefabs.DifficultySpec{SaturateAt: 100})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := curve.(LinearDifficulty); !ok {
		t.Fatalf("expected linear curve, got %T", curve)
	}
}
