package system

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
	"github.com/milk9111/doodler/ecs/entity"
	"github.com/milk9111/doodler/prefabs"
)

func newTestGenerator(t *testing.T, seed uint64, spec *prefabs.GeneratorSpec) *Generator {
	t.Helper()
	if spec == nil {
		var err error
		spec, err = prefabs.LoadGeneratorSpec()
		if err != nil {
			t.Fatalf("LoadGeneratorSpec: %v", err)
		}
	}
	f := entity.NewFactory(prefabs.NewSpecCache(), rand.New(rand.NewPCG(seed, seed+1)))
	g, err := NewGenerator(testViewport, spec, f, LinearDifficulty{SaturateAt: 5000})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g
}

func TestGenerateInitialLevel(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		g := newTestGenerator(t, seed, nil)
		w := ecs.NewWorld()
		if err := g.GenerateInitialLevel(w, 0); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if g.Cursor() > 0 {
			t.Fatalf("seed %d: cursor %v still on screen", seed, g.Cursor())
		}
		// every step advances at least 50 units: at most 12 rows for 600
		platforms := ecs.Count(w, component.PlatformComponent.Kind())
		if platforms < 1+6 || platforms > 1+2*12 {
			t.Fatalf("seed %d: unexpected platform count %d", seed, platforms)
		}
	}
}

func TestInitialPlatformUnderPlayer(t *testing.T) {
	g := newTestGenerator(t, 3, nil)
	w := ecs.NewWorld()
	if err := g.GenerateInitialLevel(w, 0); err != nil {
		t.Fatal(err)
	}
	found := false
	ecs.ForEach2(w, component.PlatformComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Platform, tr *component.Transform) {
		if tr.X == 170 && tr.Y == 550 && p.Kind == component.PlatformStatic {
			found = true
		}
	})
	if !found {
		t.Fatal("expected static starting platform at (170, 550)")
	}
}

func TestGeneratorGapBounds(t *testing.T) {
	g := newTestGenerator(t, 9, nil)
	w := ecs.NewWorld()
	g.cursor = 0
	for i := 0; i < 500; i++ {
		before := g.Cursor()
		if err := g.GenerateSingleLevel(w, 0); err != nil {
			t.Fatal(err)
		}
		gap := before - g.Cursor()
		if gap < 50 || gap > 100 {
			t.Fatalf("row %d: gap %v outside [50, 100]", i, gap)
		}
	}
}

func TestRefillAndShift(t *testing.T) {
	g := newTestGenerator(t, 4, nil)
	w := ecs.NewWorld()
	if err := g.GenerateInitialLevel(w, 0); err != nil {
		t.Fatal(err)
	}
	g.Shift(300)
	if g.Cursor() <= 0 {
		t.Fatalf("shift should move the cursor down, got %v", g.Cursor())
	}
	n, err := g.Refill(w, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 || g.Cursor() > -100 {
		t.Fatalf("refill generated %d rows, cursor %v", n, g.Cursor())
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	positions := func() []float64 {
		g := newTestGenerator(t, 42, nil)
		w := ecs.NewWorld()
		if err := g.GenerateInitialLevel(w, 1000); err != nil {
			t.Fatal(err)
		}
		var out []float64
		ecs.ForEach(w, component.TransformComponent.Kind(), func(_ ecs.Entity, tr *component.Transform) {
			out = append(out, tr.X, tr.Y)
		})
		return out
	}
	a, b := positions(), positions()
	if len(a) != len(b) {
		t.Fatalf("different entity counts %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different layouts at %d", i)
		}
	}
}

func TestForcedBuddy(t *testing.T) {
	spec := &prefabs.GeneratorSpec{
		GapMin:        50,
		GapMax:        100,
		PlatformWidth: 60,
		RefillMargin:  100,
		PlatformRules: []prefabs.PlatformRuleSpec{{Kind: "disappearing", Chance: prefabs.ChanceSpec{Base: 1}}},
		Buddy:         prefabs.BuddySpec{Chance: 0, Jitter: 20, ForceFor: []string{"disappearing"}},
	}
	g := newTestGenerator(t, 5, spec)
	stats, err := g.Sample(50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Platforms["disappearing"] != 50 || stats.Platforms["static"] != 50 {
		t.Fatalf("expected a static buddy for every disappearing platform, got %v", stats.Platforms)
	}
	if len(stats.Extras) != 0 {
		t.Fatalf("no spawn rules means no extras, got %v", stats.Extras)
	}
}

func TestBuddyPlacement(t *testing.T) {
	spec := &prefabs.GeneratorSpec{
		GapMin:        50,
		GapMax:        50,
		PlatformWidth: 60,
		Buddy:         prefabs.BuddySpec{Chance: 1, Jitter: 20},
	}
	g := newTestGenerator(t, 6, spec)
	w := ecs.NewWorld()
	g.cursor = 0
	if err := g.GenerateSingleLevel(w, 0); err != nil {
		t.Fatal(err)
	}

	var xs, ys []float64
	ecs.ForEach(w, component.TransformComponent.Kind(), func(_ ecs.Entity, tr *component.Transform) {
		xs = append(xs, tr.X)
		ys = append(ys, tr.Y)
	})
	if len(xs) != 2 {
		t.Fatalf("expected main and buddy platform, got %d", len(xs))
	}
	if want := math.Mod(xs[0]+200, 340); math.Abs(xs[1]-want) > 1e-9 {
		t.Fatalf("buddy x %v, want %v", xs[1], want)
	}
	if math.Abs(ys[1]-(-50)) > 20 {
		t.Fatalf("buddy y %v outside jitter", ys[1])
	}
}

func TestDifficultyRaisesVariants(t *testing.T) {
	easy := newTestGenerator(t, 8, nil)
	hard := newTestGenerator(t, 8, nil)

	es, err := easy.Sample(4000, 0)
	if err != nil {
		t.Fatal(err)
	}
	hs, err := hard.Sample(4000, 5000)
	if err != nil {
		t.Fatal(err)
	}

	variants := func(s Stats) int {
		return s.Platforms["moving"] + s.Platforms["breaking"] + s.Platforms["disappearing"]
	}
	if variants(hs) <= variants(es) {
		t.Fatalf("expected more variants at max difficulty: easy %v hard %v", es.Platforms, hs.Platforms)
	}
	if hs.Extras["monster"] <= es.Extras["monster"] {
		t.Fatalf("expected more monsters at max difficulty: easy %v hard %v", es.Extras, hs.Extras)
	}
}

func TestRandomAnchorStaysOnScreen(t *testing.T) {
	spec := &prefabs.GeneratorSpec{
		GapMin:        50,
		GapMax:        100,
		PlatformWidth: 60,
		SpawnRules: []prefabs.SpawnRuleSpec{{
			Prefab: "monster.yaml", Chance: prefabs.ChanceSpec{Base: 1}, Anchor: "random", Margin: 50, OffsetY: -50,
		}},
	}
	g := newTestGenerator(t, 10, spec)
	w := ecs.NewWorld()
	for i := 0; i < 200; i++ {
		if err := g.GenerateSingleLevel(w, 0); err != nil {
			t.Fatal(err)
		}
	}
	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Hazard, tr *component.Transform) {
		if tr.X < 0 || tr.X >= 350 {
			t.Fatalf("monster x %v outside [0, 350)", tr.X)
		}
	})
	if n := ecs.Count(w, component.HazardComponent.Kind()); n != 200 {
		t.Fatalf("expected a monster per row, got %d", n)
	}
}

func TestNewGeneratorRejectsBadRules(t *testing.T) {
	f := entity.NewFactory(nil, nil)
	bad := []*prefabs.GeneratorSpec{
		{PlatformRules: []prefabs.PlatformRuleSpec{{Kind: "lava"}}},
		{Buddy: prefabs.BuddySpec{ForceFor: []string{"lava"}}},
		{SpawnRules: []prefabs.SpawnRuleSpec{{Prefab: "monster.yaml", Anchor: "sky"}}},
	}
	for i, spec := range bad {
		if _, err := NewGenerator(testViewport, spec, f, nil); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestSampleRestoresCursor(t *testing.T) {
	g := newTestGenerator(t, 9, nil)
	w := ecs.NewWorld()
	if err := g.GenerateInitialLevel(w, 0); err != nil {
		t.Fatal(err)
	}
	before := g.Cursor()

	stats, err := g.Sample(200, 2500)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if stats.Rows != 200 {
		t.Fatalf("expected 200 rows, got %d", stats.Rows)
	}
	total := 0
	for _, n := range stats.Platforms {
		total += n
	}
	// every row places a platform, buddies only add to it
	if total < 200 {
		t.Fatalf("expected at least 200 platforms, got %d", total)
	}
	if stats.Platforms[component.PlatformStatic.String()] == 0 {
		t.Fatalf("expected static platforms, got %v", stats.Platforms)
	}
	if g.Cursor() != before {
		t.Fatalf("cursor moved from %v to %v", before, g.Cursor())
	}

	kinds := Kinds(stats.Platforms)
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1] >= kinds[i] {
			t.Fatalf("kinds not sorted: %v", kinds)
		}
	}
}

func TestRulePriorityWhenEveryDrawSucceeds(t *testing.T) {
	always := prefabs.ChanceSpec{Base: 1}
	platformRules := func(kinds ...string) []prefabs.PlatformRuleSpec {
		out := make([]prefabs.PlatformRuleSpec, len(kinds))
		for i, k := range kinds {
			out[i] = prefabs.PlatformRuleSpec{Kind: k, Chance: always}
		}
		return out
	}
	spawnRules := func(prefabNames ...string) []prefabs.SpawnRuleSpec {
		out := make([]prefabs.SpawnRuleSpec, len(prefabNames))
		for i, p := range prefabNames {
			out[i] = prefabs.SpawnRuleSpec{Prefab: p, Chance: always, Anchor: "random", Margin: 60, OffsetY: -50}
		}
		return out
	}

	cases := []struct {
		name     string
		kinds    []string
		extras   []string
		platform string
		extra    string
	}{
		{"default order", []string{"disappearing", "breaking", "moving"}, []string{"monster.yaml", "ufo.yaml"}, "disappearing", "monster"},
		{"reversed order", []string{"moving", "breaking", "disappearing"}, []string{"ufo.yaml", "monster.yaml"}, "moving", "ufo"},
		{"breaking first", []string{"breaking", "disappearing", "moving"}, []string{"trampoline.yaml", "monster.yaml"}, "breaking", "trampoline"},
	}

	const rows = 40
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec := &prefabs.GeneratorSpec{
				GapMin:        50,
				GapMax:        100,
				PlatformWidth: 60,
				RefillMargin:  100,
				PlatformRules: platformRules(c.kinds...),
				SpawnRules:    spawnRules(c.extras...),
			}
			g := newTestGenerator(t, 12, spec)
			stats, err := g.Sample(rows, 0)
			if err != nil {
				t.Fatal(err)
			}
			if len(stats.Platforms) != 1 || stats.Platforms[c.platform] != rows {
				t.Fatalf("expected %d %s platforms only, got %v", rows, c.platform, stats.Platforms)
			}
			if len(stats.Extras) != 1 || stats.Extras[c.extra] != rows {
				t.Fatalf("expected %d %s extras only, got %v", rows, c.extra, stats.Extras)
			}
			total := 0
			for _, n := range stats.Extras {
				total += n
			}
			if total != stats.Rows {
				t.Fatalf("at most one extra per row: %d extras over %d rows", total, stats.Rows)
			}
		})
	}
}
