package component

import "testing"

func TestMovingPlatformBounces(t *testing.T) {
	p := &Platform{Kind: PlatformMoving, MoveSpeed: 2}
	tr := NewTransform(336, 0)
	v := &Velocity{}
	v.X = 2
	b := &Body{Width: 60, Height: 15}

	p.Step(tr, v, b, 400)
	if tr.X != 338 || v.X != 2 {
		t.Fatalf("expected x 338 vx 2, got %v %v", tr.X, v.X)
	}
	p.Step(tr, v, b, 400)
	if tr.X != 340 || v.X != -2 {
		t.Fatalf("expected bounce at right edge, got x %v vx %v", tr.X, v.X)
	}
}

func TestBrokenPlatformFalls(t *testing.T) {
	p := &Platform{Kind: PlatformBreaking, BreakVelocity: 2, FallGravity: 0.5}
	tr := NewTransform(0, 100)
	v := &Velocity{}
	b := &Body{Width: 60, Height: 15}

	if !p.Solid() {
		t.Fatal("fresh platform must be solid")
	}
	p.Step(tr, v, b, 400)
	if tr.Y != 100 {
		t.Fatalf("unbroken platform moved to %v", tr.Y)
	}

	p.Break(v)
	if p.Solid() {
		t.Fatal("broken platform must not be solid")
	}
	p.Step(tr, v, b, 400)
	p.Step(tr, v, b, 400)
	if tr.Y != 104.5 || v.Y != 3 {
		t.Fatalf("expected y 104.5 vy 3, got %v %v", tr.Y, v.Y)
	}
}

func TestParsePlatformKind(t *testing.T) {
	for _, k := range []PlatformKind{PlatformStatic, PlatformMoving, PlatformBreaking, PlatformDisappearing} {
		got, err := ParsePlatformKind(k.String())
		if err != nil || got != k {
			t.Fatalf("round trip %v: got %v err %v", k, got, err)
		}
	}
	if _, err := ParsePlatformKind("lava"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestPickupTakeOnce(t *testing.T) {
	p := &Pickup{Kind: PickupTrampoline}
	if !p.Take() {
		t.Fatal("first take should succeed")
	}
	if p.Take() {
		t.Fatal("second take should fail")
	}
}

func TestProgress(t *testing.T) {
	var p Progress
	p.AddScore(10)
	p.AddScore(-5)
	if p.Score != 10 {
		t.Fatalf("score must never decrease, got %d", p.Score)
	}
	if !p.End("monster") || p.End("fell") {
		t.Fatal("only the first End should latch")
	}
	if p.Cause != "monster" {
		t.Fatalf("expected first cause kept, got %q", p.Cause)
	}
}
