package component

import "testing"

func TestAABBOverlaps(t *testing.T) {
	monster := AABB{X: 0, Y: 0, Width: 40, Height: 40}
	cases := []struct {
		name string
		box  AABB
		want bool
	}{
		{"inside", AABB{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"far_right", AABB{X: 100, Y: 5, Width: 10, Height: 10}, false},
		{"touching_right_edge", AABB{X: 40, Y: 0, Width: 10, Height: 10}, false},
		{"touching_bottom_edge", AABB{X: 0, Y: 40, Width: 10, Height: 10}, false},
		{"corner_overlap", AABB{X: 35, Y: 35, Width: 10, Height: 10}, true},
		{"enclosing", AABB{X: -5, Y: -5, Width: 50, Height: 50}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.box.Overlaps(monster); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
			if got := monster.Overlaps(c.box); got != c.want {
				t.Fatalf("overlap must be symmetric")
			}
		})
	}
}

func TestAABBInset(t *testing.T) {
	r := AABB{X: 10, Y: 20, Width: 40, Height: 40}.Inset(10, 10, 10, 0)
	want := AABB{X: 20, Y: 30, Width: 20, Height: 30}
	if r != want {
		t.Fatalf("expected %+v, got %+v", want, r)
	}
	cx, cy := AABB{X: 0, Y: 0, Width: 60, Height: 40}.Center()
	if cx != 30 || cy != 20 {
		t.Fatalf("unexpected centre (%v,%v)", cx, cy)
	}
}
