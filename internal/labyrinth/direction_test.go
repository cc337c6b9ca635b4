package labyrinth

import "testing"

func TestParseOrientation(t *testing.T) {
	for n := 0; n <= 4; n++ {
		o, ok := ParseOrientation(n)
		if !ok || int(o) != n {
			t.Errorf("ParseOrientation(%d) = %v, %v", n, o, ok)
		}
	}
	for _, n := range []int{-1, 5, 42} {
		if _, ok := ParseOrientation(n); ok {
			t.Errorf("ParseOrientation(%d) should fail", n)
		}
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		name string
		from Orientation
		move Move
		want Orientation
	}{
		{"unfaced forward", Unfaced, Forward, North},
		{"unfaced right", Unfaced, Right, East},
		{"unfaced left", Unfaced, Left, Unfaced},
		{"unfaced backward", Unfaced, Backward, Unfaced},
		{"north forward", North, Forward, North},
		{"north backward", North, Backward, South},
		{"north left", North, Left, West},
		{"north right", North, Right, East},
		{"east left", East, Left, North},
		{"east right", East, Right, South},
		{"east backward", East, Backward, West},
		{"south left", South, Left, East},
		{"south right", South, Right, West},
		{"south backward", South, Backward, North},
		{"west left", West, Left, South},
		{"west right", West, Right, North},
		{"west backward", West, Backward, East},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Heading(tt.from, tt.move); got != tt.want {
				t.Errorf("Heading(%s, %s) = %s, want %s", tt.from, tt.move, got, tt.want)
			}
		})
	}
}

func TestRelativeDirections_Unfaced(t *testing.T) {
	// The foot of the ladder ignores the grid entirely.
	for y := 0; y <= MaxY; y++ {
		for x := 0; x <= MaxX; x++ {
			got := RelativeDirections(Unfaced, x, y)
			want := Directions{Forward: true, Right: true}
			if got != want {
				t.Errorf("RelativeDirections(unfaced, %d, %d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestRelativeDirections_Facing(t *testing.T) {
	// (0, 1): north, east and south are open, west is the wall.
	tests := []struct {
		facing Orientation
		want   Directions
	}{
		{North, Directions{Forward: true, Backward: true, Right: true}},
		{East, Directions{Forward: true, Left: true, Right: true}},
		{South, Directions{Forward: true, Backward: true, Left: true}},
		{West, Directions{Backward: true, Left: true, Right: true}},
	}

	for _, tt := range tests {
		t.Run(tt.facing.String(), func(t *testing.T) {
			if got := RelativeDirections(tt.facing, 0, 1); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRotationIsInvertible(t *testing.T) {
	for y := 0; y <= MaxY; y++ {
		for x := 0; x <= MaxX; x++ {
			abs := Neighbors(x, y)
			for o := North; o <= West; o++ {
				rel := RelativeDirections(o, x, y)
				if back := Unrotate(o, rel); back != abs {
					t.Errorf("(%d, %d) facing %s: Unrotate gave %+v, want %+v", x, y, o, back, abs)
				}
			}
		}
	}
}

func TestRotationCoversAllPatterns(t *testing.T) {
	for bits := 0; bits < 16; bits++ {
		c := Compass{
			North: bits&1 != 0,
			East:  bits&2 != 0,
			South: bits&4 != 0,
			West:  bits&8 != 0,
		}
		for o := North; o <= West; o++ {
			if got := Unrotate(o, Rotate(o, c)); got != c {
				t.Errorf("pattern %04b facing %s: round trip gave %+v", bits, o, got)
			}
		}
	}
}

func TestOpenMovesStayOnGrid(t *testing.T) {
	for y := 0; y <= MaxY; y++ {
		for x := 0; x <= MaxX; x++ {
			if !IsPassable(x, y) {
				continue
			}
			for o := North; o <= West; o++ {
				d := RelativeDirections(o, x, y)
				for _, m := range moves {
					if !d.Has(m) {
						continue
					}
					next := Point{X: x, Y: y}.Step(Heading(o, m))
					if !next.Passable() {
						t.Errorf("(%d, %d) facing %s: open move %s leads to wall %+v", x, y, o, m, next)
					}
				}
			}
		}
	}
}
