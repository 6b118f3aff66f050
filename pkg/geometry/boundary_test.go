package geometry

import (
	"errors"
	"testing"
)

func TestLineIntersection(t *testing.T) {
	tests := []struct {
		name   string
		l1, l2 Line
		want   Vector2D
	}{
		{
			"axes",
			Line{Direction: Vector2D{1, 0}, Point: Vector2D{-5, 0}},
			Line{Direction: Vector2D{0, 1}, Point: Vector2D{0, 7}},
			Vector2D{0, 0},
		},
		{
			"non unit wall direction",
			Line{Direction: Vector2D{10, 0}, Point: Vector2D{-5, 4}},
			Line{Direction: Vector2D{0, 1}, Point: Vector2D{2, -1}},
			Vector2D{2, 4},
		},
		{
			"diagonals",
			Line{Direction: Vector2D{1, 1}, Point: Vector2D{0, 0}},
			Line{Direction: Vector2D{1, -1}, Point: Vector2D{0, 2}},
			Vector2D{1, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LineIntersection(tt.l1, tt.l2)
			if err != nil {
				t.Fatalf("LineIntersection returned error %v", err)
			}
			if !got.Eq(tt.want) {
				t.Errorf("LineIntersection = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestLineIntersection_Parallel(t *testing.T) {
	l1 := Line{Direction: Vector2D{10, 0}, Point: Vector2D{0, 1}}
	l2 := Line{Direction: Vector2D{-2, 0}, Point: Vector2D{0, -1}}

	if _, err := LineIntersection(l1, l2); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("LineIntersection of parallel lines error = %v; want ErrDegenerateGeometry", err)
	}
}

func TestWalls(t *testing.T) {
	walls := Walls(10, 6)

	want := [4]Wall{
		{Direction: Vector2D{10, 0}, Origin: Vector2D{-5, 3}},
		{Direction: Vector2D{-10, 0}, Origin: Vector2D{5, -3}},
		{Direction: Vector2D{0, 6}, Origin: Vector2D{-5, -3}},
		{Direction: Vector2D{0, -6}, Origin: Vector2D{5, 3}},
	}
	for i := range want {
		if !walls[i].Direction.Eq(want[i].Direction) || !walls[i].Origin.Eq(want[i].Origin) {
			t.Errorf("wall %d = %+v; want %+v", i, walls[i], want[i])
		}
	}

	// The walls must close into a loop of corners.
	for i, w := range walls {
		end := w.End()
		if !floatEquals(abs(end.X), 5) || !floatEquals(abs(end.Y), 3) {
			t.Errorf("wall %d ends at %v, not a corner", i, end)
		}
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func TestClosestWallPoints(t *testing.T) {
	feet, err := ClosestWallPoints(Vector2D{1, -2}, Walls(10, 6))
	if err != nil {
		t.Fatalf("ClosestWallPoints returned error %v", err)
	}

	want := [4]Vector2D{
		{1, 3},  // top
		{1, -3}, // bottom
		{-5, -2},
		{5, -2},
	}
	for i := range want {
		if !feet[i].Eq(want[i]) {
			t.Errorf("foot %d = %v; want %v", i, feet[i], want[i])
		}
	}
}

func TestRayVsRectBoundary(t *testing.T) {
	half := Vector2D{5, 3}

	tests := []struct {
		name       string
		origin     Vector2D
		direction  Vector2D
		wantOK     bool
		wantPoint  Vector2D
		wantNormal Vector2D
	}{
		{"enters right edge", Vector2D{7, 0}, Vector2D{-4, 0}, true, Vector2D{5, 0}, Vector2D{1, 0}},
		{"enters left edge", Vector2D{-6, 1}, Vector2D{2, 0}, true, Vector2D{-5, 1}, Vector2D{-1, 0}},
		{"enters top edge", Vector2D{1, 4}, Vector2D{0, -2}, true, Vector2D{1, 3}, Vector2D{0, 1}},
		{"enters bottom edge", Vector2D{-2, -5}, Vector2D{1, 4}, true, Vector2D{-1.5, -3}, Vector2D{0, -1}},
		{"too short to reach", Vector2D{8, 0}, Vector2D{-1, 0}, false, Vector2D{}, Vector2D{}},
		{"entirely inside", Vector2D{1, 1}, Vector2D{-1, 0}, false, Vector2D{}, Vector2D{}},
		{"misses the rectangle", Vector2D{7, 5}, Vector2D{0, 2}, false, Vector2D{}, Vector2D{}},
		{"zero direction", Vector2D{7, 0}, Vector2D{}, false, Vector2D{}, Vector2D{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := RayVsRectBoundary(tt.origin, tt.direction, half)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v; want %v (hit %+v)", ok, tt.wantOK, hit)
			}
			if !ok {
				return
			}
			if !hit.Point.Eq(tt.wantPoint) {
				t.Errorf("Point = %v; want %v", hit.Point, tt.wantPoint)
			}
			if !hit.Normal.Eq(tt.wantNormal) {
				t.Errorf("Normal = %v; want %v", hit.Normal, tt.wantNormal)
			}
		})
	}
}

func TestRayVsRectBoundary_NearestWins(t *testing.T) {
	// Crosses the right edge and then exits through the left one.
	hit, ok := RayVsRectBoundary(Vector2D{9, 0}, Vector2D{-20, 0}, Vector2D{5, 3})
	if !ok {
		t.Fatal("expected a hit")
	}
	if !hit.Point.Eq(Vector2D{5, 0}) || !hit.Normal.Eq(Vector2D{1, 0}) {
		t.Errorf("hit = %+v; want right edge at (5, 0)", hit)
	}
	if !floatEquals(hit.Fraction, 0.2) {
		t.Errorf("Fraction = %v; want 0.2", hit.Fraction)
	}
}
