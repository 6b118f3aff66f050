package geometry

import (
	"fmt"
	"math"
)

// Wall is one side of the bounding rectangle: the segment starting at Origin
// and spanning Direction. Direction has the full side length, it is NOT a
// unit vector.
type Wall struct {
	Direction Vector2D `json:"direction"`
	Origin    Vector2D `json:"origin"`
}

// Line returns the infinite line the wall lies on.
func (w Wall) Line() Line {
	return Line{Direction: w.Direction, Point: w.Origin}
}

// End returns the far end point of the wall segment.
func (w Wall) End() Vector2D {
	return w.Origin.Add(w.Direction)
}

// Walls builds the four walls of an x by y rectangle centered at the origin,
// in the order top, bottom, left, right.
func Walls(x, y float64) [4]Wall {
	return [4]Wall{
		{Direction: Vector2D{x, 0}, Origin: Vector2D{-x / 2, y / 2}},
		{Direction: Vector2D{-x, 0}, Origin: Vector2D{x / 2, -y / 2}},
		{Direction: Vector2D{0, y}, Origin: Vector2D{-x / 2, -y / 2}},
		{Direction: Vector2D{0, -y}, Origin: Vector2D{x / 2, y / 2}},
	}
}

// ClosestWallPoints returns, for each wall, the foot of the perpendicular
// dropped from position onto the wall's line.
func ClosestWallPoints(position Vector2D, walls [4]Wall) ([4]Vector2D, error) {
	var feet [4]Vector2D
	for i, w := range walls {
		perp := Line{Direction: w.Direction.Perpendicular().Normalize(), Point: position}
		p, err := LineIntersection(w.Line(), perp)
		if err != nil {
			return feet, fmt.Errorf("wall %d: %w", i, err)
		}
		feet[i] = p
	}
	return feet, nil
}

// RayHit is the nearest crossing of a ray with the rectangle boundary.
type RayHit struct {
	Point  Vector2D
	Normal Vector2D // outward unit normal of the edge that was crossed
	// Fraction is the position of Point along the ray, in [0, 1].
	Fraction float64
}

// RayVsRectBoundary intersects the segment origin..origin+direction with the
// boundary of the rectangle of the given half extents centered at (0,0).
// It reports the crossing closest to origin; ok is false when the segment
// never crosses the boundary or direction has zero length.
func RayVsRectBoundary(origin, direction, halfExtent Vector2D) (hit RayHit, ok bool) {
	if direction.LenSqr() < Epsilon*Epsilon {
		return RayHit{}, false
	}

	best := math.Inf(1)
	try := func(t float64, normal Vector2D) {
		if t < 0 || t > 1 || t >= best {
			return
		}
		p := origin.Add(direction.Mul(t))
		// the crossing must lie on the edge segment itself
		if normal.X != 0 && math.Abs(p.Y) > halfExtent.Y+Epsilon {
			return
		}
		if normal.Y != 0 && math.Abs(p.X) > halfExtent.X+Epsilon {
			return
		}
		if normal.X != 0 {
			p.X = normal.X * halfExtent.X
		} else {
			p.Y = normal.Y * halfExtent.Y
		}
		best = t
		hit = RayHit{Point: p, Normal: normal, Fraction: t}
		ok = true
	}

	if direction.X != 0 {
		try((halfExtent.X-origin.X)/direction.X, Vector2D{1, 0})
		try((-halfExtent.X-origin.X)/direction.X, Vector2D{-1, 0})
	}
	if direction.Y != 0 {
		try((halfExtent.Y-origin.Y)/direction.Y, Vector2D{0, 1})
		try((-halfExtent.Y-origin.Y)/direction.Y, Vector2D{0, -1})
	}
	return hit, ok
}
