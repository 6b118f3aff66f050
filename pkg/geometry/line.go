package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateGeometry is returned when two lines are parallel and have no
// single intersection point.
var ErrDegenerateGeometry = errors.New("degenerate geometry: lines are parallel")

// Line is an infinite line given by a direction and any point on it.
// Direction does not need to be unit length.
type Line struct {
	Direction Vector2D
	Point     Vector2D
}

// LineIntersection returns the point where l1 and l2 cross.
// It solves l1.Point + t*l1.Direction = l2.Point + s*l2.Direction with
// Cramer's rule and fails with ErrDegenerateGeometry on parallel inputs.
func LineIntersection(l1, l2 Line) (Vector2D, error) {
	a1, b1 := l1.Direction.X, -l2.Direction.X
	a2, b2 := l1.Direction.Y, -l2.Direction.Y

	det := a1*b2 - b1*a2
	if math.Abs(det) < Epsilon {
		return Vector2D{}, fmt.Errorf("intersect %v with %v: %w", l1.Direction, l2.Direction, ErrDegenerateGeometry)
	}

	rhs := l2.Point.Sub(l1.Point)
	t := (rhs.X*b2 - b1*rhs.Y) / det

	return l1.Point.Add(l1.Direction.Mul(t)), nil
}
