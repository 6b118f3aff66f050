package behavior

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock-volume/pkg/geometry"
)

// The rules below are pure: they read the acting boid, every OTHER boid of
// the flock and the settings, and return a planar contribution (Z = 0).
// A neighbor is "within d" when its distance is strictly below d.

// Cohesion steers toward the average position of the neighbors within
// FlockingDistance.
func Cohesion(self Boid, others []Boid, s Settings) geometry.Vector3D {
	var sum geometry.Vector3D
	count := 0
	for _, other := range others {
		if self.Position.DistanceTo(other.Position) < s.FlockingDistance {
			sum = sum.Add(other.Position)
			count++
		}
	}
	if count == 0 {
		return geometry.Vector3D{}
	}

	avg := sum.Mul(1 / float64(count))
	return avg.Sub(self.Position).Mul(s.FlockingStrength).Flatten()
}

// Separation pushes away from every neighbor within AvoidingDistance.
// The sum is further scaled by CollisionAvoidanceStrength.
func Separation(self Boid, others []Boid, s Settings) geometry.Vector3D {
	var sum geometry.Vector3D
	for _, other := range others {
		if self.Position.DistanceTo(other.Position) < s.AvoidingDistance {
			away := other.Position.Sub(self.Position).Mul(-1)
			sum = sum.Add(away.Mul(s.AvoidingStrength))
		}
	}
	return sum.Mul(s.CollisionAvoidanceStrength).Flatten()
}

// VelocityMatch steers toward the average velocity of the neighbors within
// VelocityMatchDistance. The average divides by the number of ALL other
// boids, not only the ones in range, so sparse neighborhoods pull toward
// standing still.
func VelocityMatch(self Boid, others []Boid, s Settings) geometry.Vector3D {
	if len(others) == 0 {
		return geometry.Vector3D{}
	}

	var sum geometry.Vector3D
	for _, other := range others {
		if self.Position.DistanceTo(other.Position) < s.VelocityMatchDistance {
			sum = sum.Add(other.Velocity)
		}
	}

	avg := sum.Mul(1 / float64(len(others)))
	return avg.Sub(self.Velocity).Mul(s.VelocityMatchStrength).Flatten()
}

// Jitter returns a random planar vector with components in [-Randomness, Randomness).
func Jitter(rng *rand.Rand, s Settings) geometry.Vector3D {
	return geometry.Vector3D{
		X: uniform(rng, -1, 1),
		Y: uniform(rng, -1, 1),
	}.Mul(s.Randomness)
}

// cornerZone is the fraction of a half extent past which a wall hit counts as
// being near a corner rather than mid-edge.
const cornerZone = 0.5

// BoundaryAvoidance looks CollisionViewDst velocities ahead and, when that
// lookahead lies beyond a wall, steers away from it.
//
// The probe is cast from the lookahead point back toward the boid, so the hit
// is where the boid's path would leave the volume. Near a corner the boid is
// pushed diagonally inward; mid-edge it is steered along its reflected
// velocity. Both scale with 1/distance. When the hit lies on both an x-edge
// and a y-edge, the y-edge result is kept.
func BoundaryAvoidance(self Boid, s Settings, halfExtent geometry.Vector2D) geometry.Vector3D {
	ahead := self.Velocity.Mul(s.CollisionViewDst)
	origin := self.Position.Add(ahead).XY()

	hit, ok := geometry.RayVsRectBoundary(origin, ahead.Mul(-1).XY(), halfExtent)
	if !ok {
		return geometry.Vector3D{}
	}

	distance := hit.Point.DistanceTo(self.Position.XY())
	if distance > s.CollisionViewDst || distance < geometry.Epsilon {
		return geometry.Vector3D{}
	}

	hw, hh := halfExtent.X, halfExtent.Y
	reflected := func() geometry.Vector3D {
		r := geometry.Reflect(self.Velocity, hit.Normal.ToVector3D()).Normalize()
		return r.Mul(s.CollisionAvoidanceStrength / distance)
	}

	var steer geometry.Vector3D
	if math.Abs(hit.Point.X) >= hw-geometry.Epsilon {
		switch {
		case hit.Point.Y >= cornerZone*hh:
			steer = geometry.Vector3D{X: hit.Point.X / -hw, Y: -1}.Mul(1 / distance)
		case hit.Point.Y <= -cornerZone*hh:
			steer = geometry.Vector3D{X: hit.Point.X / -hw, Y: 1}.Mul(1 / distance)
		default:
			steer = reflected()
		}
	}
	if math.Abs(hit.Point.Y) >= hh-geometry.Epsilon {
		switch {
		case hit.Point.X >= cornerZone*hw:
			steer = geometry.Vector3D{X: -1, Y: hit.Point.Y / -hh}.Mul(1 / distance)
		case hit.Point.X <= -cornerZone*hw:
			steer = geometry.Vector3D{X: 1, Y: hit.Point.Y / -hh}.Mul(1 / distance)
		default:
			steer = reflected()
		}
	}
	return steer.Flatten()
}
