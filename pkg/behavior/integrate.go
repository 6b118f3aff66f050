package behavior

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock-volume/pkg/geometry"
)

// WallMargin is how far inside a wall a boid is put back when it reaches it.
const WallMargin = 0.1

// FinalVector sums every rule contribution for self. jitter is drawn by the
// caller so that random draws happen in a fixed order.
func FinalVector(self Boid, others []Boid, jitter geometry.Vector3D, s Settings, halfExtent geometry.Vector2D) geometry.Vector3D {
	return Cohesion(self, others, s).
		Add(Separation(self, others, s)).
		Add(VelocityMatch(self, others, s)).
		Add(jitter).
		Add(BoundaryAvoidance(self, s, halfExtent))
}

// ClampSteering limits the change from velocity to final to maxSteering and
// returns the possibly shortened final vector.
func ClampSteering(velocity, final geometry.Vector3D, maxSteering float64) geometry.Vector3D {
	steering := final.Sub(velocity)
	if steering.Len() > maxSteering {
		steering = steering.Normalize().Mul(maxSteering)
		return steering.Add(velocity)
	}
	return final
}

// Integrate advances b by one tick under final and reports whether the boid
// had to be clamped back inside the volume.
// The wall clamp only moves the position; velocity is left as is, so a boid
// may be clamped again on the next tick.
func Integrate(b Boid, final geometry.Vector3D, s Settings, halfExtent geometry.Vector2D) (Boid, bool) {
	final = ClampSteering(b.Velocity, final, s.MaxSteeringVector)

	b.Position = b.Position.Add(b.Velocity).Add(final)
	b.Velocity = b.Velocity.Add(final)

	b.Velocity.Z = 0
	b.Position.Z = 0

	b.Velocity = b.Velocity.ClampLen(s.MaxVelocity)

	clamped := false
	hw, hh := halfExtent.X, halfExtent.Y
	switch {
	case b.Position.X <= -hw:
		b.Position.X = -hw + WallMargin
		clamped = true
	case b.Position.X >= hw:
		b.Position.X = hw - WallMargin
		clamped = true
	}
	switch {
	case b.Position.Y <= -hh:
		b.Position.Y = -hh + WallMargin
		clamped = true
	case b.Position.Y >= hh:
		b.Position.Y = hh - WallMargin
		clamped = true
	}
	return b, clamped
}

// Update is the single-boid convenience form of one tick: draw jitter,
// evaluate every rule against others and integrate.
func Update(rng *rand.Rand, self Boid, others []Boid, s Settings, halfExtent geometry.Vector2D) (Boid, bool) {
	final := FinalVector(self, others, Jitter(rng, s), s, halfExtent)
	return Integrate(self, final, s, halfExtent)
}
