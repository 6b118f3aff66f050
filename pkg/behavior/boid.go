package behavior

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flock-volume/pkg/geometry"
)

// Boid represents a single entity in the flock.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// https://en.wikipedia.org/wiki/Boids
//
// A Boid is plain data owned by its flock; it never points at another boid.
type Boid struct {
	Position geometry.Vector3D `json:"position"`
	Velocity geometry.Vector3D `json:"velocity"`
}

const (
	// spawnFraction keeps freshly spawned boids away from the walls.
	spawnFraction = 0.8
	// spawnSpeed bounds each initial velocity component.
	spawnSpeed = 0.2
)

// Spawn creates count boids with random positions in the central 80% of an
// x by y volume and velocity components in [-0.2, 0.2].
// Draw order per boid is position x, position y, velocity x, velocity y, so a
// seeded rng always yields the same flock.
func Spawn(rng *rand.Rand, count int, x, y float64) []Boid {
	halfX := spawnFraction * x / 2
	halfY := spawnFraction * y / 2

	boids := make([]Boid, count)
	for i := range boids {
		boids[i] = Boid{
			Position: geometry.Vector3D{
				X: uniform(rng, -halfX, halfX),
				Y: uniform(rng, -halfY, halfY),
			},
		}
		boids[i].Velocity = geometry.Vector3D{
			X: uniform(rng, -spawnSpeed, spawnSpeed),
			Y: uniform(rng, -spawnSpeed, spawnSpeed),
		}
	}
	return boids
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
