package behavior

// Settings controls the steering constants of one flock.
// A flock copies its Settings at construction and never changes them.
type Settings struct {
	FlockingStrength float64 `json:"flockingStrength"` // Cohesion weight
	FlockingDistance float64 `json:"flockingDistance"` // Cohesion radius

	AvoidingStrength float64 `json:"avoidingStrength"` // Separation weight
	AvoidingDistance float64 `json:"avoidingDistance"` // Separation radius

	VelocityMatchStrength float64 `json:"velocityMatchStrength"` // Alignment weight
	VelocityMatchDistance float64 `json:"velocityMatchDistance"` // Alignment radius

	MaxVelocity       float64 `json:"maxVelocity"`
	MaxSteeringVector float64 `json:"maxSteeringVector"` // Per-tick turn-rate cap

	Randomness float64 `json:"randomness"` // Jitter magnitude

	CollisionViewDst           float64 `json:"collisionViewDst"` // Wall lookahead
	CollisionAvoidanceStrength float64 `json:"collisionAvoidanceStrength"`
}

// DefaultSettings returns a set of constants that gives a lively, cohesive
// flock in a 100 by 60 volume.
func DefaultSettings() Settings {
	return Settings{
		FlockingStrength:           0.005,
		FlockingDistance:           10,
		AvoidingStrength:           0.05,
		AvoidingDistance:           2,
		VelocityMatchStrength:      0.05,
		VelocityMatchDistance:      8,
		MaxVelocity:                0.5,
		MaxSteeringVector:          0.05,
		Randomness:                 0.01,
		CollisionViewDst:           10,
		CollisionAvoidanceStrength: 1,
	}
}
