package simulation

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"slices"
	"time"

	"github.com/lao-tseu-is-alive/go-flock-volume/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-volume/pkg/geometry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Flock owns every boid of one simulation together with the volume they live
// in. It is the only place that can both read all boids and write them.
// A Flock is not safe for concurrent use; FlockActor serializes access.
type Flock struct {
	cfg   Config
	boids []behavior.Boid
	walls [4]geometry.Wall
	half  geometry.Vector2D

	rng     *rand.Rand
	tick    uint64
	workers int

	logger  *zap.Logger
	metrics *Metrics
}

// Option customizes a Flock at construction.
type Option func(*Flock)

// WithLogger sets the structured logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(f *Flock) { f.logger = l }
}

// WithMetrics makes Step record into m.
func WithMetrics(m *Metrics) Option {
	return func(f *Flock) { f.metrics = m }
}

// WithBoids replaces the randomly spawned boids, e.g. to replay a recorded
// state. NumBoids follows len(boids).
func WithBoids(boids []behavior.Boid) Option {
	return func(f *Flock) {
		f.boids = slices.Clone(boids)
		f.cfg.NumBoids = len(boids)
	}
}

// NewFlock validates cfg, derives the walls and spawns the boids.
func NewFlock(cfg Config, opts ...Option) (*Flock, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	hw, hh := cfg.HalfExtent()

	f := &Flock{
		cfg:     cfg,
		walls:   geometry.Walls(cfg.X, cfg.Y),
		half:    geometry.Vector2D{X: hw, Y: hh},
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		workers: cfg.Workers,
		logger:  zap.NewNop(),
	}
	if f.workers == 0 {
		f.workers = runtime.GOMAXPROCS(0)
	}
	f.boids = behavior.Spawn(f.rng, cfg.NumBoids, cfg.X, cfg.Y)

	for _, opt := range opts {
		opt(f)
	}
	if err := f.cfg.Validate(); err != nil {
		return nil, err
	}

	f.metrics.setBoids(len(f.boids))
	f.logger.Info("flock created",
		zap.Int("boids", len(f.boids)),
		zap.Float64("width", cfg.X),
		zap.Float64("height", cfg.Y),
		zap.Uint64("seed", seed),
		zap.Int("workers", f.workers))
	return f, nil
}

// Step advances every boid by one tick.
//
// All rules read the state of the previous tick: the boids are copied, the
// jitter for each boid is drawn in flock order, the final vectors are computed
// in parallel against the copy and only then integrated.
func (f *Flock) Step() {
	start := time.Now()
	n := len(f.boids)
	snapshot := slices.Clone(f.boids)
	s := f.cfg.Settings

	jitter := make([]geometry.Vector3D, n)
	for i := range jitter {
		jitter[i] = behavior.Jitter(f.rng, s)
	}

	finals := make([]geometry.Vector3D, n)
	chunk := (n + f.workers - 1) / f.workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			others := make([]behavior.Boid, 0, n-1)
			for i := lo; i < hi; i++ {
				others = append(others[:0], snapshot[:i]...)
				others = append(others, snapshot[i+1:]...)
				finals[i] = behavior.FinalVector(snapshot[i], others, jitter[i], s, f.half)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	clamps := 0
	for i := range f.boids {
		var clamped bool
		f.boids[i], clamped = behavior.Integrate(snapshot[i], finals[i], s, f.half)
		if clamped {
			clamps++
		}
	}
	f.tick++

	if clamps > 0 {
		f.logger.Debug("boids clamped at the wall", zap.Uint64("tick", f.tick), zap.Int("count", clamps))
	}
	f.metrics.observeStep(time.Since(start), clamps, n)
}

// Tick returns the number of steps taken so far.
func (f *Flock) Tick() uint64 { return f.tick }

// Len returns the number of boids.
func (f *Flock) Len() int { return len(f.boids) }

// Config returns a copy of the flock configuration.
func (f *Flock) Config() Config { return f.cfg }

// Boids returns a copy of the current boid states.
func (f *Flock) Boids() []behavior.Boid { return slices.Clone(f.boids) }

// Boid returns the state of boid i.
func (f *Flock) Boid(i int) behavior.Boid { return f.boids[i] }

// Walls returns the four walls of the volume (top, bottom, left, right).
func (f *Flock) Walls() [4]geometry.Wall { return f.walls }

// HalfExtent returns the half width and half height of the volume.
func (f *Flock) HalfExtent() geometry.Vector2D { return f.half }

// CentreOfMass returns the mean position of the flock.
func (f *Flock) CentreOfMass() geometry.Vector3D {
	var sum geometry.Vector3D
	for _, b := range f.boids {
		sum = sum.Add(b.Position)
	}
	return sum.Mul(1 / float64(len(f.boids)))
}

// WallFootPoints returns the points on each wall closest to boid i.
// Only the debug overlay uses them.
func (f *Flock) WallFootPoints(i int) ([4]geometry.Vector2D, error) {
	if i < 0 || i >= len(f.boids) {
		return [4]geometry.Vector2D{}, fmt.Errorf("boid %d out of range [0, %d)", i, len(f.boids))
	}
	feet, err := geometry.ClosestWallPoints(f.boids[i].Position.XY(), f.walls)
	if err != nil {
		return feet, fmt.Errorf("boid %d foot points: %w", i, err)
	}
	return feet, nil
}

// Snapshot copies the current state for consumers outside the simulation loop.
func (f *Flock) Snapshot() *Snapshot {
	return &Snapshot{
		Tick:         f.tick,
		Boids:        f.Boids(),
		CentreOfMass: f.CentreOfMass(),
		HalfExtent:   f.half,
	}
}

// Snapshot is an immutable copy of the flock at one tick.
type Snapshot struct {
	Tick         uint64
	Boids        []behavior.Boid
	CentreOfMass geometry.Vector3D
	HalfExtent   geometry.Vector2D
}
