package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/durationpb"
)

// Tick asks a FlockActor to advance its flock by one step. The duration is
// the host frame time and is only used for telemetry; a step is always one
// unit of simulated time.
type Tick = durationpb.Duration

// NewTick builds a Tick message for a frame of length dt.
func NewTick(dt time.Duration) *Tick {
	return durationpb.New(dt)
}

// FlockActor owns a Flock and steps it once per Tick message, so ticks coming
// from any goroutine are applied one at a time.
type FlockActor struct {
	flock *Flock
	// Communication with UI
	snapshotCh chan<- *Snapshot

	// --- Benchmark Stats ---
	tickCount   int
	frameTime   time.Duration
	lastLogTime time.Time
}

var _ actor.Actor = (*FlockActor)(nil)

// NewFlockActor wraps flock. Snapshots are pushed on snapshotCh after every
// step, dropped when the consumer is behind; snapshotCh may be nil.
func NewFlockActor(flock *Flock, snapshotCh chan<- *Snapshot) *FlockActor {
	return &FlockActor{
		flock:       flock,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (a *FlockActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Flock of %d boids is ready", a.flock.Len())
	return nil
}

func (a *FlockActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Infof("%s started at tick %d", ctx.Self().Name(), a.flock.Tick())

	case *Tick:
		a.flock.Step()
		a.tickCount++
		a.frameTime += msg.AsDuration()
		a.logBenchmarks(ctx)
		a.pushSnapshot()

	default:
		ctx.Unhandled()
	}
}

func (a *FlockActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Flock stopped at tick %d", a.flock.Tick())
	return nil
}

func (a *FlockActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(a.lastLogTime) < time.Second {
		return
	}
	var avgFrame time.Duration
	if a.tickCount > 0 {
		avgFrame = a.frameTime / time.Duration(a.tickCount)
	}
	ctx.Logger().Infof("TICK RATE: %d/sec | avg frame %s | tick %d | boids %d",
		a.tickCount, avgFrame, a.flock.Tick(), a.flock.Len())
	a.tickCount = 0
	a.frameTime = 0
	a.lastLogTime = time.Now()
}

func (a *FlockActor) pushSnapshot() {
	if a.snapshotCh == nil {
		return
	}
	select {
	case a.snapshotCh <- a.flock.Snapshot():
	default:
		// UI busy, skip frame
	}
}

// SpawnFlock starts a FlockActor for flock under a unique name.
func SpawnFlock(ctx context.Context, system actor.ActorSystem, flock *Flock, snapshotCh chan<- *Snapshot) (*actor.PID, error) {
	name := "flock-" + uuid.NewString()
	pid, err := system.Spawn(ctx, name, NewFlockActor(flock, snapshotCh))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn %s: %w", name, err)
	}
	return pid, nil
}
