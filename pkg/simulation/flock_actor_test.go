package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

func TestFlockActor_StepsOnTick(t *testing.T) {
	ctx := context.Background()

	system, err := actor.NewActorSystem("FlockTest", actor.WithLogger(golog.DiscardLogger))
	require.NoError(t, err)
	require.NoError(t, system.Start(ctx))
	t.Cleanup(func() { _ = system.Stop(ctx) })

	flock, err := NewFlock(testConfig())
	require.NoError(t, err)

	snapshots := make(chan *Snapshot, 1)
	pid, err := SpawnFlock(ctx, system, flock, snapshots)
	require.NoError(t, err)

	for want := uint64(1); want <= 3; want++ {
		require.NoError(t, actor.Tell(ctx, pid, NewTick(16*time.Millisecond)))

		select {
		case snap := <-snapshots:
			assert.Equal(t, want, snap.Tick)
			assert.Len(t, snap.Boids, flock.Config().NumBoids)
		case <-time.After(5 * time.Second):
			t.Fatalf("no snapshot for tick %d", want)
		}
	}
}

func TestFlockActor_DropsSnapshotsWhenBehind(t *testing.T) {
	flock, err := NewFlock(testConfig())
	require.NoError(t, err)

	snapshots := make(chan *Snapshot, 1)
	a := NewFlockActor(flock, snapshots)

	flock.Step()
	a.pushSnapshot()
	flock.Step()
	a.pushSnapshot() // channel full, dropped

	snap := <-snapshots
	assert.Equal(t, uint64(1), snap.Tick)
	assert.Empty(t, snapshots)

	// no consumer at all is fine too
	NewFlockActor(flock, nil).pushSnapshot()
}
