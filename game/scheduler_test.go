package game

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_StopHaltsTicks(t *testing.T) {
	var n atomic.Int64
	s := NewScheduler(time.Millisecond, func() bool {
		n.Add(1)
		return true
	})

	s.Start(context.Background())
	require.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, time.Millisecond)

	s.Stop()
	assert.False(t, s.Running())
	stopped := n.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, n.Load(), "no tick may run after Stop returns")
}

func TestScheduler_StepCanHalt(t *testing.T) {
	var n atomic.Int64
	s := NewScheduler(time.Millisecond, func() bool {
		return n.Add(1) < 2
	})

	s.Start(context.Background())
	require.Eventually(t, func() bool { return !s.Running() }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int64(2), n.Load())

	// A halted scheduler can be restarted.
	s.Start(context.Background())
	require.Eventually(t, func() bool { return n.Load() >= 3 }, time.Second, time.Millisecond)
	s.Stop()
}

func TestScheduler_StartIsIdempotent(t *testing.T) {
	var running, overlap atomic.Int64
	s := NewScheduler(time.Millisecond, func() bool {
		if running.Add(1) > 1 {
			overlap.Add(1)
		}
		time.Sleep(time.Millisecond)
		running.Add(-1)
		return true
	})

	ctx := context.Background()
	s.Start(ctx)
	s.Start(ctx)
	s.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	s.Stop()
	s.Stop() // no-op

	assert.Zero(t, overlap.Load(), "only one loop may run")
}

func TestScheduler_ContextCancel(t *testing.T) {
	s := NewScheduler(time.Millisecond, func() bool { return true })

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	require.True(t, s.Running())

	cancel()
	require.Eventually(t, func() bool { return !s.Running() }, time.Second, time.Millisecond)
}
