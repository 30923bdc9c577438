package game

import (
	"context"
	"sync"
	"time"
)

// Scheduler drives a step function at a fixed real-time period on its own
// goroutine. At most one loop runs at a time. A step returning false halts
// the loop as if Stop had been called.
//
// Step must not call Stop; return false instead.
type Scheduler struct {
	period time.Duration
	step   func() bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(period time.Duration, step func() bool) *Scheduler {
	return &Scheduler{period: period, step: step}
}

// Start launches the loop. It is a no-op while already running.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	go s.run(ctx, done)
}

// Stop halts the loop and waits for it to exit, so no step runs after Stop
// returns. It is a no-op while stopped.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer s.halt(done)

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Both cases may be ready; cancellation wins.
			if ctx.Err() != nil {
				return
			}
			if !s.step() {
				return
			}
		}
	}
}

// halt clears the running state when the loop exits on its own.
func (s *Scheduler) halt(done chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != done {
		return // Stop already took ownership
	}
	s.cancel()
	s.cancel, s.done = nil, nil
}
