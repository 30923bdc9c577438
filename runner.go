package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/pthm-cable/rewild/game"
)

// runner plays a session headlessly and reacts to level outcomes.
type runner struct {
	game     *game.Game
	pilot    *game.Autopilot
	retries  int
	left     int
	campaign bool
	maxTicks int
}

// runFast steps the game back to back with no wall-clock pacing. Expiry is
// picked up from the outcome channel.
func (r *runner) runFast(ctx context.Context) {
	for ctx.Err() == nil {
		if r.pilot != nil {
			r.pilot.Step(r.game)
		}
		r.game.Step()

		if r.drainOutcomes() || r.maxTicksReached() {
			return
		}
	}
}

// runRealtime drives the game from its scheduler. The pilot acts once per
// tick period on this goroutine.
func (r *runner) runRealtime(ctx context.Context) {
	r.game.Start(ctx)
	defer r.game.Stop()

	ticker := time.NewTicker(r.game.Config().Derived.TickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted", "tick", r.game.Tick())
			return
		case out := <-r.game.Outcomes():
			if out.Kind == game.OutcomeGameOver {
				// The loop halts itself on expiry; wait for it before restarting.
				r.game.Stop()
			}
			if r.handle(out) {
				return
			}
			if out.Kind == game.OutcomeGameOver {
				r.game.Start(ctx)
			}
		case <-ticker.C:
			if r.pilot != nil {
				r.pilot.Step(r.game)
			}
			if r.maxTicksReached() {
				return
			}
		}
	}
}

// drainOutcomes handles every pending outcome and reports whether the run is over.
func (r *runner) drainOutcomes() bool {
	for {
		select {
		case out := <-r.game.Outcomes():
			if r.handle(out) {
				return true
			}
		default:
			return false
		}
	}
}

// handle reacts to one outcome. It returns true when the run should end.
func (r *runner) handle(out game.Outcome) bool {
	switch out.Kind {
	case game.OutcomeLevelComplete:
		if !r.campaign || !out.HasNextLevel {
			return true
		}
		if err := r.game.LoadLevel(out.NextLevelIndex); err != nil {
			slog.Error("failed to load level", "level", out.NextLevelIndex, "error", err)
			return true
		}
		r.left = r.retries
	case game.OutcomeGameWon:
		slog.Info("all levels restored", "tick", r.game.Tick())
		return true
	case game.OutcomeGameOver:
		return !r.retry()
	}
	return false
}

// retry restarts the level if retries remain.
func (r *runner) retry() bool {
	if r.left <= 0 {
		return false
	}
	r.left--
	if err := r.game.RetryLevel(); err != nil {
		slog.Error("failed to retry level", "error", err)
		return false
	}
	return true
}

func (r *runner) maxTicksReached() bool {
	if r.maxTicks > 0 && r.game.Tick() >= r.maxTicks {
		slog.Info("max ticks reached", "tick", r.game.Tick())
		return true
	}
	return false
}
