package game

import (
	"log/slog"

	"github.com/pthm-cable/rewild/systems"
	"github.com/pthm-cable/rewild/telemetry"
)

// step runs one tick. The caller holds g.mu.
//
// Every tick moves agents and regenerates spray energy. Every medium tick
// the spawner runs. Every slow tick the grid advances one succession
// generation, progress and the level timer are checked, a global event may
// fire, and biomass income is credited.
func (g *Game) step() bool {
	g.tick++
	cfg := g.cfg
	s := g.state
	keepRunning := true

	g.perfCollector.BeginTick(telemetry.CadenceOf(g.tick, cfg.Scheduler.MediumEvery, cfg.Scheduler.SlowEvery))

	g.perfCollector.Mark(telemetry.PhaseAgents)
	g.collector.RecordAgents(s.Agents.Update(s.Grid, cfg.Agents, g.rng))

	g.perfCollector.Mark(telemetry.PhaseRegen)
	if !s.Scrubbing {
		regenerate(s, cfg.Spray)
	}

	if g.tick%cfg.Scheduler.MediumEvery == 0 {
		g.perfCollector.Mark(telemetry.PhaseSpawner)
		g.collector.RecordSpawned(systems.SpawnAgents(s.Agents, s.Grid, cfg.Spawner, g.rng))
	}

	if g.tick%cfg.Scheduler.SlowEvery == 0 {
		g.perfCollector.Mark(telemetry.PhaseSuccession)
		if next, changed := systems.Advance(s.Grid, cfg.Succession, g.rng); changed {
			s.Grid = next
			g.collector.RecordGridChange()
		}

		g.perfCollector.Mark(telemetry.PhaseProgression)
		keepRunning = g.checkProgression()

		g.perfCollector.Mark(telemetry.PhaseEvents)
		if g.rng.Float64() < cfg.Scheduler.EventChance {
			g.triggerEvent()
		}

		g.perfCollector.Mark(telemetry.PhaseMetrics)
		g.metrics = systems.ComputeMetrics(s.Grid, s.Agents)
		if score := g.metrics.BiodiversityScore; score > 0 {
			income := max(1, score/10)
			s.Biomass += income
			g.collector.RecordIncome(income)
		}
	}

	g.perfCollector.Mark(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
	return keepRunning
}

// checkProgression evaluates the level goal and counts the level timer down
// by one second. It returns false when time ran out. An expired level stays
// expired until it is retried or another level is loaded.
func (g *Game) checkProgression() bool {
	s := g.state
	if s.TimeRemaining <= 0 && !s.Completed {
		return false
	}
	if out := CheckProgress(s, g.levelConfig(), len(g.cfg.Levels)); out.Kind != OutcomeContinue {
		g.metrics = systems.ComputeMetrics(s.Grid, s.Agents)
		g.emit(out)
	}

	if s.Completed {
		return true
	}
	s.TimeRemaining--
	if s.TimeRemaining > 0 {
		return true
	}

	// Keep partial progress for a retry.
	if err := s.SaveSnapshot(); err != nil {
		slog.Error("failed to save level snapshot", "error", err)
	}
	g.metrics = systems.ComputeMetrics(s.Grid, s.Agents)
	g.emit(GameOverOutcome(s.LevelIndex))
	return false
}

func (g *Game) triggerEvent() {
	ev := systems.TriggerEvent(g.state.Grid, g.cfg.Events, g.rng)
	g.eventMessage = ev.Message
	g.eventExpires = g.now().Add(g.cfg.Derived.EventMessage)
	g.collector.RecordEvent(ev.Kind)
	slog.Info("global event", "kind", ev.Kind.String(), "affected", ev.Affected, "tick", g.tick)
}
