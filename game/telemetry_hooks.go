package game

import (
	"log/slog"

	"github.com/pthm-cable/rewild/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	s := g.state
	agents := s.Agents.Snapshot()
	energies := make([]float64, len(agents))
	for i, a := range agents {
		energies[i] = a.Energy
	}

	stats := g.collector.Flush(g.tick, telemetry.Sample{
		Level:         s.LevelIndex,
		Metrics:       g.metrics,
		Energies:      energies,
		Biomass:       s.Biomass,
		SprayEnergy:   s.SprayEnergy,
		TimeRemaining: s.TimeRemaining,
	})
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
			g.saveSnapshot(&bm)
		}
	}
}

// saveSnapshot writes the current level to the output snapshot directory.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	path, err := telemetry.SaveSnapshot(g.createSnapshot(bookmark), g.outputManager.SnapshotDir())
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	s := g.state
	snap := &telemetry.Snapshot{
		Version:       telemetry.SnapshotVersion,
		Seed:          g.seed,
		Level:         s.LevelIndex,
		LevelName:     g.levelConfig().Name,
		Tick:          g.tick,
		Biomass:       s.Biomass,
		SprayEnergy:   s.SprayEnergy,
		TimeRemaining: s.TimeRemaining,
		Bookmark:      bookmark,
	}
	snap.CaptureGrid(s.Grid, s.Agents.Snapshot())
	return snap
}
