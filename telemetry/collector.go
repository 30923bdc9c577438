package telemetry

import (
	"time"

	"github.com/pthm-cable/rewild/systems"
)

// Sample is the point-in-time state captured when a window is flushed.
type Sample struct {
	Level         int
	Metrics       systems.Metrics
	Energies      []float64 // Energy of every live agent
	Biomass       int
	SprayEnergy   float64
	TimeRemaining int
}

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks int
	tickPeriod  time.Duration

	// Current window tracking
	windowStartTick int

	// Event counters for current window
	spawned       int
	starved       int
	pollinated    int
	scrubCalls    int
	tilesCleared  int
	gridChanges   int
	spills        int
	droughts      int
	biomassEarned int
}

// NewCollector creates a new stats collector.
// windowTicks: ticks per stats window
// tickPeriod: real time per tick (used for tick-to-time conversion)
func NewCollector(windowTicks int, tickPeriod time.Duration) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		tickPeriod:  tickPeriod,
	}
}

// RecordAgents records the outcome of one agent update.
func (c *Collector) RecordAgents(stats systems.AgentStats) {
	c.starved += stats.Removed
	c.pollinated += stats.Pollinated
}

// RecordSpawned records newly introduced agents.
func (c *Collector) RecordSpawned(n int) {
	c.spawned += n
}

// RecordScrub records one scrub call and how many tiles it cleared.
func (c *Collector) RecordScrub(cleared int) {
	c.scrubCalls++
	c.tilesCleared += cleared
}

// RecordGridChange records a succession step that changed the grid.
func (c *Collector) RecordGridChange() {
	c.gridChanges++
}

// RecordEvent records a global event.
func (c *Collector) RecordEvent(kind systems.EventKind) {
	switch kind {
	case systems.EventToxicSpill:
		c.spills++
	case systems.EventDrought:
		c.droughts++
	}
}

// RecordIncome records biomass credited to the player.
func (c *Collector) RecordIncome(amount int) {
	c.biomassEarned += amount
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int, sample Sample) WindowStats {
	mean, std, p10, p50, p90 := ComputeEnergyStats(sample.Energies)
	m := sample.Metrics

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      (time.Duration(currentTick) * c.tickPeriod).Seconds(),
		Level:           sample.Level,

		Herbivores:  m.Herbivores,
		Carnivores:  m.Carnivores,
		Pollinators: m.Pollinators,

		Spawned:      c.spawned,
		Starved:      c.starved,
		Pollinated:   c.pollinated,
		ScrubCalls:   c.scrubCalls,
		TilesCleared: c.tilesCleared,
		GridChanges:  c.gridChanges,
		Spills:       c.spills,
		Droughts:     c.droughts,

		Toxic:   m.Toxic,
		Barren:  m.Barren,
		Grass:   m.Grass,
		Wetland: m.Wetland,
		Forest:  m.Forest,

		PollutionPercent:  m.PollutionPercent,
		BiodiversityScore: m.BiodiversityScore,

		Biomass:       sample.Biomass,
		BiomassEarned: c.biomassEarned,
		SprayEnergy:   sample.SprayEnergy,
		TimeRemaining: sample.TimeRemaining,

		EnergyMean: mean,
		EnergyStd:  std,
		EnergyP10:  p10,
		EnergyP50:  p50,
		EnergyP90:  p90,
	}

	c.Reset(currentTick)
	return stats
}

// Reset clears the counters and starts a new window at tick.
func (c *Collector) Reset(tick int) {
	*c = Collector{
		windowTicks:     c.windowTicks,
		tickPeriod:      c.tickPeriod,
		windowStartTick: tick,
	}
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}
