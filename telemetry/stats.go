// Package telemetry provides ecosystem health tracking, bookmarking, and snapshots.
package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int     `csv:"-"`
	WindowEndTick   int     `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Level           int     `csv:"level"`

	// Population at window end
	Herbivores  int `csv:"herbivores"`
	Carnivores  int `csv:"carnivores"`
	Pollinators int `csv:"pollinators"`

	// Events during window
	Spawned      int `csv:"spawned"`
	Starved      int `csv:"starved"`
	Pollinated   int `csv:"pollinated"`
	ScrubCalls   int `csv:"scrub_calls"`
	TilesCleared int `csv:"tiles_cleared"`
	GridChanges  int `csv:"grid_changes"` // Succession steps that changed at least one tile
	Spills       int `csv:"spills"`
	Droughts     int `csv:"droughts"`

	// Land cover at window end
	Toxic   int `csv:"toxic"`
	Barren  int `csv:"barren"`
	Grass   int `csv:"grass"`
	Wetland int `csv:"wetland"`
	Forest  int `csv:"forest"`

	PollutionPercent  int `csv:"pollution_pct"`
	BiodiversityScore int `csv:"biodiversity"`

	// Economy
	Biomass       int     `csv:"biomass"`
	BiomassEarned int     `csv:"biomass_earned"`
	SprayEnergy   float64 `csv:"spray_energy"`
	TimeRemaining int     `csv:"time_remaining"`

	// Agent energy distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyStd  float64 `csv:"energy_std"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`
}

// Agents returns the total population at window end.
func (s WindowStats) Agents() int {
	return s.Herbivores + s.Carnivores + s.Pollinators
}

// Percentile returns the empirical p-quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = min(max(p, 0), 1)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeEnergyStats calculates mean, sample standard deviation and
// percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	if n == 1 {
		mean = values[0]
	} else {
		mean, std = stat.MeanStdDev(values, nil)
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("level", s.Level),
		slog.Int("herbivores", s.Herbivores),
		slog.Int("carnivores", s.Carnivores),
		slog.Int("pollinators", s.Pollinators),
		slog.Int("spawned", s.Spawned),
		slog.Int("starved", s.Starved),
		slog.Int("pollinated", s.Pollinated),
		slog.Int("scrub_calls", s.ScrubCalls),
		slog.Int("tiles_cleared", s.TilesCleared),
		slog.Int("grid_changes", s.GridChanges),
		slog.Int("spills", s.Spills),
		slog.Int("droughts", s.Droughts),
		slog.Int("toxic", s.Toxic),
		slog.Int("barren", s.Barren),
		slog.Int("grass", s.Grass),
		slog.Int("wetland", s.Wetland),
		slog.Int("forest", s.Forest),
		slog.Int("pollution_pct", s.PollutionPercent),
		slog.Int("biodiversity", s.BiodiversityScore),
		slog.Int("biomass", s.Biomass),
		slog.Int("biomass_earned", s.BiomassEarned),
		slog.Float64("spray_energy", s.SprayEnergy),
		slog.Int("time_remaining", s.TimeRemaining),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_std", s.EnergyStd),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"level", s.Level,
		"herbivores", s.Herbivores,
		"carnivores", s.Carnivores,
		"pollinators", s.Pollinators,
		"spawned", s.Spawned,
		"starved", s.Starved,
		"pollinated", s.Pollinated,
		"tiles_cleared", s.TilesCleared,
		"grid_changes", s.GridChanges,
		"spills", s.Spills,
		"droughts", s.Droughts,
		"pollution_pct", s.PollutionPercent,
		"biodiversity", s.BiodiversityScore,
		"biomass", s.Biomass,
		"biomass_earned", s.BiomassEarned,
		"spray_energy", s.SprayEnergy,
		"time_remaining", s.TimeRemaining,
		"energy_mean", s.EnergyMean,
		"energy_p50", s.EnergyP50,
	)
}
