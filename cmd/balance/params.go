package main

import (
	"github.com/pthm-cable/rewild/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of balance parameters: the spray
// economy, the brush, and the ecological rates the player waits on.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Spray economy
			{Name: "base_regen", Path: "spray.base_regen", Min: 0.25, Max: 4.0, Default: 1.0},
			{Name: "cost_per_scrub", Path: "spray.cost_per_scrub", Min: 0.02, Max: 0.5, Default: 0.1},
			// Brush
			{Name: "base_power", Path: "scrub.base_power", Min: 1.0, Max: 10.0, Default: 4.0},
			{Name: "min_clean", Path: "scrub.min_clean", Min: 0.1, Max: 2.0, Default: 0.5},
			// Succession
			{Name: "grass_spread_chance", Path: "succession.grass_spread_chance", Min: 0.02, Max: 0.3, Default: 0.10},
			{Name: "forest_chance", Path: "succession.forest_chance", Min: 0.005, Max: 0.1, Default: 0.02},
			// Fauna
			{Name: "pollinator_chance", Path: "spawner.pollinator_chance", Min: 0.01, Max: 0.2, Default: 0.05},
			{Name: "eat_gain", Path: "agents.eat_gain", Min: 1.0, Max: 10.0, Default: 5.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(spec.Max, max(spec.Min, v[i]))
	}
	return clamped
}

// ApplyToConfig writes parameter values into cfg. Order must match Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Spray.BaseRegen = c[0]
	cfg.Spray.CostPerScrub = c[1]
	cfg.Scrub.BasePower = c[2]
	cfg.Scrub.MinClean = c[3]
	cfg.Succession.GrassSpreadChance = c[4]
	cfg.Succession.ForestChance = c[5]
	cfg.Spawner.PollinatorChance = c[6]
	cfg.Agents.EatGain = c[7]

	// Keep the upgrade tiers proportional to the tuned base.
	cfg.Spray.UpgradedRegen = 3 * cfg.Spray.BaseRegen
}

// ExtractFromConfig reads current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Spray.BaseRegen,
		cfg.Spray.CostPerScrub,
		cfg.Scrub.BasePower,
		cfg.Scrub.MinClean,
		cfg.Succession.GrassSpreadChance,
		cfg.Succession.ForestChance,
		cfg.Spawner.PollinatorChance,
		cfg.Agents.EatGain,
	}
}
