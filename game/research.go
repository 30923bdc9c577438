package game

import (
	"github.com/pthm-cable/rewild/config"
	"github.com/pthm-cable/rewild/systems"
)

// Tech identifiers with gameplay effects.
const (
	TechEfficiency = "efficiency_1"
	TechRadius1    = "radius_1"
	TechRadius2    = "radius_2"
	TechCapacity   = "capacity_1"
	TechRegen      = "regen_1"
	TechSeeding    = "seeding_1"
)

// HasTech reports whether the upgrade is unlocked.
func (s *State) HasTech(id string) bool {
	return s.Unlocked[id]
}

// Purchase unlocks a tech if it exists, is not already owned, and the player
// can afford it. On failure nothing changes.
func Purchase(s *State, cfg *config.Config, id string) bool {
	tech, ok := cfg.Tech(id)
	if !ok || s.HasTech(id) || s.Biomass < tech.Cost {
		return false
	}
	s.Biomass -= tech.Cost
	s.Unlocked[id] = true
	return true
}

// MaxSprayEnergy returns the spray tank capacity.
func MaxSprayEnergy(s *State, cfg config.SprayConfig) float64 {
	if s.HasTech(TechCapacity) {
		return cfg.UpgradedMax
	}
	return cfg.BaseMax
}

// RegenRate returns spray energy recovered per idle tick.
func RegenRate(s *State, cfg config.SprayConfig) float64 {
	if s.HasTech(TechRegen) {
		return cfg.UpgradedRegen
	}
	return cfg.BaseRegen
}

// scrubParams derives the effective brush from unlocked upgrades.
// Radius bonuses stack.
func scrubParams(s *State, cfg config.ScrubConfig) systems.ScrubParams {
	p := systems.ScrubParams{
		Radius:          cfg.BaseRadius,
		Power:           cfg.BasePower,
		MinClean:        cfg.MinClean,
		ClearedMoisture: cfg.ClearedMoisture,
		Seeding:         s.HasTech(TechSeeding),
		SeedChance:      cfg.SeedChance,
	}
	if s.HasTech(TechRadius1) {
		p.Radius++
	}
	if s.HasTech(TechRadius2) {
		p.Radius += 2
	}
	if s.HasTech(TechEfficiency) {
		p.Power *= cfg.PowerMultiplier
	}
	return p
}

// regenerate tops up spray energy by one tick's worth, capped at the tank size.
func regenerate(s *State, cfg config.SprayConfig) {
	s.SprayEnergy = min(MaxSprayEnergy(s, cfg), s.SprayEnergy+RegenRate(s, cfg))
}
