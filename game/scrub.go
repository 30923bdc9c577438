package game

import (
	"github.com/pthm-cable/rewild/config"
	"github.com/pthm-cable/rewild/systems"
)

// Scrub spends spray energy and cleans toxicity around (x, y). It is a no-op
// with an empty tank. Coordinates off the grid are clamped. It returns the
// number of tiles cleared and whether any energy was spent.
func Scrub(s *State, cfg *config.Config, x, y int, rng systems.Rand) (cleared int, sprayed bool) {
	if s.SprayEnergy <= 0 {
		return 0, false
	}
	s.SprayEnergy = max(0, s.SprayEnergy-cfg.Spray.CostPerScrub)
	return systems.ScrubArea(s.Grid, x, y, scrubParams(s, cfg.Scrub), rng), true
}
