package systems

import (
	"math"

	"github.com/pthm-cable/rewild/components"
)

// ScrubParams is the effective remediation brush after upgrades are applied.
type ScrubParams struct {
	Radius          int
	Power           float64
	MinClean        float64 // Floor on the falloff so the brush edge still cleans
	ClearedMoisture float64 // Moisture given to a tile once its toxicity is gone
	Seeding         bool    // Cleared tiles may sprout grass immediately
	SeedChance      float64
}

// ScrubArea lowers toxicity on every toxic tile within Euclidean distance
// Radius of the (clamped) centre. Cleaning strength falls off linearly with
// distance. A tile whose toxicity reaches zero becomes barren first; only then
// may seeding turn it to grass. It returns how many tiles were cleared.
func ScrubArea(g *Grid, cx, cy int, p ScrubParams, rng Rand) int {
	cx, cy = g.Clamp(cx, cy)
	r := p.Radius
	cleared := 0

	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if !g.InBounds(x, y) {
				continue
			}
			dx, dy := float64(x-cx), float64(y-cy)
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist > float64(r) {
				continue
			}

			tile := g.At(x, y)
			if tile.Biome != components.BiomeToxic {
				continue
			}

			falloff := 1 - dist/float64(r+1)
			tile.Toxicity = math.Max(0, tile.Toxicity-math.Max(p.MinClean, p.Power*falloff))
			if tile.Toxicity > 0 {
				continue
			}

			tile.Biome = components.BiomeBarren
			tile.Toxicity = 0
			tile.Moisture = p.ClearedMoisture
			cleared++

			if p.Seeding && chance(rng, p.SeedChance) {
				tile.Biome = components.BiomeGrass
				tile.Variation = rng.Float64()
			}
		}
	}
	return cleared
}
