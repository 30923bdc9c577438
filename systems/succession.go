package systems

import (
	"github.com/pthm-cable/rewild/components"
	"github.com/pthm-cable/rewild/config"
)

// Advance runs one generation of vegetation succession. Every rule reads from
// prev only and writes into a copy, so no transition in this step can feed
// another. The returned bool reports whether any tile changed; when it is
// false the copy is identical to prev and callers may keep the original.
//
// Toxic and water tiles never change here. Barren land is colonised by grass,
// grass next to water turns to wetland, and dense grass matures into forest.
func Advance(prev *Grid, cfg config.SuccessionConfig, rng Rand) (*Grid, bool) {
	next := prev.Clone()
	changed := false
	neighbours := make([]*components.Tile, 0, 8)

	for y := 0; y < prev.Size; y++ {
		for x := 0; x < prev.Size; x++ {
			tile := prev.At(x, y)
			out := next.At(x, y)

			switch tile.Biome {
			case components.BiomeBarren:
				neighbours = prev.Neighbors(x, y, neighbours[:0])
				if colonise(tile, neighbours, cfg, rng) {
					transition(out, components.BiomeGrass, rng)
					changed = true
				}
			case components.BiomeGrass:
				neighbours = prev.Neighbors(x, y, neighbours[:0])
				vegetation, water := countCover(neighbours)
				if water >= 1 && tile.Moisture > cfg.WetlandMoisture && chance(rng, cfg.WetlandChance) {
					transition(out, components.BiomeWetland, rng)
					changed = true
				}
				if vegetation >= cfg.ForestMinNeighbours && tile.Moisture > cfg.ForestMoisture && chance(rng, cfg.ForestChance) {
					transition(out, components.BiomeForest, rng)
					changed = true
				}
			case components.BiomeToxic, components.BiomeWater,
				components.BiomeWetland, components.BiomeForest:
			}
		}
	}
	return next, changed
}

// colonise decides whether a barren tile grows grass this step. Seeds spread
// from living neighbours; failing that, wind-blown seed can take on damp
// ground with no cover nearby.
func colonise(tile *components.Tile, neighbours []*components.Tile, cfg config.SuccessionConfig, rng Rand) bool {
	hasCover := false
	for _, n := range neighbours {
		if n.Biome.IsVegetation() {
			hasCover = true
			break
		}
	}
	if hasCover && tile.Moisture > cfg.GrassSpreadMoisture && chance(rng, cfg.GrassSpreadChance) {
		return true
	}
	return tile.Moisture > cfg.WindSeedMoisture && chance(rng, cfg.WindSeedChance)
}

func countCover(neighbours []*components.Tile) (vegetation, water int) {
	for _, n := range neighbours {
		if n.Biome.IsVegetation() {
			vegetation++
		}
		if n.Biome == components.BiomeWater {
			water++
		}
	}
	return vegetation, water
}

func transition(t *components.Tile, biome components.Biome, rng Rand) {
	t.Biome = biome
	t.Variation = rng.Float64()
}
