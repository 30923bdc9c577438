package systems

import (
	"github.com/pthm-cable/rewild/components"
	"github.com/pthm-cable/rewild/config"
)

// SpawnAgents introduces new agents at a few random cells and returns how many
// were added. It does nothing while the population is at or above the cap; the
// cap is only checked on entry, so one call may overshoot it slightly.
//
// Species rolls are independent, so a single cell can produce more than one
// agent. Carnivores need more than CarnivoreMinPrey herbivores alive at the
// moment of the roll.
func SpawnAgents(store *AgentStore, g *Grid, cfg config.SpawnerConfig, rng Rand) int {
	if store.Len() >= cfg.MaxAgents {
		return 0
	}

	spawned := 0
	spawn := func(kind components.AgentKind, x, y int) {
		store.Spawn(kind, x, y, cfg.InitialEnergy)
		spawned++
	}

	for range cfg.Attempts {
		x, y := rng.IntN(g.Size), rng.IntN(g.Size)
		biome := g.At(x, y).Biome

		// Pollinators
		if (biome == components.BiomeGrass || biome == components.BiomeWetland) && chance(rng, cfg.PollinatorChance) {
			spawn(components.KindPollinator, x, y)
		}

		// Herbivores
		if biome == components.BiomeForest {
			if chance(rng, cfg.HerbivoreForestChance) {
				spawn(components.KindHerbivore, x, y)
			}
		} else if biome == components.BiomeGrass && chance(rng, cfg.HerbivoreGrassChance) {
			spawn(components.KindHerbivore, x, y)
		}

		// Carnivores
		if biome == components.BiomeForest && chance(rng, cfg.CarnivoreChance) &&
			store.Count(components.KindHerbivore) > cfg.CarnivoreMinPrey {
			spawn(components.KindCarnivore, x, y)
		}
	}
	return spawned
}
