package systems

import (
	"testing"

	"github.com/pthm-cable/rewild/components"
	"github.com/pthm-cable/rewild/config"
)

func successionConfig() config.SuccessionConfig {
	return config.Defaults().Succession
}

// ---------- Barren -> Grass ----------

func TestAdvance_SpreadRateNearTenPercent(t *testing.T) {
	cfg := successionConfig()
	base := uniformGrid(3, components.BiomeGrass, 50)
	base.At(1, 1).Biome = components.BiomeBarren

	rng := NewRand(42)
	const runs = 1000
	transitions := 0
	for range runs {
		next, _ := Advance(base.Clone(), cfg, rng)
		if next.At(1, 1).Biome == components.BiomeGrass {
			transitions++
		}
	}

	// 0.10 spread plus a small wind-seed contribution on the misses.
	rate := float64(transitions) / runs
	if rate < 0.07 || rate > 0.14 {
		t.Errorf("transition rate %.3f, want about 0.10", rate)
	}
}

func TestAdvance_NoChainReactions(t *testing.T) {
	cfg := successionConfig()
	// Moisture 18 permits spread (>15) but not wind seeding (>20).
	g := uniformGrid(5, components.BiomeBarren, 18)
	g.At(0, 0).Biome = components.BiomeGrass

	next, changed := Advance(g, cfg, always(0))
	if !changed {
		t.Fatal("expected a transition")
	}

	for _, p := range []components.Position{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}} {
		if b := next.At(p.X, p.Y).Biome; b != components.BiomeGrass {
			t.Errorf("neighbour %v is %v, want grass", p, b)
		}
	}
	for _, p := range []components.Position{{X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}} {
		if b := next.At(p.X, p.Y).Biome; b != components.BiomeBarren {
			t.Errorf("tile %v two steps away is %v; transitions fed each other", p, b)
		}
	}
	if g.At(1, 0).Biome != components.BiomeBarren {
		t.Error("Advance mutated its input grid")
	}
}

func TestAdvance_WindSeedNeedsMoisture(t *testing.T) {
	cfg := successionConfig()
	tests := []struct {
		name     string
		moisture float64
		want     components.Biome
	}{
		{"dry", 20, components.BiomeBarren},
		{"damp", 21, components.BiomeGrass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := uniformGrid(1, components.BiomeBarren, tt.moisture)
			next, _ := Advance(g, cfg, always(0))
			if b := next.At(0, 0).Biome; b != tt.want {
				t.Errorf("got %v, want %v", b, tt.want)
			}
		})
	}
}

// ---------- Grass -> Wetland / Forest ----------

func TestAdvance_GrassBesideWaterBecomesWetland(t *testing.T) {
	cfg := successionConfig()
	g := uniformGrid(2, components.BiomeWater, 100)
	*g.At(0, 0) = components.Tile{Biome: components.BiomeGrass, Moisture: 70}

	next, changed := Advance(g, cfg, always(0))
	if !changed || next.At(0, 0).Biome != components.BiomeWetland {
		t.Errorf("got %v (changed=%v), want wetland", next.At(0, 0).Biome, changed)
	}
}

func TestAdvance_DenseGrassBecomesForest(t *testing.T) {
	cfg := successionConfig()
	g := uniformGrid(3, components.BiomeGrass, 50)

	next, _ := Advance(g, cfg, always(0))
	if b := next.At(1, 1).Biome; b != components.BiomeForest {
		t.Errorf("centre with 8 grass neighbours is %v, want forest", b)
	}
	// Corners see only 3 neighbours.
	if b := next.At(0, 0).Biome; b != components.BiomeGrass {
		t.Errorf("corner is %v, want grass", b)
	}
}

func TestAdvance_ForestWinsOverWetland(t *testing.T) {
	cfg := successionConfig()
	g := uniformGrid(3, components.BiomeGrass, 70)
	g.At(0, 0).Biome = components.BiomeWater

	next, _ := Advance(g, cfg, always(0))
	if b := next.At(1, 1).Biome; b != components.BiomeForest {
		t.Errorf("got %v, want forest", b)
	}
}

func TestAdvance_ForestNeedsMoisture(t *testing.T) {
	cfg := successionConfig()
	g := uniformGrid(3, components.BiomeGrass, 40)

	next, changed := Advance(g, cfg, always(0))
	if changed || next.At(1, 1).Biome != components.BiomeGrass {
		t.Errorf("moisture 40 must not mature into forest")
	}
}

// ---------- Stable tiles ----------

func TestAdvance_StableBiomesNeverChange(t *testing.T) {
	cfg := successionConfig()
	for _, b := range []components.Biome{
		components.BiomeToxic,
		components.BiomeWater,
		components.BiomeWetland,
		components.BiomeForest,
	} {
		g := uniformGrid(4, b, 90)
		next, changed := Advance(g, cfg, always(0))
		if changed {
			t.Errorf("%v grid reported a change", b)
		}
		for i, tile := range next.Tiles() {
			if tile != g.Tiles()[i] {
				t.Fatalf("%v grid: tile %d changed", b, i)
			}
		}
	}
}

func TestAdvance_TransitionRefreshesVariation(t *testing.T) {
	cfg := successionConfig()
	g := uniformGrid(1, components.BiomeBarren, 50)
	g.At(0, 0).Variation = 0.9

	next, _ := Advance(g, cfg, &scriptedRand{floats: []float64{0, 0.25}})
	if v := next.At(0, 0).Variation; v != 0.25 {
		t.Errorf("variation %.2f, want freshly rolled 0.25", v)
	}
}
