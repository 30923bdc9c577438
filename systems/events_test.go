package systems

import (
	"testing"

	"github.com/pthm-cable/rewild/components"
	"github.com/pthm-cable/rewild/config"
)

func eventConfig() config.EventConfig {
	return config.Defaults().Events
}

func TestTriggerEvent_Drought(t *testing.T) {
	g := uniformGrid(3, components.BiomeGrass, 35)
	g.At(0, 0).Moisture = 50
	*g.At(2, 2) = components.Tile{Biome: components.BiomeWater, Moisture: 10}

	ev := TriggerEvent(g, eventConfig(), always(0.9))
	if ev.Kind != EventDrought || ev.Message != DroughtMessage {
		t.Fatalf("got %v %q, want drought", ev.Kind, ev.Message)
	}

	if tile := g.At(0, 0); tile.Biome != components.BiomeGrass || tile.Moisture != 20 {
		t.Errorf("wet grass: %+v, want grass at moisture 20", *tile)
	}
	if tile := g.At(1, 1); tile.Biome != components.BiomeBarren || tile.Moisture != 5 {
		t.Errorf("dry grass: %+v, want barren at moisture 5", *tile)
	}
	if tile := g.At(2, 2); tile.Biome != components.BiomeWater || tile.Moisture != 0 {
		t.Errorf("water: %+v, want water floored at 0", *tile)
	}
	if ev.Affected != 7 {
		t.Errorf("Affected = %d, want 7", ev.Affected)
	}
}

func TestTriggerEvent_ToxicSpill(t *testing.T) {
	g := uniformGrid(20, components.BiomeGrass, 50)
	rng := &scriptedRand{ints: []int{10}, fallback: 0}

	ev := TriggerEvent(g, eventConfig(), rng)
	if ev.Kind != EventToxicSpill || ev.Message != ToxicSpillMessage {
		t.Fatalf("got %v %q, want toxic spill", ev.Kind, ev.Message)
	}
	if ev.Affected != 81 {
		t.Errorf("Affected = %d, want 81", ev.Affected)
	}

	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			inside := x >= 6 && x <= 14 && y >= 6 && y <= 14
			tile := g.At(x, y)
			if inside && (tile.Biome != components.BiomeToxic || tile.Toxicity != 100) {
				t.Fatalf("(%d,%d) inside spill is %+v", x, y, *tile)
			}
			if !inside && tile.Biome != components.BiomeGrass {
				t.Fatalf("(%d,%d) outside spill is %v", x, y, tile.Biome)
			}
		}
	}
}

func TestTriggerEvent_SpillClippedAtEdge(t *testing.T) {
	g := uniformGrid(6, components.BiomeBarren, 0)
	ev := TriggerEvent(g, eventConfig(), &scriptedRand{fallback: 0})
	// Centre (0,0): the 9x9 square keeps only its 5x5 quadrant on the grid.
	if ev.Affected != 25 {
		t.Errorf("Affected = %d, want 25", ev.Affected)
	}
}
