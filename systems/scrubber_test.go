package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/rewild/components"
)

func baseScrub() ScrubParams {
	return ScrubParams{
		Radius:          3,
		Power:           4,
		MinClean:        0.5,
		ClearedMoisture: 60,
		SeedChance:      0.2,
	}
}

func TestScrubArea_ToBarren(t *testing.T) {
	g := uniformGrid(1, components.BiomeToxic, 0)
	g.At(0, 0).Toxicity = 2

	cleared := ScrubArea(g, 0, 0, baseScrub(), always(0))

	tile := g.At(0, 0)
	if tile.Biome != components.BiomeBarren {
		t.Errorf("biome %v, want barren", tile.Biome)
	}
	if tile.Toxicity != 0 {
		t.Errorf("toxicity %.2f, want 0", tile.Toxicity)
	}
	if tile.Moisture != 60 {
		t.Errorf("moisture %.2f, want 60", tile.Moisture)
	}
	if cleared != 1 {
		t.Errorf("cleared %d, want 1", cleared)
	}
}

func TestScrubArea_Convergence(t *testing.T) {
	tests := []struct {
		name    string
		seeding bool
		want    components.Biome
	}{
		{"plain", false, components.BiomeBarren},
		{"seeding", true, components.BiomeGrass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := uniformGrid(1, components.BiomeToxic, 0)
			p := baseScrub()
			p.Seeding = tt.seeding

			calls := 0
			for g.At(0, 0).Biome == components.BiomeToxic {
				calls++
				if calls > 100 {
					t.Fatal("tile never cleared")
				}
				ScrubArea(g, 0, 0, p, always(0))
				tile := g.At(0, 0)
				if tile.Toxicity > 0 && tile.Biome != components.BiomeToxic {
					t.Fatalf("call %d: biome %v while toxicity %.2f", calls, tile.Biome, tile.Toxicity)
				}
			}

			// Power 4 at distance 0 removes 4 per call.
			if calls != 25 {
				t.Errorf("cleared after %d calls, want 25", calls)
			}
			if b := g.At(0, 0).Biome; b != tt.want {
				t.Errorf("biome %v, want %v", b, tt.want)
			}
		})
	}
}

func TestScrubArea_NoSeedingWhileToxic(t *testing.T) {
	g := uniformGrid(1, components.BiomeToxic, 0)
	p := baseScrub()
	p.Seeding = true

	ScrubArea(g, 0, 0, p, always(0))
	if b := g.At(0, 0).Biome; b != components.BiomeToxic {
		t.Errorf("biome %v after one pass at toxicity 100, want toxic", b)
	}
}

func TestScrubArea_Falloff(t *testing.T) {
	tests := []struct {
		name  string
		power float64
		x, y  int
		want  float64
	}{
		{"centre", 4, 0, 0, 96},
		{"edge uses falloff", 4, 3, 0, 99}, // 4 * (1 - 3/4) = 1
		{"edge floored", 1, 3, 0, 99.5},    // 1 * 0.25 < 0.5
		{"outside radius", 4, 3, 3, 100},   // distance 4.24
		{"diagonal inside", 4, 2, 2, 100 - 4*(1-math.Sqrt(8)/4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := uniformGrid(8, components.BiomeToxic, 0)
			p := baseScrub()
			p.Power = tt.power

			ScrubArea(g, 0, 0, p, always(0))
			if got := g.At(tt.x, tt.y).Toxicity; math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("toxicity at (%d,%d) = %.4f, want %.4f", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestScrubArea_IgnoresNonToxic(t *testing.T) {
	g := uniformGrid(3, components.BiomeGrass, 30)
	cleared := ScrubArea(g, 1, 1, baseScrub(), always(0))
	if cleared != 0 {
		t.Errorf("cleared %d tiles on a clean grid", cleared)
	}
	for _, tile := range g.Tiles() {
		if tile.Biome != components.BiomeGrass || tile.Moisture != 30 {
			t.Fatalf("clean tile modified: %+v", tile)
		}
	}
}

func TestScrubArea_ClampsCentre(t *testing.T) {
	a := uniformGrid(6, components.BiomeToxic, 0)
	b := uniformGrid(6, components.BiomeToxic, 0)

	ScrubArea(a, -20, 50, baseScrub(), always(0))
	ScrubArea(b, 0, 5, baseScrub(), always(0))

	for i := range a.Tiles() {
		if a.Tiles()[i] != b.Tiles()[i] {
			t.Fatalf("tile %d differs between clamped and explicit centre", i)
		}
	}
}
