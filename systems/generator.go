package systems

import (
	"fmt"
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/rewild/components"
)

// Grid sizes per archetype family.
const (
	SmallMapSize = 64
	LargeMapSize = 96
)

// Fixed noise seeds keep woodland and marsh layouts identical across runs.
const (
	forestNoiseSeed = 7211
	deltaNoiseSeed  = 4093
)

// placement maps a cell to its starting biome and moisture.
// ok is false when no rule matched and the default toxic tile applies.
type placement func(x, y int) (biome components.Biome, moisture float64, ok bool)

// GridSize returns the side length of grids generated for the archetype.
// It panics on an undefined archetype.
func GridSize(a components.Archetype) int {
	if !a.Valid() {
		panic(fmt.Sprintf("systems: unsupported map archetype %v", a))
	}
	if a == components.ArchetypeRiver || a == components.ArchetypeDesert {
		return SmallMapSize
	}
	return LargeMapSize
}

// Generate builds the starting grid for a map archetype. Biome placement is a
// deterministic function of (x, y, archetype); only the cosmetic Variation is
// drawn from rng. It panics on an undefined archetype.
func Generate(a components.Archetype, rng Rand) *Grid {
	size := GridSize(a)
	place := placementFor(a, size)

	g := NewGrid(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			biome, moisture, ok := place(x, y)
			if !ok {
				biome, moisture = components.BiomeToxic, 0
			}
			*g.At(x, y) = newTile(biome, moisture, rng)
		}
	}
	return g
}

func newTile(biome components.Biome, moisture float64, rng Rand) components.Tile {
	t := components.Tile{
		Biome:     biome,
		Moisture:  moisture,
		Variation: rng.Float64(),
	}
	if biome == components.BiomeToxic {
		t.Toxicity = 100
	}
	return t
}

func placementFor(a components.Archetype, size int) placement {
	switch a {
	case components.ArchetypeRiver:
		return riverPlacement(size)
	case components.ArchetypeDesert:
		return desertPlacement
	case components.ArchetypeForest:
		return forestPlacement(size)
	case components.ArchetypeDelta:
		return deltaPlacement(size)
	}
	panic(fmt.Sprintf("systems: unsupported map archetype %v", a))
}

// riverPlacement carves one meandering river with wetland banks.
func riverPlacement(size int) placement {
	return func(x, y int) (components.Biome, float64, bool) {
		center := int(math.Floor(float64(size)/2 + math.Sin(float64(y)/4)*4))
		return bankedChannel(math.Abs(float64(x-center)), 2, 4, 80)
	}
}

// desertPlacement scatters rare oases where two sine fields overlap.
func desertPlacement(x, y int) (components.Biome, float64, bool) {
	fx, fy := float64(x), float64(y)
	signal := math.Sin(fx/5)*math.Cos(fy/5) + math.Sin((fx+fy)/10)
	switch {
	case signal > 1.2:
		return components.BiomeWater, 100, true
	case signal > 0.9:
		return components.BiomeWetland, 60, true
	}
	return 0, 0, false
}

// forestPlacement runs twin streams through surviving woodland patches.
func forestPlacement(size int) placement {
	noise := opensimplex.New(forestNoiseSeed)
	third := float64(size) / 3
	return func(x, y int) (components.Biome, float64, bool) {
		fx, fy := float64(x), float64(y)
		west := third + math.Sin(fy/6)*3
		east := 2*third + math.Cos(fy/7)*3
		dist := math.Min(math.Abs(fx-west), math.Abs(fx-east))
		if b, m, ok := bankedChannel(dist, 2, 4, 80); ok {
			return b, m, ok
		}
		if noise.Eval2(fx/10, fy/10) > 0.3 {
			return components.BiomeForest, 70, true
		}
		return 0, 0, false
	}
}

// deltaPlacement fans three channels out from the top edge with marsh between.
func deltaPlacement(size int) placement {
	noise := opensimplex.New(deltaNoiseSeed)
	mid := float64(size) / 2
	return func(x, y int) (components.Biome, float64, bool) {
		fx, fy := float64(x), float64(y)
		dist := math.Inf(1)
		for k := -1; k <= 1; k++ {
			center := mid + float64(k)*fy/3 + math.Sin(fy/5+float64(k))*2
			dist = math.Min(dist, math.Abs(fx-center))
		}
		if b, m, ok := bankedChannel(dist, 1.5, 3.5, 80); ok {
			return b, m, ok
		}
		if noise.Eval2(fx/8, fy/8) > 0.5 {
			return components.BiomeWetland, 70, true
		}
		return 0, 0, false
	}
}

// bankedChannel classifies a distance from a channel centre line.
func bankedChannel(dist, waterWidth, bankWidth, bankMoisture float64) (components.Biome, float64, bool) {
	switch {
	case dist < waterWidth:
		return components.BiomeWater, 100, true
	case dist < bankWidth:
		return components.BiomeWetland, bankMoisture, true
	}
	return 0, 0, false
}
