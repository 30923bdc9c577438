// Package components defines the tile and agent data shared by the simulation.
package components

// Biome is the ecological category of a tile.
type Biome uint8

const (
	BiomeToxic Biome = iota
	BiomeBarren
	BiomeGrass
	BiomeWater
	BiomeWetland
	BiomeForest
)

// IsVegetation reports whether the biome counts as living cover
// (grass, forest or wetland) for succession and foraging.
func (b Biome) IsVegetation() bool {
	switch b {
	case BiomeGrass, BiomeForest, BiomeWetland:
		return true
	case BiomeToxic, BiomeBarren, BiomeWater:
		return false
	}
	return false
}

// IsFood reports whether an agent standing on the biome can eat.
func (b Biome) IsFood() bool {
	switch b {
	case BiomeGrass, BiomeForest:
		return true
	case BiomeToxic, BiomeBarren, BiomeWater, BiomeWetland:
		return false
	}
	return false
}

// Tile is a single grid cell.
// Toxicity and Moisture are in [0, 100]; Variation is a cosmetic value in
// [0, 1] used by renderers to vary tile shading.
type Tile struct {
	Biome     Biome
	Toxicity  float64
	Moisture  float64
	Variation float64
}
