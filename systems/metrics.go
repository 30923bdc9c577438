package systems

import "github.com/pthm-cable/rewild/components"

// Score weights per vegetated tile and per agent.
const (
	grassWeight   = 1
	wetlandWeight = 2
	forestWeight  = 3
	agentWeight   = 10
)

// Metrics summarises ecological health for one moment of a level.
// Agent counts exclude agents that starved during the latest Update, so a
// dying agent stops counting toward biodiversity on the tick its energy
// reaches zero.
type Metrics struct {
	Toxic   int
	Barren  int
	Grass   int
	Water   int
	Wetland int
	Forest  int

	TotalTiles        int
	PollutionPercent  int // floor(Toxic*100/TotalTiles)
	BiodiversityScore int

	Agents      int
	Herbivores  int
	Carnivores  int
	Pollinators int
}

// ComputeMetrics counts biomes in a single pass over g and reads agent counts
// from the store. It does not modify either.
func ComputeMetrics(g *Grid, agents *AgentStore) Metrics {
	var m Metrics
	for _, t := range g.Tiles() {
		switch t.Biome {
		case components.BiomeToxic:
			m.Toxic++
		case components.BiomeBarren:
			m.Barren++
		case components.BiomeGrass:
			m.Grass++
		case components.BiomeWater:
			m.Water++
		case components.BiomeWetland:
			m.Wetland++
		case components.BiomeForest:
			m.Forest++
		}
	}
	m.TotalTiles = len(g.Tiles())
	if m.TotalTiles > 0 {
		m.PollutionPercent = m.Toxic * 100 / m.TotalTiles
	}

	if agents != nil {
		m.Agents = agents.Len()
		m.Herbivores = agents.Count(components.KindHerbivore)
		m.Carnivores = agents.Count(components.KindCarnivore)
		m.Pollinators = agents.Count(components.KindPollinator)
	}

	m.BiodiversityScore = m.Grass*grassWeight +
		m.Wetland*wetlandWeight +
		m.Forest*forestWeight +
		m.Agents*agentWeight
	return m
}

// ByBiome returns the tile count for one biome.
func (m Metrics) ByBiome(b components.Biome) int {
	switch b {
	case components.BiomeToxic:
		return m.Toxic
	case components.BiomeBarren:
		return m.Barren
	case components.BiomeGrass:
		return m.Grass
	case components.BiomeWater:
		return m.Water
	case components.BiomeWetland:
		return m.Wetland
	case components.BiomeForest:
		return m.Forest
	}
	return 0
}
