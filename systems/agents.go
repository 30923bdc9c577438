package systems

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rewild/components"
	"github.com/pthm-cable/rewild/config"
)

// AgentView is a read-only copy of one agent for renderers and telemetry.
type AgentView struct {
	ID     string
	Kind   components.AgentKind
	X, Y   int
	Energy float64
}

// AgentStats reports what one Update call did.
type AgentStats struct {
	Removed    int // Agents swept for energy <= 0
	Pollinated int // Barren tiles turned to grass by pollinators
}

// AgentStore owns the agent collection. Agents are ECS entities carrying a
// Position and an Agent component. IDs come from a session counter that
// survives Reset, so an ID is never handed out twice.
type AgentStore struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Position, components.Agent]
	filter *ecs.Filter2[components.Position, components.Agent]

	nextID uint64
	counts map[components.AgentKind]int
	total  int
}

// NewAgentStore creates an empty agent collection.
func NewAgentStore() *AgentStore {
	s := &AgentStore{}
	s.init()
	return s
}

func (s *AgentStore) init() {
	world := ecs.NewWorld()
	s.world = world
	s.mapper = ecs.NewMap2[components.Position, components.Agent](world)
	s.filter = ecs.NewFilter2[components.Position, components.Agent](world)
	s.counts = make(map[components.AgentKind]int, len(components.AgentKinds()))
	s.total = 0
}

// Reset removes every agent. The ID counter keeps counting.
func (s *AgentStore) Reset() {
	s.init()
}

// Spawn adds an agent at (x, y) and returns its ID.
func (s *AgentStore) Spawn(kind components.AgentKind, x, y int, energy float64) string {
	s.nextID++
	pos := components.Position{X: x, Y: y}
	agent := components.Agent{
		ID:     strconv.FormatUint(s.nextID, 10),
		Kind:   kind,
		Energy: energy,
	}
	s.mapper.NewEntity(&pos, &agent)
	s.counts[kind]++
	s.total++
	return agent.ID
}

// Len returns the number of live agents.
func (s *AgentStore) Len() int { return s.total }

// Count returns the number of live agents of one kind.
func (s *AgentStore) Count(kind components.AgentKind) int { return s.counts[kind] }

// Snapshot copies every agent, ordered by ID (creation order).
func (s *AgentStore) Snapshot() []AgentView {
	views := make([]AgentView, 0, s.total)
	query := s.filter.Query()
	for query.Next() {
		pos, agent := query.Get()
		views = append(views, AgentView{
			ID:     agent.ID,
			Kind:   agent.Kind,
			X:      pos.X,
			Y:      pos.Y,
			Energy: agent.Energy,
		})
	}
	slices.SortFunc(views, func(a, b AgentView) int {
		if c := cmp.Compare(len(a.ID), len(b.ID)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return views
}

// Update runs one metabolism and movement step for every agent.
//
// Starved agents are swept before the step so none of them acts, and again
// after it so an agent that hits zero this step is gone when Update returns.
// An agent starting at full energy off food therefore lasts exactly
// MaxEnergy/StarveCost calls.
func (s *AgentStore) Update(g *Grid, cfg config.AgentConfig, rng Rand) AgentStats {
	var stats AgentStats
	stats.Removed += s.removeStarved()

	query := s.filter.Query()
	for query.Next() {
		pos, agent := query.Get()
		metabolise(agent, g.At(pos.X, pos.Y), cfg)

		x, y := nextCell(g, pos.X, pos.Y, agent.Energy < cfg.HungerThreshold, cfg.WanderTries, rng)
		pos.X, pos.Y = g.Clamp(x, y)

		if pollinate(agent, g.At(pos.X, pos.Y), cfg, rng) {
			stats.Pollinated++
		}
	}

	stats.Removed += s.removeStarved()
	return stats
}

// removeStarved deletes agents with energy <= 0 and returns how many went.
func (s *AgentStore) removeStarved() int {
	// First pass: collect (must complete before modifying the world)
	type starved struct {
		entity ecs.Entity
		kind   components.AgentKind
	}
	var toRemove []starved

	query := s.filter.Query()
	for query.Next() {
		_, agent := query.Get()
		if agent.Energy <= 0 {
			toRemove = append(toRemove, starved{entity: query.Entity(), kind: agent.Kind})
		}
	}

	// Second pass: remove (query iteration complete)
	for _, dead := range toRemove {
		s.mapper.Remove(dead.entity)
		s.counts[dead.kind]--
		s.total--
	}
	return len(toRemove)
}

// metabolise feeds an agent standing on grass or forest and drains it
// anywhere else. There is no floor; the sweep handles agents at zero.
func metabolise(agent *components.Agent, under *components.Tile, cfg config.AgentConfig) {
	if under.Biome.IsFood() {
		agent.Energy = min(cfg.MaxEnergy, agent.Energy+cfg.EatGain)
		return
	}
	agent.Energy -= cfg.StarveCost
}

// nextCell picks where an agent steps. A hungry agent takes the first
// vegetated neighbour in row-major order. Otherwise it tries a few random
// offsets and keeps the first that lands on safe ground, or stays put.
func nextCell(g *Grid, x, y int, hungry bool, tries int, rng Rand) (int, int) {
	if hungry {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if g.InBounds(nx, ny) && g.At(nx, ny).Biome.IsVegetation() {
					return nx, ny
				}
			}
		}
	}

	for range tries {
		nx := x + rng.IntN(3) - 1
		ny := y + rng.IntN(3) - 1
		if g.InBounds(nx, ny) && g.At(nx, ny).Biome != components.BiomeToxic {
			return nx, ny
		}
	}
	return x, y
}

// pollinate lets a well-fed pollinator seed the barren tile it stands on.
func pollinate(agent *components.Agent, tile *components.Tile, cfg config.AgentConfig, rng Rand) bool {
	if agent.Kind != components.KindPollinator || agent.Energy <= cfg.PollinateEnergy {
		return false
	}
	if tile.Biome != components.BiomeBarren || !chance(rng, cfg.PollinateChance) {
		return false
	}
	transition(tile, components.BiomeGrass, rng)
	agent.Energy -= cfg.PollinateCost
	return true
}
