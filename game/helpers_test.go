package game

import (
	"testing"

	"github.com/pthm-cable/rewild/components"
	"github.com/pthm-cable/rewild/config"
	"github.com/pthm-cable/rewild/systems"
)

// testState builds a state around a uniform grid without generating a level.
func testState(size int, biome components.Biome) *State {
	g := systems.NewGrid(size)
	for i := range g.Tiles() {
		t := &g.Tiles()[i]
		t.Biome = biome
		t.Moisture = 50
		if biome == components.BiomeToxic {
			t.Toxicity = 100
		}
	}
	return &State{
		Grid:          g,
		Agents:        systems.NewAgentStore(),
		Unlocked:      make(map[string]bool),
		TimeRemaining: 120,
		SprayEnergy:   100,
		snapshots:     make(map[int][]byte),
	}
}

// quietConfig returns defaults with global events disabled.
func quietConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Scheduler.EventChance = 0
	return cfg
}

func newTestGame(t *testing.T, cfg *config.Config) *Game {
	t.Helper()
	g, err := NewGameWithOptions(Options{Seed: 42, Config: cfg})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}
