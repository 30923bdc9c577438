package game

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/rewild/config"
	"github.com/pthm-cable/rewild/systems"
)

// ErrUnknownLevel is returned when a level index is outside the catalogue.
var ErrUnknownLevel = errors.New("unknown level")

// State is the complete mutable state of one play session.
// Spray energy, biomass and unlocked techs carry over between levels;
// everything else is reset when a level is loaded.
type State struct {
	Grid      *systems.Grid
	Agents    *systems.AgentStore
	Scrubbing bool

	Biomass       int
	Unlocked      map[string]bool
	TimeRemaining int // Seconds
	SprayEnergy   float64

	LevelIndex int
	Completed  bool

	// Compressed grids saved when a level is left, keyed by level index.
	snapshots map[int][]byte
}

// NewState creates a session positioned on the given level.
func NewState(cfg *config.Config, level int, rng systems.Rand) (*State, error) {
	s := &State{
		Agents:      systems.NewAgentStore(),
		Unlocked:    make(map[string]bool),
		SprayEnergy: cfg.Spray.BaseMax,
		snapshots:   make(map[int][]byte),
	}
	if err := s.LoadLevel(cfg, level, rng); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadLevel saves the current grid under its level index and starts level
// index on a freshly generated map.
func (s *State) LoadLevel(cfg *config.Config, index int, rng systems.Rand) error {
	lvl, ok := cfg.Level(index)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownLevel, index)
	}
	if err := s.SaveSnapshot(); err != nil {
		return err
	}

	s.Grid = systems.Generate(lvl.Archetype, rng)
	s.resetLevel(index, lvl)
	return nil
}

// RetryLevel restarts the current level. If a grid was saved for it the
// player resumes from that partial progress, otherwise the map is regenerated.
func (s *State) RetryLevel(cfg *config.Config, rng systems.Rand) error {
	lvl, ok := cfg.Level(s.LevelIndex)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownLevel, s.LevelIndex)
	}

	if data, ok := s.snapshots[s.LevelIndex]; ok {
		grid, err := decodeGrid(data)
		if err != nil {
			return fmt.Errorf("restoring level %d: %w", s.LevelIndex, err)
		}
		s.Grid = grid
	} else {
		s.Grid = systems.Generate(lvl.Archetype, rng)
	}

	s.resetLevel(s.LevelIndex, lvl)
	return nil
}

// SaveSnapshot records the current grid for the current level.
func (s *State) SaveSnapshot() error {
	if s.Grid == nil {
		return nil
	}
	data, err := encodeGrid(s.Grid)
	if err != nil {
		return fmt.Errorf("saving level %d: %w", s.LevelIndex, err)
	}
	s.snapshots[s.LevelIndex] = data
	return nil
}

// HasSnapshot reports whether a grid is saved for the level.
func (s *State) HasSnapshot(index int) bool {
	_, ok := s.snapshots[index]
	return ok
}

func (s *State) resetLevel(index int, lvl config.LevelConfig) {
	s.LevelIndex = index
	s.Completed = false
	s.Scrubbing = false
	s.TimeRemaining = lvl.TimeLimit
	s.Agents.Reset()
}
