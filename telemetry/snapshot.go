package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/rewild/components"
	"github.com/pthm-cable/rewild/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds a level's grid and agents at one tick for offline inspection.
type Snapshot struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`

	Level     int    `json:"level"`
	LevelName string `json:"level_name"`
	Tick      int    `json:"tick"`

	Size   int          `json:"size"`
	Tiles  []TileState  `json:"tiles"` // Row-major
	Agents []AgentState `json:"agents"`

	Biomass       int     `json:"biomass"`
	SprayEnergy   float64 `json:"spray_energy"`
	TimeRemaining int     `json:"time_remaining"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// TileState holds one tile.
type TileState struct {
	Biome     components.Biome `json:"biome"`
	Toxicity  float64          `json:"toxicity"`
	Moisture  float64          `json:"moisture"`
	Variation float64          `json:"variation"`
}

// AgentState holds one agent.
type AgentState struct {
	ID     string               `json:"id"`
	Kind   components.AgentKind `json:"kind"`
	X      int                  `json:"x"`
	Y      int                  `json:"y"`
	Energy float64              `json:"energy"`
}

// CaptureGrid copies a grid and agent list into the snapshot.
func (s *Snapshot) CaptureGrid(g *systems.Grid, agents []systems.AgentView) {
	s.Size = g.Size
	s.Tiles = make([]TileState, len(g.Tiles()))
	for i, t := range g.Tiles() {
		s.Tiles[i] = TileState{
			Biome:     t.Biome,
			Toxicity:  t.Toxicity,
			Moisture:  t.Moisture,
			Variation: t.Variation,
		}
	}

	s.Agents = make([]AgentState, len(agents))
	for i, a := range agents {
		s.Agents[i] = AgentState{ID: a.ID, Kind: a.Kind, X: a.X, Y: a.Y, Energy: a.Energy}
	}
}

// Grid rebuilds the captured grid.
func (s *Snapshot) Grid() (*systems.Grid, error) {
	tiles := make([]components.Tile, len(s.Tiles))
	for i, t := range s.Tiles {
		tiles[i] = components.Tile{
			Biome:     t.Biome,
			Toxicity:  t.Toxicity,
			Moisture:  t.Moisture,
			Variation: t.Variation,
		}
	}
	return systems.GridFromTiles(s.Size, tiles)
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	// Build filename
	name := fmt.Sprintf("snapshot_L%d_%d", snapshot.Level, snapshot.Tick)
	if snapshot.Bookmark != nil {
		// Sanitize bookmark type for filename
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("%s_%s", name, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
