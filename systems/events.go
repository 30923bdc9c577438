package systems

import (
	"math"

	"github.com/pthm-cable/rewild/components"
	"github.com/pthm-cable/rewild/config"
)

// EventKind identifies a global perturbation.
type EventKind uint8

const (
	EventToxicSpill EventKind = iota
	EventDrought
)

// Status messages shown while an event is active.
const (
	ToxicSpillMessage = "TOXIC LEAK DETECTED"
	DroughtMessage    = "HEATWAVE: MOISTURE CRITICAL"
)

func (k EventKind) String() string {
	switch k {
	case EventToxicSpill:
		return "toxic_spill"
	case EventDrought:
		return "drought"
	}
	return "unknown"
}

// Event describes a perturbation that has been applied to the grid.
type Event struct {
	Kind     EventKind
	Message  string
	Affected int // Tiles re-polluted or killed off
}

// TriggerEvent applies one global event to g. The caller decides when to fire
// and how long the message stays visible.
func TriggerEvent(g *Grid, cfg config.EventConfig, rng Rand) Event {
	if chance(rng, cfg.SpillShare) {
		return Event{
			Kind:     EventToxicSpill,
			Message:  ToxicSpillMessage,
			Affected: toxicSpill(g, cfg, rng),
		}
	}
	return Event{
		Kind:     EventDrought,
		Message:  DroughtMessage,
		Affected: drought(g, cfg),
	}
}

// toxicSpill re-pollutes a patchy square blob around a random centre.
func toxicSpill(g *Grid, cfg config.EventConfig, rng Rand) int {
	cx, cy := rng.IntN(g.Size), rng.IntN(g.Size)
	r := cfg.SpillRadius
	hit := 0
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if !g.InBounds(x, y) || !chance(rng, cfg.SpillDensity) {
				continue
			}
			tile := g.At(x, y)
			tile.Biome = components.BiomeToxic
			tile.Toxicity = 100
			hit++
		}
	}
	return hit
}

// drought dries every tile and kills grass that falls below the survival line.
func drought(g *Grid, cfg config.EventConfig) int {
	killed := 0
	tiles := g.Tiles()
	for i := range tiles {
		t := &tiles[i]
		t.Moisture = math.Max(0, t.Moisture-cfg.DroughtLoss)
		if t.Biome == components.BiomeGrass && t.Moisture < cfg.DroughtKillBelow {
			t.Biome = components.BiomeBarren
			killed++
		}
	}
	return killed
}
