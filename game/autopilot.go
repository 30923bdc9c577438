package game

import (
	"github.com/pthm-cable/rewild/components"
	"github.com/pthm-cable/rewild/systems"
)

// Autopilot is a scripted player for headless runs. It sprays the toxic tile
// nearest its last target and rests to refill the tank when it runs dry.
type Autopilot struct {
	ScrubsPerTick int     // Scrub calls per Step while spraying
	ResumeAt      float64 // Tank fraction at which a resting pilot sprays again

	x, y    int
	resting bool
}

// NewAutopilot creates a pilot starting at the grid origin.
func NewAutopilot(scrubsPerTick int) *Autopilot {
	return &Autopilot{ScrubsPerTick: scrubsPerTick, ResumeAt: 0.5}
}

// Step plays one tick's worth of input. It returns the number of tiles
// cleared.
func (a *Autopilot) Step(g *Game) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.state
	if a.resting {
		if s.SprayEnergy < a.ResumeAt*MaxSprayEnergy(s, g.cfg.Spray) {
			return 0
		}
		a.resting = false
	}

	x, y, ok := nearestToxic(s.Grid, a.x, a.y)
	if !ok {
		s.Scrubbing = false
		return 0
	}
	a.x, a.y = x, y

	s.Scrubbing = true
	cleared := 0
	for range a.ScrubsPerTick {
		if s.SprayEnergy <= 0 {
			a.resting = true
			s.Scrubbing = false
			break
		}
		cleared += g.scrub(x, y)
	}
	return cleared
}

// nearestToxic finds the toxic tile closest to (x, y) by squared distance.
// Ties go to the first tile in row-major order.
func nearestToxic(g *systems.Grid, x, y int) (int, int, bool) {
	best := -1
	bx, by := 0, 0
	for ty := 0; ty < g.Size; ty++ {
		for tx := 0; tx < g.Size; tx++ {
			if g.At(tx, ty).Biome != components.BiomeToxic {
				continue
			}
			dx, dy := tx-x, ty-y
			if d := dx*dx + dy*dy; best < 0 || d < best {
				best, bx, by = d, tx, ty
			}
		}
	}
	return bx, by, best >= 0
}
