package systems

import (
	"github.com/pthm-cable/rewild/components"
)

// scriptedRand replays fixed sequences, cycling when exhausted.
// With no floats it returns fallback; with no ints it returns 0.
type scriptedRand struct {
	floats   []float64
	ints     []int
	fallback float64
	fi, ii   int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return r.fallback
	}
	v := r.floats[r.fi%len(r.floats)]
	r.fi++
	return v
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.ii%len(r.ints)]
	r.ii++
	return min(v, n-1)
}

// always returns a source whose every roll is v.
func always(v float64) *scriptedRand {
	return &scriptedRand{fallback: v}
}

// uniformGrid builds a size x size grid filled with one biome.
func uniformGrid(size int, biome components.Biome, moisture float64) *Grid {
	g := NewGrid(size)
	for i := range g.Tiles() {
		g.Tiles()[i] = components.Tile{Biome: biome, Moisture: moisture}
		if biome == components.BiomeToxic {
			g.Tiles()[i].Toxicity = 100
		}
	}
	return g
}
