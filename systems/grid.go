package systems

import (
	"fmt"

	"github.com/pthm-cable/rewild/components"
)

// Grid is a square tile map stored in row-major order.
// Every cell is always populated; the size is fixed for the grid's lifetime.
type Grid struct {
	Size  int
	tiles []components.Tile
}

// NewGrid allocates a size x size grid of zero tiles (toxic, no moisture).
func NewGrid(size int) *Grid {
	if size <= 0 {
		size = 1
	}
	return &Grid{Size: size, tiles: make([]components.Tile, size*size)}
}

// GridFromTiles builds a grid around an existing row-major tile slice.
func GridFromTiles(size int, tiles []components.Tile) (*Grid, error) {
	if size <= 0 || len(tiles) != size*size {
		return nil, fmt.Errorf("grid: %d tiles do not fill a %dx%d grid", len(tiles), size, size)
	}
	return &Grid{Size: size, tiles: tiles}, nil
}

// Tiles exposes the backing slice so callers can read/write tiles directly.
func (g *Grid) Tiles() []components.Tile { return g.tiles }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.Size + x }

// At returns the tile at (x, y). Coordinates must be in bounds.
func (g *Grid) At(x, y int) *components.Tile { return &g.tiles[g.Index(x, y)] }

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Size && y >= 0 && y < g.Size
}

// Clamp pulls (x, y) onto the nearest in-bounds cell.
func (g *Grid) Clamp(x, y int) (int, int) {
	return clampInt(x, 0, g.Size-1), clampInt(y, 0, g.Size-1)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	tiles := make([]components.Tile, len(g.tiles))
	copy(tiles, g.tiles)
	return &Grid{Size: g.Size, tiles: tiles}
}

// Neighbors appends the up to eight tiles surrounding (x, y) to buf and
// returns it. Positions off the grid are skipped, never wrapped. The order is
// row-major (top-left first) and stable across calls.
func (g *Grid) Neighbors(x, y int, buf []*components.Tile) []*components.Tile {
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= g.Size {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			if nx < 0 || nx >= g.Size {
				continue
			}
			buf = append(buf, &g.tiles[ny*g.Size+nx])
		}
	}
	return buf
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
