package systems

import (
	"testing"

	"github.com/pthm-cable/rewild/components"
)

func TestNeighbors_Counts(t *testing.T) {
	g := NewGrid(5)
	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"corner", 0, 0, 3},
		{"far corner", 4, 4, 3},
		{"edge", 2, 0, 5},
		{"interior", 2, 2, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Neighbors(tt.x, tt.y, nil)
			if len(got) != tt.want {
				t.Errorf("Neighbors(%d, %d) returned %d tiles, want %d", tt.x, tt.y, len(got), tt.want)
			}
		})
	}
}

func TestNeighbors_RowMajorOrder(t *testing.T) {
	g := NewGrid(3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			g.At(x, y).Moisture = float64(y*3 + x)
		}
	}

	got := g.Neighbors(1, 1, nil)
	want := []float64{0, 1, 2, 3, 5, 6, 7, 8}
	for i, tile := range got {
		if tile.Moisture != want[i] {
			t.Errorf("neighbour %d: moisture %.0f, want %.0f", i, tile.Moisture, want[i])
		}
	}
}

func TestNeighbors_ReusesBuffer(t *testing.T) {
	g := NewGrid(4)
	buf := make([]*components.Tile, 0, 8)
	buf = g.Neighbors(1, 1, buf[:0])
	buf = g.Neighbors(0, 0, buf[:0])
	if len(buf) != 3 {
		t.Errorf("expected 3 tiles after reuse, got %d", len(buf))
	}
}

func TestClamp(t *testing.T) {
	g := NewGrid(10)
	tests := []struct {
		x, y   int
		wx, wy int
	}{
		{-5, 3, 0, 3},
		{12, -1, 9, 0},
		{4, 4, 4, 4},
		{10, 10, 9, 9},
	}
	for _, tt := range tests {
		x, y := g.Clamp(tt.x, tt.y)
		if x != tt.wx || y != tt.wy {
			t.Errorf("Clamp(%d, %d) = (%d, %d), want (%d, %d)", tt.x, tt.y, x, y, tt.wx, tt.wy)
		}
	}
}

func TestClone_Independent(t *testing.T) {
	g := uniformGrid(4, components.BiomeBarren, 10)
	c := g.Clone()
	c.At(1, 1).Biome = components.BiomeForest

	if g.At(1, 1).Biome != components.BiomeBarren {
		t.Error("mutating the clone changed the original")
	}
	if c.Size != g.Size {
		t.Errorf("clone size %d, want %d", c.Size, g.Size)
	}
}

func TestGridFromTiles_RejectsWrongLength(t *testing.T) {
	if _, err := GridFromTiles(3, make([]components.Tile, 8)); err == nil {
		t.Error("expected error for 8 tiles in a 3x3 grid")
	}
	g, err := GridFromTiles(3, make([]components.Tile, 9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.InBounds(2, 2) || g.InBounds(3, 0) {
		t.Error("bounds do not match size 3")
	}
}

func TestIndex_MatchesAt(t *testing.T) {
	g := NewGrid(4)
	g.At(3, 2).Toxicity = 7

	i := g.Index(3, 2)
	if i != 11 {
		t.Fatalf("Index(3, 2) = %d, want 11", i)
	}
	if g.Tiles()[i].Toxicity != 7 {
		t.Error("At and Index address different tiles")
	}
}
