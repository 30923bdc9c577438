package game

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/pthm-cable/rewild/components"
	"github.com/pthm-cable/rewild/systems"
)

// gridSnapshot is the gob payload of a saved level grid.
type gridSnapshot struct {
	Size  int
	Tiles []components.Tile
}

// encodeGrid serialises a grid as zstd-compressed gob.
func encodeGrid(g *systems.Grid) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}

	snap := gridSnapshot{Size: g.Size, Tiles: g.Tiles()}
	if err := gob.NewEncoder(enc).Encode(&snap); err != nil {
		enc.Close()
		return nil, fmt.Errorf("gob encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("zstd flush: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeGrid restores a grid written by encodeGrid.
func decodeGrid(data []byte) (*systems.Grid, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	var snap gridSnapshot
	if err := gob.NewDecoder(dec).Decode(&snap); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}
	return systems.GridFromTiles(snap.Size, snap.Tiles)
}
