package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/rewild/components"
	"github.com/pthm-cable/rewild/config"
	"github.com/pthm-cable/rewild/systems"
)

func TestNewState_StartsOnLevel(t *testing.T) {
	cfg := config.Defaults()
	s, err := NewState(cfg, 0, systems.NewRand(1))
	require.NoError(t, err)

	assert.Equal(t, systems.SmallMapSize, s.Grid.Size)
	assert.Equal(t, 120, s.TimeRemaining)
	assert.Equal(t, cfg.Spray.BaseMax, s.SprayEnergy)
	assert.False(t, s.Completed)
	assert.Zero(t, s.Agents.Len())
}

func TestLoadLevel_UnknownIndex(t *testing.T) {
	cfg := config.Defaults()
	s, err := NewState(cfg, 0, systems.NewRand(1))
	require.NoError(t, err)
	grid := s.Grid

	for _, idx := range []int{-1, len(cfg.Levels)} {
		err := s.LoadLevel(cfg, idx, systems.NewRand(1))
		assert.ErrorIs(t, err, ErrUnknownLevel)
	}
	assert.Same(t, grid, s.Grid, "failed load must not touch the grid")
	assert.Equal(t, 0, s.LevelIndex)
}

func TestLoadLevel_CarriesSessionResources(t *testing.T) {
	cfg := config.Defaults()
	rng := systems.NewRand(1)
	s, err := NewState(cfg, 0, rng)
	require.NoError(t, err)

	s.Biomass = 420
	s.SprayEnergy = 12
	s.Unlocked[TechRadius1] = true
	s.Completed = true
	s.Scrubbing = true
	s.TimeRemaining = 3
	s.Agents.Spawn(components.KindHerbivore, 1, 1, 100)

	require.NoError(t, s.LoadLevel(cfg, 2, rng))

	assert.Equal(t, 2, s.LevelIndex)
	assert.Equal(t, systems.LargeMapSize, s.Grid.Size)
	assert.Equal(t, 420, s.Biomass)
	assert.Equal(t, 12.0, s.SprayEnergy)
	assert.True(t, s.HasTech(TechRadius1))

	assert.False(t, s.Completed)
	assert.False(t, s.Scrubbing)
	assert.Equal(t, 120, s.TimeRemaining)
	assert.Zero(t, s.Agents.Len())
}

func TestRetryLevel_RestoresSavedGrid(t *testing.T) {
	cfg := config.Defaults()
	rng := systems.NewRand(1)
	s, err := NewState(cfg, 0, rng)
	require.NoError(t, err)

	// Partial progress on level 0
	*s.Grid.At(0, 0) = components.Tile{Biome: components.BiomeForest, Moisture: 55, Variation: 0.25}
	want := append([]components.Tile(nil), s.Grid.Tiles()...)

	require.NoError(t, s.LoadLevel(cfg, 1, rng))
	assert.True(t, s.HasSnapshot(0))

	require.NoError(t, s.LoadLevel(cfg, 0, rng))
	assert.NotEqual(t, components.BiomeForest, s.Grid.At(0, 0).Biome, "load generates a fresh map")

	require.NoError(t, s.RetryLevel(cfg, rng))
	assert.Equal(t, want, s.Grid.Tiles())
	assert.Equal(t, 120, s.TimeRemaining)
}

func TestRetryLevel_WithoutSnapshotRegenerates(t *testing.T) {
	cfg := config.Defaults()
	rng := systems.NewRand(1)
	s, err := NewState(cfg, 0, rng)
	require.NoError(t, err)
	require.False(t, s.HasSnapshot(0))

	*s.Grid.At(0, 0) = components.Tile{Biome: components.BiomeForest}
	require.NoError(t, s.RetryLevel(cfg, rng))

	fresh := systems.Generate(components.ArchetypeRiver, systems.NewRand(9))
	for i, tile := range s.Grid.Tiles() {
		require.Equal(t, fresh.Tiles()[i].Biome, tile.Biome, "tile %d", i)
	}
}

func TestGridCodec_RoundTrip(t *testing.T) {
	g := systems.Generate(components.ArchetypeDelta, systems.NewRand(3))

	data, err := encodeGrid(g)
	require.NoError(t, err)

	got, err := decodeGrid(data)
	require.NoError(t, err)
	assert.Equal(t, g.Size, got.Size)
	assert.Equal(t, g.Tiles(), got.Tiles())
}

func TestGridCodec_RejectsGarbage(t *testing.T) {
	_, err := decodeGrid([]byte("not a snapshot"))
	assert.Error(t, err)
}
