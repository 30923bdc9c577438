package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/rewild/components"
)

func TestNearestToxic(t *testing.T) {
	s := testState(8, components.BiomeGrass)
	s.Grid.At(5, 5).Biome = components.BiomeToxic
	s.Grid.At(1, 2).Biome = components.BiomeToxic
	s.Grid.At(2, 1).Biome = components.BiomeToxic

	x, y, ok := nearestToxic(s.Grid, 0, 0)
	require.True(t, ok)
	assert.Equal(t, [2]int{2, 1}, [2]int{x, y}, "ties resolve in row-major order")

	x, y, ok = nearestToxic(s.Grid, 7, 7)
	require.True(t, ok)
	assert.Equal(t, [2]int{5, 5}, [2]int{x, y})

	_, _, ok = nearestToxic(testState(4, components.BiomeGrass).Grid, 0, 0)
	assert.False(t, ok)
}

func TestAutopilot_ReducesPollution(t *testing.T) {
	g := newTestGame(t, quietConfig())
	pilot := NewAutopilot(5)
	before := g.View().Metrics.Toxic

	for range 200 {
		pilot.Step(g)
		g.Step()
	}

	assert.Less(t, g.Metrics().Toxic, before)
}

func TestAutopilot_RestsWhenEmpty(t *testing.T) {
	g := newTestGame(t, quietConfig())
	g.state.SprayEnergy = 0.15
	pilot := NewAutopilot(5)

	pilot.Step(g)
	assert.True(t, pilot.resting)
	assert.False(t, g.View().Scrubbing, "resting lets the tank refill")

	g.state.SprayEnergy = 49
	assert.Zero(t, pilot.Step(g))
	assert.True(t, pilot.resting)

	g.state.SprayEnergy = 50
	pilot.Step(g)
	assert.False(t, pilot.resting)
	assert.True(t, g.View().Scrubbing)
}
