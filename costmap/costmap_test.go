package costmap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	_, err := New(0, 3, 0.1, 0, 0, FreeSpace)
	assert.ErrorIs(t, err, ErrEmptyMap)

	_, err = New(3, 3, 0, 0, 0, FreeSpace)
	assert.ErrorIs(t, err, ErrBadResolution)

	_, err = NewFromData(2, 2, 0.1, 0, 0, make([]uint8, 3))
	assert.ErrorIs(t, err, ErrDataSize)

	cm, err := New(4, 3, 0.5, -1, -2, NoInformation)
	require.NoError(t, err)
	assert.Equal(t, 4, cm.SizeInCellsX())
	assert.Equal(t, 3, cm.SizeInCellsY())
	for i := range cm.Data() {
		assert.Equal(t, NoInformation, cm.Cost(i))
	}
}

func TestIndexRoundTrip(t *testing.T) {
	cm, err := New(5, 4, 1.0, 0, 0, FreeSpace)
	require.NoError(t, err)
	for my := 0; my < 4; my++ {
		for mx := 0; mx < 5; mx++ {
			idx := cm.Index(mx, my)
			gx, gy := cm.IndexToCells(idx)
			assert.Equal(t, mx, gx)
			assert.Equal(t, my, gy)
		}
	}
	cm.SetCost(3, 2, LethalObstacle)
	assert.Equal(t, LethalObstacle, cm.CostAt(3, 2))
	assert.Equal(t, LethalObstacle, cm.Cost(2*5+3))
}

func TestWorldTransforms(t *testing.T) {
	cm, err := New(10, 6, 0.5, -2.0, 1.0, FreeSpace)
	require.NoError(t, err)

	wx, wy := cm.MapToWorld(0, 0)
	assert.InDelta(t, -1.75, wx, 1e-9)
	assert.InDelta(t, 1.25, wy, 1e-9)

	mx, my, ok := cm.WorldToMap(wx, wy)
	require.True(t, ok)
	assert.Equal(t, 0, mx)
	assert.Equal(t, 0, my)

	mx, my, ok = cm.WorldToMap(2.99, 3.99)
	require.True(t, ok)
	assert.Equal(t, 9, mx)
	assert.Equal(t, 5, my)

	outside := [][2]float64{
		{-2.01, 1.5}, {0, 0.99}, {3.0, 2.0}, {0, 4.0},
		{math.NaN(), 2.0}, {0, math.NaN()}, {math.Inf(1), 2.0}, {0, math.Inf(-1)},
	}
	for _, p := range outside {
		_, _, ok := cm.WorldToMap(p[0], p[1])
		assert.False(t, ok, "point %v must be outside", p)
	}
	assert.True(t, cm.InBounds(9, 5))
	assert.False(t, cm.InBounds(10, 5))
}
