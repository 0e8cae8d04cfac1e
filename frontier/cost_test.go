package frontier

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostModelScoreArmed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bias.AvoidPoint = Point{X: 0, Y: 0}
	cfg.Bias.NoiseStdDev = 0
	model := NewCostModel(cfg, nil, rand.NewPCG(1, 1))

	f := Frontier{
		Middle:      Point{X: 3, Y: 4},
		Size:        10,
		MinDistance: 2,
	}
	// robot 4 away from the avoid point: latch arms
	cost := model.Score(&f, Point{X: 4, Y: 0}, 0.05)
	expected := 1e-3*2*0.05 - 1.0*10*0.05 + 3.0*5.0*0.05
	assert.InDelta(t, expected, cost, eps)
	assert.Equal(t, Armed, model.GetSession().State())

	// inside the near band the bias vanishes
	cost = model.Score(&f, Point{X: 1, Y: 0}, 0.05)
	assert.InDelta(t, 1e-3*2*0.05-1.0*10*0.05, cost, eps)
}

func TestCostModelZeroPotentialSingleCell(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PotentialScale = 0
	model := NewCostModel(cfg, nil, rand.NewPCG(1, 1))
	f := Frontier{Size: 1, MinDistance: math.Inf(1)}
	cost := model.Score(&f, Point{X: 100, Y: 100}, 1.0)
	assert.False(t, math.IsNaN(cost))
	assert.InDelta(t, -1.0, cost, eps)
}

func TestCostModelRank(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PotentialScale = 1.0
	model := NewCostModel(cfg, nil, rand.NewPCG(3, 4))
	frontiers := []Frontier{
		{Size: 2, MinDistance: 1},
		{Size: 9, MinDistance: 1},
		{Size: 5, MinDistance: 1},
	}
	model.Rank(frontiers, Point{X: 50, Y: 50}, 1.0)
	require.Len(t, frontiers, 3)
	sizes := []int{frontiers[0].Size, frontiers[1].Size, frontiers[2].Size}
	assert.Equal(t, []int{9, 5, 2}, sizes)
	for i := 1; i < len(frontiers); i++ {
		assert.LessOrEqual(t, frontiers[i-1].Cost, frontiers[i].Cost)
	}
}
