package frontier

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/LdDl/explore-go/costmap"
)

type recordingDiagnostics struct {
	infos    []string
	warnings []string
	errors   []string
}

func (r *recordingDiagnostics) Infof(format string, args ...any) {
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func (r *recordingDiagnostics) Warningf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *recordingDiagnostics) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

// gridFromRows builds a unit-resolution costmap from rows drawn top to bottom:
// '.' free, '#' lethal, '?' unknown.
func gridFromRows(t *testing.T, rows ...string) *costmap.Costmap {
	t.Helper()
	sizeY := len(rows)
	sizeX := len(rows[0])
	cm, err := costmap.New(sizeX, sizeY, 1.0, 0.0, 0.0, costmap.FreeSpace)
	require.NoError(t, err)
	for row, line := range rows {
		require.Len(t, line, sizeX)
		my := sizeY - row - 1
		for mx, c := range line {
			switch c {
			case '#':
				cm.SetCost(mx, my, costmap.LethalObstacle)
			case '?':
				cm.SetCost(mx, my, costmap.NoInformation)
			}
		}
	}
	return cm
}

// scenarioGrid is a 5x5 free map with two unknown cells in the top-left corner
func scenarioGrid(t *testing.T) *costmap.Costmap {
	return gridFromRows(t,
		"??...",
		".....",
		".....",
		".....",
		".....",
	)
}

func TestSearchFromScenario(t *testing.T) {
	diag := &recordingDiagnostics{}
	search := NewSearch(scenarioGrid(t), DefaultConfig(), WithDiagnostics(diag))

	frontiers, err := search.SearchFrom(Point{X: 2.5, Y: 2.5})
	require.NoError(t, err)
	require.Len(t, frontiers, 1)

	f := frontiers[0]
	assert.Equal(t, Point{X: 1.5, Y: 4.5}, f.Initial)
	assert.Equal(t, []Point{{X: 0.5, Y: 4.5}}, f.Points)
	assert.Equal(t, 2, f.Size)
	assert.InDelta(t, 1.0, f.Centroid.X, eps)
	assert.InDelta(t, 4.5, f.Centroid.Y, eps)
	assert.InDelta(t, math.Sqrt(8), f.MinDistance, eps)
	assert.Equal(t, Point{X: 0.5, Y: 4.5}, f.Middle)
	// robot is beyond the far threshold, so the bias stays unarmed
	assert.InDelta(t, 1e-3*math.Sqrt(8)-2.0, f.Cost, eps)
	assert.Equal(t, NewRect(0.0, 4.0, 2.0, 1.0), f.BBox)
	assert.Equal(t, Unarmed, search.GetBiasSession().State())
	assert.Empty(t, diag.warnings)
	assert.Empty(t, diag.errors)
	assert.Len(t, diag.infos, 1)
}

func TestSearchFromSizeFilter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinFrontierSize = 2.0
	frontiers, err := NewSearch(scenarioGrid(t), cfg).SearchFrom(Point{X: 2.5, Y: 2.5})
	require.NoError(t, err)
	assert.Len(t, frontiers, 1)

	cfg.MinFrontierSize = 2.0001
	frontiers, err = NewSearch(scenarioGrid(t), cfg).SearchFrom(Point{X: 2.5, Y: 2.5})
	require.NoError(t, err)
	assert.NotNil(t, frontiers)
	assert.Empty(t, frontiers)
}

func mazeGrid(t *testing.T) *costmap.Costmap {
	return gridFromRows(t,
		"???.....??",
		"?.......??",
		"?...##....",
		"....##...?",
		"....##...?",
		"..........",
		"?........?",
		"??......??",
	)
}

func TestSearchFromRegionInvariants(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinFrontierSize = 0
	search := NewSearch(mazeGrid(t), cfg, WithRandSource(rand.NewPCG(1, 2)))
	frontiers, err := search.SearchFrom(Point{X: 2.5, Y: 2.5})
	require.NoError(t, err)
	require.NotEmpty(t, frontiers)

	seen := make(map[Point]int)
	for i, f := range frontiers {
		require.Equal(t, len(f.Points)+1, f.Size)

		xs := []float64{f.Initial.X}
		ys := []float64{f.Initial.Y}
		for _, p := range f.Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
		assert.InDelta(t, stat.Mean(xs, nil), f.Centroid.X, eps, "frontier %d centroid X", i)
		assert.InDelta(t, stat.Mean(ys, nil), f.Centroid.Y, eps, "frontier %d centroid Y", i)

		members := append([]Point{f.Initial}, f.Points...)
		for _, p := range members {
			if other, ok := seen[p]; ok {
				t.Errorf("cell %v belongs to frontiers %d and %d", p, other, i)
			}
			seen[p] = i
		}

		if i > 0 {
			assert.LessOrEqual(t, frontiers[i-1].Cost, f.Cost, "frontiers must be sorted ascending by cost")
		}
	}
	// four corner regions and the pair on the right edge
	assert.Len(t, frontiers, 5)
}

func TestSearchFromSeededReproducible(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinFrontierSize = 0
	// robot sits 4.5 away from the avoid point, which arms the bias
	cfg.Bias.AvoidPoint = Point{X: -2.0, Y: 2.5}
	position := Point{X: 2.5, Y: 2.5}

	first, err := NewSearch(mazeGrid(t), cfg, WithRandSource(rand.NewPCG(7, 11))).SearchFrom(position)
	require.NoError(t, err)
	second, err := NewSearch(mazeGrid(t), cfg, WithRandSource(rand.NewPCG(7, 11))).SearchFrom(position)
	require.NoError(t, err)

	ignoreID := cmpopts.IgnoreFields(Frontier{}, "ID")
	if diff := cmp.Diff(first, second, ignoreID); diff != "" {
		t.Errorf("same seed gave different rankings (-first +second):\n%s", diff)
	}

	third, err := NewSearch(mazeGrid(t), cfg, WithRandSource(rand.NewPCG(8, 11))).SearchFrom(position)
	require.NoError(t, err)
	require.Len(t, third, len(first))
	costs := func(fs []Frontier) map[Point]float64 {
		out := make(map[Point]float64, len(fs))
		for _, f := range fs {
			out[f.Initial] = f.Cost
		}
		return out
	}
	assert.NotEqual(t, costs(first), costs(third), "noise must depend on the seed")
}

func TestSearchFromOutOfBounds(t *testing.T) {
	diag := &recordingDiagnostics{}
	search := NewSearch(scenarioGrid(t), DefaultConfig(), WithDiagnostics(diag))

	positions := []Point{
		{X: -0.1, Y: 2.0}, {X: 2.0, Y: 5.0}, {X: 100, Y: 100},
		{X: math.NaN(), Y: 2.5}, {X: 2.5, Y: math.NaN()},
	}
	for _, position := range positions {
		frontiers, err := search.SearchFrom(position)
		require.ErrorIs(t, err, ErrOutOfBounds)
		assert.NotNil(t, frontiers)
		assert.Empty(t, frontiers)
	}
	assert.Len(t, diag.errors, len(positions))
	assert.Empty(t, diag.infos)
}

func TestSearchFromNoFreeCell(t *testing.T) {
	cm, err := costmap.New(4, 4, 0.5, 0.0, 0.0, costmap.NoInformation)
	require.NoError(t, err)
	diag := &recordingDiagnostics{}

	frontiers, err := NewSearch(cm, DefaultConfig(), WithDiagnostics(diag)).SearchFrom(Point{X: 1.0, Y: 1.0})
	require.NoError(t, err)
	assert.Empty(t, frontiers)
	require.Len(t, diag.warnings, 1)
	assert.True(t, strings.Contains(diag.warnings[0], ErrNoNearbyFreeCell.Error()))
}

func TestSearchFromObstacleCell(t *testing.T) {
	// robot is localized on top of the wall
	cm := gridFromRows(t,
		"?....",
		".....",
		"..#..",
		".....",
		".....",
	)
	diag := &recordingDiagnostics{}
	frontiers, err := NewSearch(cm, DefaultConfig(), WithDiagnostics(diag)).SearchFrom(Point{X: 2.5, Y: 2.5})
	require.NoError(t, err)
	assert.Empty(t, diag.warnings)
	require.Len(t, frontiers, 1)
	assert.Equal(t, Point{X: 0.5, Y: 4.5}, frontiers[0].Initial)
}

func TestSearchFromWallHidesUnknown(t *testing.T) {
	// unknown cells behind the wall touch no free cell
	cm := gridFromRows(t,
		"..#??",
		"..#??",
		"..#??",
	)
	cfg := DefaultConfig()
	cfg.MinFrontierSize = 0
	frontiers, err := NewSearch(cm, cfg).SearchFrom(Point{X: 0.5, Y: 0.5})
	require.NoError(t, err)
	assert.Empty(t, frontiers)
}

func TestSearchFromDiagonalMerge(t *testing.T) {
	// the two unknown cells touch only by corner and still form one region
	cm := gridFromRows(t,
		"?....",
		".?...",
		".....",
	)
	cfg := DefaultConfig()
	cfg.MinFrontierSize = 0
	frontiers, err := NewSearch(cm, cfg).SearchFrom(Point{X: 3.5, Y: 0.5})
	require.NoError(t, err)
	require.Len(t, frontiers, 1)
	assert.Equal(t, 2, frontiers[0].Size)
}

func TestSearchWithLock(t *testing.T) {
	cm := scenarioGrid(t)
	search := NewSearchDefault(cm)

	frontiers, err := search.SearchWithLock(cm.Mutex(), Point{X: 2.5, Y: 2.5})
	require.NoError(t, err)
	assert.Len(t, frontiers, 1)
	require.True(t, cm.Mutex().TryLock(), "lock must be released after the search")
	cm.Mutex().Unlock()

	_, err = search.SearchWithLock(cm.Mutex(), Point{X: -1, Y: -1})
	require.ErrorIs(t, err, ErrOutOfBounds)
	require.True(t, cm.Mutex().TryLock(), "lock must be released after a failed search")
	cm.Mutex().Unlock()
}

func TestSearchSharedBiasSession(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bias.AvoidPoint = Point{X: -2.0, Y: 2.5}
	session := NewBiasSession()
	first := NewSearch(scenarioGrid(t), cfg, WithBiasSession(session))
	second := NewSearch(scenarioGrid(t), cfg, WithBiasSession(session))

	_, err := first.SearchFrom(Point{X: 2.5, Y: 2.5})
	require.NoError(t, err)
	assert.Equal(t, Armed, second.GetBiasSession().State())
	assert.Same(t, session, second.GetBiasSession())
}
