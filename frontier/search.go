package frontier

import (
	"math/rand/v2"
	"sync"

	"github.com/LdDl/explore-go/costmap"
	"github.com/pkg/errors"
)

// Search finds and ranks frontiers on a grid map.
// Search is not safe for concurrent use; give each goroutine its own Search
// and share a BiasSession between them if the bias latch must be common.
type Search struct {
	grid  GridMap
	cfg   Config
	model *CostModel
	diag  Diagnostics

	session *BiasSession
	src     rand.Source
}

// Option customizes Search
type Option func(*Search)

// WithDiagnostics sets receiver of warnings and errors. Default is KlogDiagnostics
func WithDiagnostics(diag Diagnostics) Option {
	return func(s *Search) {
		if diag != nil {
			s.diag = diag
		}
	}
}

// WithRandSource sets source of cost model noise. Fix the seed to make ranking reproducible
func WithRandSource(src rand.Source) Option {
	return func(s *Search) {
		s.src = src
	}
}

// WithBiasSession sets the avoid-point latch carried between searches
func WithBiasSession(session *BiasSession) Option {
	return func(s *Search) {
		if session != nil {
			s.session = session
		}
	}
}

// NewSearchDefault creates Search with DefaultConfig
func NewSearchDefault(grid GridMap) *Search {
	return NewSearch(grid, DefaultConfig())
}

// NewSearch creates new instance of Search
func NewSearch(grid GridMap, cfg Config, opts ...Option) *Search {
	s := &Search{
		grid: grid,
		cfg:  cfg,
		diag: KlogDiagnostics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.model = NewCostModel(cfg, s.session, s.src)
	s.session = s.model.GetSession()
	return s
}

// GetConfig returns search configuration
func (s *Search) GetConfig() Config {
	return s.cfg
}

// GetBiasSession returns the avoid-point latch used by the search
func (s *Search) GetBiasSession() *BiasSession {
	return s.session
}

// SearchWithLock holds mu for the whole search and releases it on every exit path
func (s *Search) SearchWithLock(mu sync.Locker, position Point) ([]Frontier, error) {
	mu.Lock()
	defer mu.Unlock()
	return s.SearchFrom(position)
}

// SearchFrom returns frontiers reachable from robot position, sorted ascending by cost.
// The caller must keep the map unchanged during the call (see SearchWithLock).
// When position lies outside the map the result is empty and the error wraps ErrOutOfBounds;
// the condition is also reported to diagnostics.
func (s *Search) SearchFrom(position Point) ([]Frontier, error) {
	frontiers := make([]Frontier, 0)

	mx, my, ok := s.grid.WorldToMap(position.X, position.Y)
	if !ok {
		err := errors.Wrapf(ErrOutOfBounds, "position (%f, %f)", position.X, position.Y)
		s.diag.Errorf("%v", err)
		return frontiers, err
	}
	pos := s.grid.Index(mx, my)
	arena := newFlagArena(s.grid.SizeInCellsX() * s.grid.SizeInCellsY())

	frontiers = s.classify(arena, pos, frontiers)
	s.model.Rank(frontiers, position, s.grid.Resolution())
	s.diag.Infof("frontier: found %d frontiers from (%f, %f)", len(frontiers), position.X, position.Y)
	return frontiers, nil
}

// classify walks known space outward from the robot cell and builds a frontier
// for each new frontier cell met on the way. Neighbours no worse than the
// current cell are admitted, so the walk spreads through free space even when
// it starts on a costly cell.
//
// Time: O(reachable free + frontier cells). Memory: O(W·H).
func (s *Search) classify(arena *flagArena, pos int, frontiers []Frontier) []Frontier {
	anchor, found := nearestCell(s.grid, pos, costmap.FreeSpace, s.cfg.NearestFreeRadius)
	if !found {
		anchor = pos
		s.diag.Warningf("%v", errors.Wrapf(ErrNoNearbyFreeCell, "seed cell %d", pos))
	}
	resolution := s.grid.Resolution()

	queue := []int{anchor}
	arena.visited[anchor] = true
	for qi := 0; qi < len(queue); qi++ {
		idx := queue[qi]
		arena.outer = nhood4(arena.outer, idx, s.grid)
		for _, nbr := range arena.outer {
			if s.grid.Cost(nbr) <= s.grid.Cost(idx) && !arena.visited[nbr] {
				arena.visited[nbr] = true
				queue = append(queue, nbr)
			} else if s.isNewFrontierCell(arena, nbr) {
				arena.frontier[nbr] = true
				newFrontier := s.buildNewFrontier(arena, nbr, pos)
				if float64(newFrontier.Size)*resolution >= s.cfg.MinFrontierSize {
					frontiers = append(frontiers, newFrontier)
				}
			}
		}
	}
	return frontiers
}
