package frontier

import (
	"github.com/pkg/errors"
)

var (
	// ErrOutOfBounds is returned when the search origin lies outside the map
	ErrOutOfBounds = errors.New("frontier: robot out of costmap bounds, cannot search for frontiers")
	// ErrNoNearbyFreeCell is reported when no free cell can anchor the search
	ErrNoNearbyFreeCell = errors.New("frontier: could not find nearby clear cell to start search")
	// ErrInvalidConfig is returned when configuration values are inconsistent
	ErrInvalidConfig = errors.New("frontier: invalid configuration")
)
