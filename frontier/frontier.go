package frontier

import (
	"github.com/google/uuid"
)

// Frontier is a contiguous cluster of unknown cells bordering free space.
// All positions are world coordinates of cell centres.
type Frontier struct {
	ID uuid.UUID
	// Cell that first triggered detection
	Initial Point
	// Mean of Initial and all Points
	Centroid Point
	// Member closest to the reference position. Equals Initial when Points is empty
	Middle Point
	// Number of member cells, Initial included
	Size int
	// Distance from the reference position to Middle. +Inf when Points is empty
	MinDistance float64
	// Members discovered after Initial, in discovery order
	Points []Point
	// Ranking score, lower is better
	Cost float64
	// Extent covering footprints of all member cells
	BBox Rectangle
}

// flagArena holds per-search visitation state shared by both traversals.
// It must not outlive a single search.
type flagArena struct {
	visited  []bool
	frontier []bool
	// neighbour buffers, one per nesting level
	outer  []int
	region []int
	probe  []int
}

func newFlagArena(cells int) *flagArena {
	return &flagArena{
		visited:  make([]bool, cells),
		frontier: make([]bool, cells),
		outer:    make([]int, 0, 4),
		region:   make([]int, 0, 8),
		probe:    make([]int, 0, 4),
	}
}
