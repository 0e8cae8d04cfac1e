package frontier

import (
	"github.com/LdDl/explore-go/costmap"
)

// GridMap is the read-only occupancy grid walked by the search.
// Callers must keep it unchanged for the whole duration of one search.
type GridMap interface {
	SizeInCellsX() int
	SizeInCellsY() int
	Resolution() float64
	Cost(idx int) uint8
	Index(mx, my int) int
	IndexToCells(idx int) (int, int)
	MapToWorld(mx, my int) (float64, float64)
	WorldToMap(wx, wy float64) (int, int, bool)
}

// CellClass is the classification of a single grid cell
type CellClass uint8

const (
	// Free is traversable explored space
	Free CellClass = iota
	// Obstacle covers lethal, inscribed and inflated costs
	Obstacle
	// Unknown is unexplored space
	Unknown
)

func (c CellClass) String() string {
	switch c {
	case Free:
		return "free"
	case Obstacle:
		return "obstacle"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Classify derives cell classification from a raw cost value
func Classify(cost uint8) CellClass {
	switch cost {
	case costmap.FreeSpace:
		return Free
	case costmap.NoInformation:
		return Unknown
	default:
		return Obstacle
	}
}

// cellToWorld converts flat index into world coordinates of the cell centre
func cellToWorld(grid GridMap, idx int) Point {
	mx, my := grid.IndexToCells(idx)
	wx, wy := grid.MapToWorld(mx, my)
	return Point{X: wx, Y: wy}
}

// nhood4 appends the 4-connected neighbours of idx to buf: left, right, down, up.
// Off-map indices produce no neighbours.
func nhood4(buf []int, idx int, grid GridMap) []int {
	buf = buf[:0]
	sizeX := grid.SizeInCellsX()
	total := sizeX * grid.SizeInCellsY()
	if idx < 0 || idx >= total {
		return buf
	}
	if idx%sizeX > 0 {
		buf = append(buf, idx-1)
	}
	if idx%sizeX < sizeX-1 {
		buf = append(buf, idx+1)
	}
	if idx >= sizeX {
		buf = append(buf, idx-sizeX)
	}
	if idx < total-sizeX {
		buf = append(buf, idx+sizeX)
	}
	return buf
}

// nhood8 appends the 8-connected neighbours of idx to buf:
// the 4-connected ones followed by the four diagonals.
func nhood8(buf []int, idx int, grid GridMap) []int {
	buf = nhood4(buf, idx, grid)
	sizeX := grid.SizeInCellsX()
	total := sizeX * grid.SizeInCellsY()
	if idx < 0 || idx >= total {
		return buf
	}
	hasLeft := idx%sizeX > 0
	hasRight := idx%sizeX < sizeX-1
	hasDown := idx >= sizeX
	hasUp := idx < total-sizeX
	if hasLeft && hasDown {
		buf = append(buf, idx-1-sizeX)
	}
	if hasLeft && hasUp {
		buf = append(buf, idx-1+sizeX)
	}
	if hasRight && hasDown {
		buf = append(buf, idx+1-sizeX)
	}
	if hasRight && hasUp {
		buf = append(buf, idx+1+sizeX)
	}
	return buf
}
