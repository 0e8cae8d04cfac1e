package frontier

import (
	"math"

	"github.com/google/uuid"
)

// buildNewFrontier grows the frontier seeded at initial, which the caller has
// already flagged. Growth is breadth-first over the 8-neighbourhood and only
// accepts new frontier cells; every accepted cell is flagged in the arena so
// it can never join another frontier during the same search.
func (s *Search) buildNewFrontier(arena *flagArena, initial, reference int) Frontier {
	resolution := s.grid.Resolution()
	output := Frontier{
		ID:          uuid.New(),
		Size:        1,
		MinDistance: math.Inf(1),
		Points:      make([]Point, 0),
	}
	output.Initial = cellToWorld(s.grid, initial)
	output.Middle = output.Initial
	output.BBox = cellRect(output.Initial, resolution)
	sumX, sumY := output.Initial.X, output.Initial.Y

	referencePoint := cellToWorld(s.grid, reference)

	queue := []int{initial}
	for qi := 0; qi < len(queue); qi++ {
		idx := queue[qi]
		arena.region = nhood8(arena.region, idx, s.grid)
		for _, nbr := range arena.region {
			if !s.isNewFrontierCell(arena, nbr) {
				continue
			}
			arena.frontier[nbr] = true
			point := cellToWorld(s.grid, nbr)
			output.Points = append(output.Points, point)
			output.Size++
			sumX += point.X
			sumY += point.Y
			output.BBox = output.BBox.Union(cellRect(point, resolution))

			// closest member to the reference position
			distance := euclideanDistance(referencePoint, point)
			if distance < output.MinDistance {
				output.MinDistance = distance
				output.Middle = point
			}
			queue = append(queue, nbr)
		}
	}

	output.Centroid = Point{
		X: sumX / float64(output.Size),
		Y: sumY / float64(output.Size),
	}
	return output
}

// isNewFrontierCell reports whether idx is unknown, not yet part of any
// frontier, and touches free space through its 4-neighbourhood.
func (s *Search) isNewFrontierCell(arena *flagArena, idx int) bool {
	if Classify(s.grid.Cost(idx)) != Unknown || arena.frontier[idx] {
		return false
	}
	arena.probe = nhood4(arena.probe, idx, s.grid)
	for _, nbr := range arena.probe {
		if Classify(s.grid.Cost(nbr)) == Free {
			return true
		}
	}
	return false
}
