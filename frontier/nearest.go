package frontier

// nearestCell looks for the closest cell holding cost value by breadth-first
// search over the 8-neighbourhood of start. A positive radius bounds the
// search depth in cells; zero lets it cover the whole map.
//
// Time: O(W·H) worst case. Memory: O(W·H) for visited flags.
func nearestCell(grid GridMap, start int, value uint8, radius int) (int, bool) {
	total := grid.SizeInCellsX() * grid.SizeInCellsY()
	if start < 0 || start >= total {
		return 0, false
	}
	type queueItem struct {
		idx   int
		depth int
	}
	visited := make([]bool, total)
	queue := []queueItem{{idx: start}}
	visited[start] = true
	nbrs := make([]int, 0, 8)

	for qi := 0; qi < len(queue); qi++ {
		item := queue[qi]
		if grid.Cost(item.idx) == value {
			return item.idx, true
		}
		if radius > 0 && item.depth >= radius {
			continue
		}
		nbrs = nhood8(nbrs, item.idx, grid)
		for _, nbr := range nbrs {
			if !visited[nbr] {
				visited[nbr] = true
				queue = append(queue, queueItem{idx: nbr, depth: item.depth + 1})
			}
		}
	}
	return 0, false
}
