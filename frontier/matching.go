package frontier

import (
	"github.com/arthurkushman/go-hungarian"
	"k8s.io/klog/v2"
)

// MatchingAlgorithm is for algorithm type for matching frontiers to tracks
type MatchingAlgorithm uint16

const (
	// MatchingAlgorithmHungarian uses the Hungarian algorithm (Kuhn-Munkres) for optimal assignment
	MatchingAlgorithmHungarian MatchingAlgorithm = iota
	// MatchingAlgorithmGreedy takes best pairs first; faster but potentially suboptimal
	MatchingAlgorithmGreedy
)

// similarity scores how well frontier continues track, in [0, 1].
// Overlap of extents dominates; centroid distance is the fallback when extents do not overlap.
func similarity(track *TrackedFrontier, frontier Frontier) float64 {
	iouValue := IoU(track.GetBBox(), frontier.BBox)
	distanceScore := 1.0 / (1.0 + track.DistanceTo(frontier))
	if iouValue > 0.05 {
		return iouValue*0.8 + distanceScore*0.2
	}
	return distanceScore * 0.5
}

// createSimilarityMatrix builds matrix with rows = tracks, columns = frontiers
func createSimilarityMatrix(tracks []*TrackedFrontier, frontiers []Frontier) [][]float64 {
	matrix := make([][]float64, len(tracks))
	for i, track := range tracks {
		row := make([]float64, len(frontiers))
		for j := range frontiers {
			row[j] = similarity(track, frontiers[j])
		}
		matrix[i] = row
	}
	return matrix
}

// performMatching returns pairs {trackIndex, frontierIndex} whose similarity is at least minSimilarity
func performMatching(matrix [][]float64, numTracks, numFrontiers int, minSimilarity float64, algorithm MatchingAlgorithm) [][2]int {
	if numTracks == 0 || numFrontiers == 0 {
		return [][2]int{}
	}
	switch algorithm {
	case MatchingAlgorithmHungarian:
		return performHungarianMatching(matrix, numTracks, numFrontiers, minSimilarity)
	default:
		return performGreedyMatching(matrix, numTracks, numFrontiers, minSimilarity)
	}
}

func performHungarianMatching(matrix [][]float64, numTracks, numFrontiers int, minSimilarity float64) [][2]int {
	paddedMatrix := matrix
	if numTracks != numFrontiers {
		// Rectangular matrix - pad with zero similarity to make it square
		paddedSize := maxInt(numTracks, numFrontiers)
		paddedMatrix = make([][]float64, paddedSize)
		for i := 0; i < paddedSize; i++ {
			paddedMatrix[i] = make([]float64, paddedSize)
			if i < numTracks {
				copy(paddedMatrix[i], matrix[i])
			}
		}
	}
	assignmentsMap := hungarian.SolveMax(paddedMatrix)
	matches := make([][2]int, 0, minInt(numTracks, numFrontiers))
	for trackIndex, rowMap := range assignmentsMap {
		for frontierIndex := range rowMap {
			if trackIndex >= numTracks || frontierIndex >= numFrontiers {
				// pairing with padding
				continue
			}
			if matrix[trackIndex][frontierIndex] >= minSimilarity {
				matches = append(matches, [2]int{trackIndex, frontierIndex})
			} else {
				klog.V(3).Infof("frontier: dropping weak assignment track=%d frontier=%d similarity=%.3f",
					trackIndex, frontierIndex, matrix[trackIndex][frontierIndex])
			}
		}
	}
	return matches
}

// performGreedyMatching takes candidate pairs in order of decreasing similarity
func performGreedyMatching(matrix [][]float64, numTracks, numFrontiers int, minSimilarity float64) [][2]int {
	candidates := make(distanceHeap, 0, numTracks*numFrontiers)
	for i := 0; i < numTracks; i++ {
		for j := 0; j < numFrontiers; j++ {
			if matrix[i][j] < minSimilarity {
				continue
			}
			candidates.Push(&matchCandidate{
				trackIdx:    i,
				frontierIdx: j,
				distance:    1.0 - matrix[i][j],
			})
		}
	}
	matches := make([][2]int, 0)
	// We need to prevent double assignment on both sides
	reservedTracks := make(map[int]struct{})
	reservedFrontiers := make(map[int]struct{})
	for candidates.Len() > 0 {
		candidate := candidates.Pop()
		if _, ok := reservedTracks[candidate.trackIdx]; ok {
			continue
		}
		if _, ok := reservedFrontiers[candidate.frontierIdx]; ok {
			continue
		}
		reservedTracks[candidate.trackIdx] = struct{}{}
		reservedFrontiers[candidate.frontierIdx] = struct{}{}
		matches = append(matches, [2]int{candidate.trackIdx, candidate.frontierIdx})
	}
	return matches
}
