package frontier

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Tracker keeps frontier identities stable across successive searches and
// remembers goals the exploration loop gave up on.
type Tracker struct {
	// Main storage
	Objects map[uuid.UUID]*TrackedFrontier
	// Max number of searches a track survives without a match. Default is 5
	maxNoMatch int
	// Min similarity for a frontier to continue a track. Default 0.1
	minSimilarity float64
	// Algorithm to use for matching
	algorithm MatchingAlgorithm
	// Goals which should not be offered again
	blacklist []Point
	// Per-axis tolerance for blacklist lookups, world units. Default 0.25
	blacklistTolerance float64
}

// NewTrackerDefault creates default instance of Tracker
func NewTrackerDefault() *Tracker {
	return NewTracker(5, 0.1, MatchingAlgorithmHungarian)
}

// NewTracker creates new instance of Tracker
func NewTracker(maxNoMatch int, minSimilarity float64, algorithm MatchingAlgorithm) *Tracker {
	return &Tracker{
		Objects:            make(map[uuid.UUID]*TrackedFrontier),
		maxNoMatch:         maxNoMatch,
		minSimilarity:      minSimilarity,
		algorithm:          algorithm,
		blacklist:          make([]Point, 0),
		blacklistTolerance: 0.25,
	}
}

// MatchFrontiers matches ranked frontiers of the latest search to existing tracks.
// Matched frontiers get the ID of their track; the rest start new tracks.
// IDs are written into the given slice.
func (tracker *Tracker) MatchFrontiers(frontiers []Frontier) error {
	for _, object := range tracker.Objects {
		object.Deactivate()
		object.PredictNextPosition()
	}

	// Fixed track order keeps matching reproducible
	trackIDs := make([]uuid.UUID, 0, len(tracker.Objects))
	for objectID := range tracker.Objects {
		trackIDs = append(trackIDs, objectID)
	}
	sort.Slice(trackIDs, func(i, j int) bool {
		return trackIDs[i].String() < trackIDs[j].String()
	})
	tracks := make([]*TrackedFrontier, len(trackIDs))
	for i, objectID := range trackIDs {
		tracks[i] = tracker.Objects[objectID]
	}

	matrix := createSimilarityMatrix(tracks, frontiers)
	matches := performMatching(matrix, len(tracks), len(frontiers), tracker.minSimilarity, tracker.algorithm)

	matchedTracks := make(map[uuid.UUID]struct{}, len(matches))
	matchedFrontiers := make(map[int]struct{}, len(matches))
	for _, match := range matches {
		track := tracks[match[0]]
		err := track.Update(frontiers[match[1]])
		if err != nil {
			return errors.Wrapf(err, "Can't update frontier track with id %s", track.GetID().String())
		}
		frontiers[match[1]].ID = track.GetID()
		matchedTracks[track.GetID()] = struct{}{}
		matchedFrontiers[match[1]] = struct{}{}
	}

	// Clean up existing data
	for _, track := range tracks {
		if _, ok := matchedTracks[track.GetID()]; ok {
			continue
		}
		track.IncNoMatch()
		// Remove track if it was not found for a long time
		if track.GetNoMatchTimes() > tracker.maxNoMatch {
			delete(tracker.Objects, track.GetID())
		}
	}

	// Register unmatched frontiers as new tracks
	for i := range frontiers {
		if _, ok := matchedFrontiers[i]; ok {
			continue
		}
		newTrack := NewTrackedFrontier(frontiers[i])
		newTrack.Activate()
		frontiers[i].ID = newTrack.GetID()
		tracker.Objects[newTrack.GetID()] = newTrack
	}
	return nil
}

// GetActiveTracks returns tracks matched by the latest search
func (tracker *Tracker) GetActiveTracks() []*TrackedFrontier {
	activeTracks := make([]*TrackedFrontier, 0, len(tracker.Objects))
	for _, track := range tracker.Objects {
		if track.IsActive() {
			activeTracks = append(activeTracks, track)
		}
	}
	return activeTracks
}

// SetBlacklistTolerance sets per-axis tolerance used by blacklist lookups
func (tracker *Tracker) SetBlacklistTolerance(tolerance float64) {
	tracker.blacklistTolerance = tolerance
}

// Blacklist marks goal as one that should not be offered again
func (tracker *Tracker) Blacklist(goal Point) {
	tracker.blacklist = append(tracker.blacklist, goal)
}

// ClearBlacklist forgets all blacklisted goals
func (tracker *Tracker) ClearBlacklist() {
	tracker.blacklist = tracker.blacklist[:0]
}

// IsBlacklisted reports whether goal lies within tolerance of a blacklisted goal on both axes
func (tracker *Tracker) IsBlacklisted(goal Point) bool {
	for _, blocked := range tracker.blacklist {
		if math.Abs(goal.X-blocked.X) < tracker.blacklistTolerance && math.Abs(goal.Y-blocked.Y) < tracker.blacklistTolerance {
			return true
		}
	}
	return false
}

// FilterBlacklisted returns frontiers whose centroid is not blacklisted, order preserved
func (tracker *Tracker) FilterBlacklisted(frontiers []Frontier) []Frontier {
	kept := make([]Frontier, 0, len(frontiers))
	for _, frontier := range frontiers {
		if tracker.IsBlacklisted(frontier.Centroid) {
			continue
		}
		kept = append(kept, frontier)
	}
	return kept
}
