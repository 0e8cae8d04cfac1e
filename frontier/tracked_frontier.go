package frontier

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// TrackedFrontier is a frontier followed across successive searches.
// Its centroid is smoothed with 2D Kalman filter.
type TrackedFrontier struct {
	id                    uuid.UUID
	current               Frontier
	currentCenter         Point
	predictedNextPosition Point
	track                 []Point
	maxTrackLen           int
	active                bool
	noMatchTimes          int
	tracker               *kalman_filter.Kalman2D
}

// NewTrackedFrontierWithTime starts a track from frontier; dt is the time between searches.
// Track reuses frontier's ID when it has one.
func NewTrackedFrontierWithTime(frontier Frontier, dt float64) *TrackedFrontier {
	/* Kalman filter props: frontiers do not accelerate on their own */
	ux := 0.0
	uy := 0.0
	stdDevA := 0.5
	stdDevMx := 0.1
	stdDevMy := 0.1
	kf := kalman_filter.NewKalman2D(dt, ux, uy, stdDevA, stdDevMx, stdDevMy, kalman_filter.WithState2D(frontier.Centroid.X, frontier.Centroid.Y))
	id := frontier.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	tf := TrackedFrontier{
		id:                    id,
		current:               frontier,
		currentCenter:         frontier.Centroid,
		predictedNextPosition: frontier.Centroid,
		track:                 make([]Point, 0, 32),
		maxTrackLen:           32,
		active:                false,
		noMatchTimes:          0,
		tracker:               kf,
	}
	tf.current.ID = id
	tf.track = append(tf.track, tf.currentCenter)
	return &tf
}

func NewTrackedFrontier(frontier Frontier) *TrackedFrontier {
	return NewTrackedFrontierWithTime(frontier, 1.0)
}

// Activate activates track
func (tf *TrackedFrontier) Activate() {
	tf.active = true
}

// Deactivate deactivates track
func (tf *TrackedFrontier) Deactivate() {
	tf.active = false
}

// IsActive reports whether track was matched by the latest search
func (tf *TrackedFrontier) IsActive() bool {
	return tf.active
}

// GetID returns track's identifier
func (tf *TrackedFrontier) GetID() uuid.UUID {
	return tf.id
}

// GetFrontier returns the latest frontier matched to the track
func (tf *TrackedFrontier) GetFrontier() Frontier {
	return tf.current
}

// GetCenter returns smoothed centroid
func (tf *TrackedFrontier) GetCenter() Point {
	return tf.currentCenter
}

// GetPredictedCenter returns centroid predicted for the next search
func (tf *TrackedFrontier) GetPredictedCenter() Point {
	return tf.predictedNextPosition
}

// GetBBox returns extent of the latest matched frontier
func (tf *TrackedFrontier) GetBBox() Rectangle {
	return tf.current.BBox
}

// GetTrack returns history of smoothed centroids. Be careful: this is not copy of track, but reference to it
func (tf *TrackedFrontier) GetTrack() []Point {
	return tf.track
}

// GetMaxTrackLen returns max history length
func (tf *TrackedFrontier) GetMaxTrackLen() int {
	return tf.maxTrackLen
}

// SetMaxTrackLen sets max history length
func (tf *TrackedFrontier) SetMaxTrackLen(newMaxTrackLen int) {
	tf.maxTrackLen = newMaxTrackLen
}

// GetNoMatchTimes returns number of consecutive searches without a match
func (tf *TrackedFrontier) GetNoMatchTimes() int {
	return tf.noMatchTimes
}

// IncNoMatch increases no match times
func (tf *TrackedFrontier) IncNoMatch() {
	tf.noMatchTimes++
}

// ResetNoMatch resets no match times
func (tf *TrackedFrontier) ResetNoMatch() {
	tf.noMatchTimes = 0
}

// DistanceTo returns distance from predicted centroid to frontier's centroid
func (tf *TrackedFrontier) DistanceTo(frontier Frontier) float64 {
	return euclideanDistance(tf.predictedNextPosition, frontier.Centroid)
}

// PredictNextPosition executes Kalman filter's first step but without re-evaluating state vector based on Kalman gain
func (tf *TrackedFrontier) PredictNextPosition() {
	tf.tracker.Predict()
	stateX, stateY := tf.tracker.GetState()
	tf.predictedNextPosition.X = stateX
	tf.predictedNextPosition.Y = stateY
}

// Update takes frontier as new measurement and executes Kalman filter's second step
func (tf *TrackedFrontier) Update(frontier Frontier) error {
	err := tf.tracker.Update(frontier.Centroid.X, frontier.Centroid.Y)
	if err != nil {
		return errors.Wrap(err, "Can't update frontier tracker")
	}
	stateX, stateY := tf.tracker.GetState()
	tf.currentCenter = Point{X: stateX, Y: stateY}
	tf.current = frontier
	tf.current.ID = tf.id
	tf.active = true
	tf.noMatchTimes = 0
	tf.track = append(tf.track, tf.currentCenter)
	if len(tf.track) > tf.maxTrackLen {
		tf.track = tf.track[1:]
	}
	return nil
}
