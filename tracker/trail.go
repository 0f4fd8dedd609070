package tracker

import (
	"sync"

	"github.com/yolokit/go-annotate/result"
)

// Point represents the x,y coordinates of the center of a tracked box
type Point struct {
	X, Y int
}

// Trail keeps the recent box centers of each track for drawing a trail
type Trail struct {
	// size is the maximum number of most recent points to keep per track
	size    int
	history map[int][]Point
	mu      sync.Mutex
}

// NewTrail returns a new trail history.  Size is the maximum length of the
// trail kept for each track
func NewTrail(size int) *Trail {
	return &Trail{
		size:    size,
		history: make(map[int][]Point),
	}
}

// Reset clears all history
func (t *Trail) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.history = make(map[int][]Point)
}

// Add records the box center of each tracked detection, detections without
// a track id are ignored
func (t *Trail) Add(dets []result.Detection) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, det := range dets {
		if det.TrackID == nil {
			continue
		}

		x, y := RectOf(det).Center()
		points := append(t.history[*det.TrackID], Point{X: int(x), Y: int(y)})

		// drop the oldest points once the history is full
		if len(points) > t.size {
			points = points[len(points)-t.size:]
		}

		t.history[*det.TrackID] = points
	}
}

// Points returns a copy of the point history for a track id
func (t *Trail) Points(id int) []Point {
	t.mu.Lock()
	defer t.mu.Unlock()

	points, ok := t.history[id]

	if !ok {
		return nil
	}

	return append([]Point(nil), points...)
}

// Forget drops the history of tracks not in the given set of ids
func (t *Trail) Forget(active map[int]bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id := range t.history {
		if !active[id] {
			delete(t.history, id)
		}
	}
}
