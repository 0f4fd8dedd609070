package tracker

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yolokit/go-annotate/logging"
	"github.com/yolokit/go-annotate/result"
)

// Config holds the tracker tuning parameters
type Config struct {
	// IoUThreshold is the minimum overlap between a predicted track box and a
	// detection for them to be associated
	IoUThreshold float32
	// MaxAge is the number of consecutive frames a track may go unmatched
	// before it is dropped
	MaxAge int
}

// DefaultConfig returns default tracker settings
func DefaultConfig() Config {
	return Config{
		IoUThreshold: 0.3,
		MaxAge:       30,
	}
}

// track is a single tracked object
type track struct {
	id    int
	class string
	state State
	// missed is the number of frames since the track was last matched
	missed int
}

// Tracker assigns stable track ids to detections across frames
type Tracker struct {
	cfg    Config
	kf     *KalmanFilter
	tracks []*track
	nextID int
	log    logrus.FieldLogger
	mu     sync.Mutex
}

// New returns a Tracker.  A nil logger disables logging
func New(cfg Config, log logrus.FieldLogger) *Tracker {

	if log == nil {
		log = logging.Discard()
	}

	return &Tracker{
		cfg:    cfg,
		kf:     NewKalmanFilter(1.0/20, 1.0/160),
		nextID: 1,
		log:    log,
	}
}

// Reset forgets all tracks, new ids restart from 1
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.tracks = nil
	t.nextID = 1
}

// candidate is a possible track to detection association
type candidate struct {
	track, det int
	iou        float32
}

// Update advances all tracks one frame and associates them with the given
// detections.  It returns copies of the detections in the same order with
// TrackID set, the inputs are not modified
func (t *Tracker) Update(dets []result.Detection) []result.Detection {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, trk := range t.tracks {
		t.kf.Predict(&trk.state)
	}

	rects := make([]Rect, len(dets))

	for i, det := range dets {
		rects[i] = RectOf(det)
	}

	// greedy association on highest overlap, only within the same class
	var cands []candidate

	for ti, trk := range t.tracks {
		predicted := trk.state.rect()

		for di, det := range dets {
			if det.Class != trk.class {
				continue
			}

			if iou := predicted.IoU(rects[di]); iou >= t.cfg.IoUThreshold && iou > 0 {
				cands = append(cands, candidate{track: ti, det: di, iou: iou})
			}
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].iou > cands[j].iou
	})

	trackUsed := make([]bool, len(t.tracks))
	detTrack := make([]int, len(dets))

	for i := range detTrack {
		detTrack[i] = -1
	}

	for _, c := range cands {
		if trackUsed[c.track] || detTrack[c.det] >= 0 {
			continue
		}

		trackUsed[c.track] = true
		detTrack[c.det] = c.track
	}

	out := make([]result.Detection, len(dets))

	for di, det := range dets {

		if ti := detTrack[di]; ti >= 0 {
			trk := t.tracks[ti]
			trk.missed = 0

			if err := t.kf.Update(&trk.state, rects[di].Xyah()); err != nil {
				t.log.WithError(err).WithField("track", trk.id).Debug("Restarting track filter")
				trk.state = t.kf.Initiate(rects[di].Xyah())
			}

			out[di] = det.WithTrackID(trk.id)
			continue
		}

		trk := &track{
			id:    t.nextID,
			class: det.Class,
			state: t.kf.Initiate(rects[di].Xyah()),
		}

		t.nextID++
		t.tracks = append(t.tracks, trk)
		trackUsed = append(trackUsed, true)

		out[di] = det.WithTrackID(trk.id)
	}

	// age out tracks that were not seen this frame
	kept := t.tracks[:0]

	for ti, trk := range t.tracks {
		if !trackUsed[ti] {
			trk.missed++
		}

		if trk.missed > t.cfg.MaxAge {
			t.log.WithField("track", trk.id).Debug("Dropping lost track")
			continue
		}

		kept = append(kept, trk)
	}

	t.tracks = kept

	return out
}

// Active returns the number of tracks currently held
func (t *Tracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.tracks)
}

// ActiveIDs returns the ids of the tracks currently held
func (t *Tracker) ActiveIDs() map[int]bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make(map[int]bool, len(t.tracks))

	for _, trk := range t.tracks {
		ids[trk.id] = true
	}

	return ids
}
