package postprocess

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/yolokit/go-annotate/result"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is a single detected box in the detector's native structured result
// format.  The numeric class index the detector also writes is not decoded,
// records are matched to classes by name
type Record struct {
	Name       string           `json:"name"`
	Confidence float32          `json:"confidence"`
	Box        RecordBox        `json:"box"`
	Keypoints  *RecordKeypoints `json:"keypoints,omitempty"`
	TrackID    *int             `json:"track_id,omitempty"`
}

// RecordBox holds the two corner points of a record's bounding box
type RecordBox struct {
	X1 float32 `json:"x1"`
	Y1 float32 `json:"y1"`
	X2 float32 `json:"x2"`
	Y2 float32 `json:"y2"`
}

func (b RecordBox) corners() Corners {
	return Corners{X1: b.X1, Y1: b.Y1, X2: b.X2, Y2: b.Y2}
}

// RecordKeypoints holds the parallel keypoint arrays of a pose record.  When
// Visible is empty every keypoint is treated as fully visible
type RecordKeypoints struct {
	X       []float32 `json:"x"`
	Y       []float32 `json:"y"`
	Visible []float32 `json:"visible,omitempty"`
}

// keypoints truncates the coordinates to whole pixels and rounds the
// visibility to 2 decimals
func (k RecordKeypoints) keypoints() ([]result.Keypoint, error) {

	if len(k.X) != len(k.Y) || (len(k.Visible) > 0 && len(k.Visible) != len(k.X)) {
		return nil, fmt.Errorf("%w: x=%d y=%d visible=%d",
			ErrKeypointLength, len(k.X), len(k.Y), len(k.Visible))
	}

	kps := make([]result.Keypoint, len(k.X))

	for i := range k.X {

		vis := float32(1)

		if len(k.Visible) > 0 {
			vis = k.Visible[i]
		}

		kps[i] = result.Keypoint{
			X:       float32(int(k.X[i])),
			Y:       float32(int(k.Y[i])),
			Visible: result.Round2(vis),
		}
	}

	return kps, nil
}

// DecodeRecords parses a JSON array of detector records
func DecodeRecords(data []byte) ([]Record, error) {

	var records []Record

	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("error decoding records: %w", err)
	}

	return records, nil
}
