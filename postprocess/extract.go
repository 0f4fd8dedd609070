package postprocess

import (
	"fmt"

	"github.com/yolokit/go-annotate/classes"
	"github.com/yolokit/go-annotate/result"
)

// Extractor converts raw model output for a single frame into Detections.
// Skeleton connections are not attached here, see render
type Extractor struct {
	registry *classes.Registry
	schema   Schema
}

// NewExtractor returns an Extractor resolving classes through the given
// Registry and decoding positional rows with the given schema
func NewExtractor(registry *classes.Registry, schema Schema) *Extractor {
	return &Extractor{
		registry: registry,
		schema:   schema,
	}
}

// Schema returns the positional row schema in use
func (e *Extractor) Schema() Schema {
	return e.schema
}

// FromRows converts positional output rows into Detections.  The class id of
// each row is resolved by position in the Registry, an unknown id fails the
// whole frame
func (e *Extractor) FromRows(rows [][]float32) ([]result.Detection, error) {

	if e.schema != SchemaPlain && e.schema != SchemaTracked {
		return nil, fmt.Errorf("unknown row schema %v", e.schema)
	}

	dets := make([]result.Detection, 0, len(rows))

	for i, row := range rows {

		if len(row) < e.schema.Width() {
			return nil, &RowError{
				Row: i,
				Err: fmt.Errorf("%w: %s schema needs %d values, got %d",
					ErrRowLength, e.schema, e.schema.Width(), len(row)),
			}
		}

		var (
			det result.Detection
			err error
		)

		switch e.schema {
		case SchemaPlain:
			r := parsePlainRow(row)
			det, err = e.fromClassID(r.Corners, r.Confidence, r.ClassID)

		case SchemaTracked:
			r := parseTrackedRow(row)
			det, err = e.fromClassID(r.Corners, r.Confidence, r.ClassID)
			det = det.WithTrackID(r.TrackID)
		}

		if err != nil {
			return nil, &RowError{Row: i, Err: err}
		}

		dets = append(dets, det)
	}

	return dets, nil
}

func (e *Extractor) fromClassID(c Corners, confidence float32,
	classID int) (result.Detection, error) {

	class, err := e.registry.ByIndex(classID)

	if err != nil {
		return result.Detection{}, err
	}

	return newDetection(class, c, confidence), nil
}

// FromRecords converts structured per box records into Detections.  Classes
// are matched by name, a name missing from the Registry fails the whole frame
// with a *ClassLookupError
func (e *Extractor) FromRecords(records []Record) ([]result.Detection, error) {

	dets := make([]result.Detection, 0, len(records))

	for i, rec := range records {

		class, ok := e.registry.FindByName(rec.Name)

		if !ok {
			return nil, &RowError{Row: i, Err: &ClassLookupError{Name: rec.Name}}
		}

		det := newDetection(class, rec.Box.corners(), rec.Confidence)

		if rec.Keypoints != nil {
			kps, err := rec.Keypoints.keypoints()

			if err != nil {
				return nil, &RowError{Row: i, Err: err}
			}

			det.Keypoints = kps
		}

		if rec.TrackID != nil {
			det = det.WithTrackID(*rec.TrackID)
		}

		dets = append(dets, det)
	}

	return dets, nil
}

func newDetection(class classes.ClassDefinition, c Corners,
	confidence float32) result.Detection {

	x, y, width, height := c.box()

	return result.Detection{
		Class:      class.Name,
		Confidence: result.Round2(confidence),
		X:          x,
		Y:          y,
		Width:      width,
		Height:     height,
		Color:      class.Color,
		Keypoints:  []result.Keypoint{},
	}
}
