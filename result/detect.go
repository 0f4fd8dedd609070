package result

import (
	"image"

	"github.com/chewxy/math32"
)

// Keypoint is a single labelled point of a skeleton.  X and Y are pixel
// coordinates when extracted from structured detector records and normalized
// [0,1] coordinates when supplied that way by the caller
type Keypoint struct {
	X float32
	Y float32
	// Visible is the visibility score of the keypoint, rounded to 2 decimals
	Visible float32
}

// Connection is an edge between two keypoint positions of a skeleton
type Connection struct {
	// From is the index into the keypoint sequence the line starts at
	From int
	// To is the index into the keypoint sequence the line ends at
	To    int
	Color Color
}

// Detection defines the attributes of a single object detected in a frame
type Detection struct {
	// Class is the name of the class the object was identified as
	Class string
	// Confidence is the score of the object detected, rounded to 2 decimals
	Confidence float32
	// X and Y are the top left corner of the bounding box
	X int
	Y int
	// Width and Height are the bottom right corner minus the top left corner.
	// They are negative when the source corners were given in reverse order
	Width  int
	Height int
	// Color is copied from the matching class definition
	Color Color
	// Keypoints of a pose model, empty for plain object detection
	Keypoints []Keypoint
	// Connections are the skeleton lines to draw between keypoints.  They are
	// attached just before rendering and never serialized
	Connections []Connection
	// TrackID is the external tracking id, nil when tracking is not active
	TrackID *int
	// Text is an optional free form annotation appended to the label
	Text string
}

// BoxRect returns the bounding box as an image rectangle spanning from the
// top left corner to the bottom right corner
func (d Detection) BoxRect() image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(d.X, d.Y),
		Max: image.Pt(d.X+d.Width, d.Y+d.Height),
	}
}

// HasTrackID reports if a tracking id has been assigned
func (d Detection) HasTrackID() bool {
	return d.TrackID != nil
}

// WithTrackID returns a copy of the detection with the tracking id set
func (d Detection) WithTrackID(id int) Detection {
	d.TrackID = &id
	return d
}

// Round2 rounds v to 2 decimal places
func Round2(v float32) float32 {
	return math32.Round(v*100) / 100
}
