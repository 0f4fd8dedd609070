package postprocess

import "fmt"

// Schema identifies the fixed layout of a positional output row
type Schema int

const (
	// SchemaPlain rows are [x1, y1, x2, y2, confidence, classID]
	SchemaPlain Schema = iota
	// SchemaTracked rows are [x1, y1, x2, y2, trackID, confidence, classID]
	SchemaTracked
)

// SchemaFor returns the row schema used when tracking is enabled or not
func SchemaFor(trackingEnabled bool) Schema {
	if trackingEnabled {
		return SchemaTracked
	}
	return SchemaPlain
}

// Width returns the number of values in a row of the schema
func (s Schema) Width() int {
	switch s {
	case SchemaTracked:
		return 7
	default:
		return 6
	}
}

func (s Schema) String() string {
	switch s {
	case SchemaPlain:
		return "plain"
	case SchemaTracked:
		return "tracked"
	default:
		return fmt.Sprintf("Schema(%d)", int(s))
	}
}

// Corners are the two corner points of a bounding box.  Point 1 is taken as
// the top left and point 2 as the bottom right without reordering
type Corners struct {
	X1, Y1, X2, Y2 float32
}

// box truncates the corners to pixels and returns the top left point and the
// width and height as bottom right minus top left
func (c Corners) box() (x, y, width, height int) {
	x, y = int(c.X1), int(c.Y1)
	return x, y, int(c.X2) - x, int(c.Y2) - y
}

// PlainRow is a decoded SchemaPlain row
type PlainRow struct {
	Corners
	Confidence float32
	ClassID    int
}

// TrackedRow is a decoded SchemaTracked row
type TrackedRow struct {
	Corners
	TrackID    int
	Confidence float32
	ClassID    int
}

func parsePlainRow(row []float32) PlainRow {
	return PlainRow{
		Corners:    Corners{X1: row[0], Y1: row[1], X2: row[2], Y2: row[3]},
		Confidence: row[4],
		ClassID:    int(row[5]),
	}
}

func parseTrackedRow(row []float32) TrackedRow {
	return TrackedRow{
		Corners:    Corners{X1: row[0], Y1: row[1], X2: row[2], Y2: row[3]},
		TrackID:    int(row[4]),
		Confidence: row[5],
		ClassID:    int(row[6]),
	}
}
