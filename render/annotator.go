package render

import (
	"errors"
	"image/color"

	"github.com/sirupsen/logrus"
	"github.com/yolokit/go-annotate/logging"
	"github.com/yolokit/go-annotate/result"
	"gocv.io/x/gocv"
)

// ErrEmptyFrame is returned when asked to annotate a frame with no pixels
var ErrEmptyFrame = errors.New("frame is empty")

// Skipped records a detection that was not drawn
type Skipped struct {
	Index int
	Err   error
}

// Annotator draws detections onto video frames.  It holds no per frame
// state so a single Annotator may be shared between goroutines
type Annotator struct {
	Style Style
	Log   logrus.FieldLogger
}

// NewAnnotator returns an Annotator drawing with the given style.  A nil
// logger discards log output
func NewAnnotator(style Style, log logrus.FieldLogger) *Annotator {

	if log == nil {
		log = logging.Discard()
	}

	return &Annotator{
		Style: style,
		Log:   log,
	}
}

// Render draws the detections onto a copy of frame and returns it, the
// caller owns the returned Mat and must Close it.  Each detection is drawn
// in turn as its box, label, keypoints and then connections.  A detection
// whose colors can not be parsed is left out and reported in the Skipped
// list while the remaining detections are still drawn
func (a *Annotator) Render(frame gocv.Mat, dets []result.Detection) (gocv.Mat, []Skipped, error) {

	if frame.Empty() {
		return gocv.NewMat(), nil, ErrEmptyFrame
	}

	out := frame.Clone()
	var skipped []Skipped

	for i, det := range dets {

		clr, connClrs, err := resolveColors(det)

		if err != nil {
			var cerr *ColorParseError
			value := det.Color.String()

			if errors.As(err, &cerr) {
				value = cerr.Value
			}

			a.Log.WithFields(logrus.Fields{
				"index": i,
				"class": det.Class,
				"color": value,
			}).WithError(err).Warn("Skipping detection with unparseable color")

			skipped = append(skipped, Skipped{Index: i, Err: err})
			continue
		}

		drawBox(&out, det, clr, a.Style)
		drawLabel(&out, det, clr, a.Style)
		drawKeypoints(&out, det.Keypoints, clr, a.Style)

		if len(det.Connections) > 0 {
			drawConnections(&out, det.Keypoints, det.Connections, connClrs, a.Style)
		}
	}

	return out, skipped, nil
}

// resolveColors parses the detection color and each connection color up
// front so a bad color leaves nothing half drawn
func resolveColors(det result.Detection) (color.RGBA, []color.RGBA, error) {

	clr, err := ParseColor(det.Color)

	if err != nil {
		return color.RGBA{}, nil, err
	}

	connClrs := make([]color.RGBA, len(det.Connections))

	for i, conn := range det.Connections {
		if conn.Color.IsZero() {
			connClrs[i] = clr
			continue
		}

		connClrs[i], err = ParseColor(conn.Color)

		if err != nil {
			return color.RGBA{}, nil, err
		}
	}

	return clr, connClrs, nil
}
