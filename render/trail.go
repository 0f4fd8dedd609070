package render

import (
	"image"
	"image/color"

	"github.com/yolokit/go-annotate/result"
	"github.com/yolokit/go-annotate/tracker"
	"gocv.io/x/gocv"
)

// TrailStyle defines the parameters used for rendering the trail style
type TrailStyle struct {
	// LineSame defines if the color of the trail line should be the
	// same color as that of the bounding box.  If set to false then use
	// the color specified at LineColor
	LineSame      bool
	LineColor     color.RGBA
	LineThickness int
	// CircleSame defines if the color of the midpoint circle should be the
	// same color as that of the bounding box.  If set to false then use
	// the color specified at CircleColor
	CircleSame   bool
	CircleColor  color.RGBA
	CircleRadius int
}

// DefaultTrailStyle returns default trail style settings
func DefaultTrailStyle() TrailStyle {
	return TrailStyle{
		LineSame:      false,
		LineColor:     Yellow,
		LineThickness: 1,
		CircleSame:    true,
		CircleColor:   Pink,
		CircleRadius:  3,
	}
}

// Trail draws the trail of recent box centers behind each tracked detection
// onto img.  Detections without a track id are ignored
func Trail(img *gocv.Mat, dets []result.Detection, trail *tracker.Trail,
	style TrailStyle) {

	for _, det := range dets {
		if det.TrackID == nil {
			continue
		}

		points := trail.Points(*det.TrackID)

		if len(points) < 2 {
			continue
		}

		lineClr := style.LineColor
		circleClr := style.CircleColor

		if objClr, err := ParseColor(det.Color); err == nil {
			if style.LineSame {
				lineClr = objClr
			}

			if style.CircleSame {
				circleClr = objClr
			}
		}

		for i := 1; i < len(points); i++ {
			gocv.Line(img,
				image.Pt(points[i-1].X, points[i-1].Y),
				image.Pt(points[i].X, points[i].Y),
				lineClr, style.LineThickness,
			)
		}

		// mark the current center
		last := points[len(points)-1]
		gocv.Circle(img, image.Pt(last.X, last.Y), style.CircleRadius, circleClr, -1)
	}
}
