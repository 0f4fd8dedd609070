package render

import (
	"image"
	"image/color"

	"github.com/yolokit/go-annotate/result"
	"gocv.io/x/gocv"
)

// drawKeypoints draws a filled circle at every keypoint whose visibility
// exceeds the style threshold
func drawKeypoints(img *gocv.Mat, kps []result.Keypoint, clr color.RGBA, style Style) {

	for _, kp := range kps {
		if kp.Visible <= style.KeypointThreshold {
			continue
		}

		gocv.CircleWithParams(img, image.Pt(int(kp.X), int(kp.Y)),
			style.KeypointRadius, clr, -1, style.Font.LineType, 0)
	}
}

// drawConnections draws a line between each pair of connected keypoints.
// Connections referencing keypoints the detection does not carry are skipped
func drawConnections(img *gocv.Mat, kps []result.Keypoint,
	conns []result.Connection, colors []color.RGBA, style Style) {

	frame := image.Pt(img.Cols(), img.Rows())

	for i, conn := range conns {
		if conn.From < 0 || conn.To < 0 || conn.From >= len(kps) || conn.To >= len(kps) {
			continue
		}

		gocv.Line(img,
			endpoint(kps[conn.From], frame, style.ConnectionSpace),
			endpoint(kps[conn.To], frame, style.ConnectionSpace),
			colors[i], style.LineThickness,
		)
	}
}

// endpoint converts a keypoint into pixel coordinates
func endpoint(kp result.Keypoint, frame image.Point, space CoordinateSpace) image.Point {

	if space == PixelSpace {
		return image.Pt(int(kp.X), int(kp.Y))
	}

	return image.Pt(int(kp.X*float32(frame.X)), int(kp.Y*float32(frame.Y)))
}
