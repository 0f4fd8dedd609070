package render

import (
	"image"
	"image/color"

	"github.com/yolokit/go-annotate/result"
	"gocv.io/x/gocv"
)

// drawBox outlines the detection's bounding box
func drawBox(img *gocv.Mat, det result.Detection, clr color.RGBA, style Style) {
	gocv.RectangleWithParams(img, det.BoxRect(), clr, style.BoxThickness,
		style.Font.LineType, 0)
}

// drawLabel draws the label background in the detection color above the box
// then writes the label text over it
func drawLabel(img *gocv.Mat, det result.Detection, clr color.RGBA, style Style) {

	frame := image.Pt(img.Cols(), img.Rows())
	scale := style.fontScale(frame.X, frame.Y)
	text := LabelText(det, style.TextLimit)

	size := gocv.GetTextSize(text, style.Font.Face, scale, style.Font.Thickness)
	layout := placeLabel(frame, image.Pt(det.X, det.Y), size, style.Font.Padding)

	gocv.Rectangle(img, layout.background, clr, -1)

	gocv.PutTextWithParams(img, text, layout.origin, style.Font.Face, scale,
		style.Font.Color, style.Font.Thickness, style.Font.LineType, false)
}
