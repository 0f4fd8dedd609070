package render

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/yolokit/go-annotate/result"
)

// ellipsis is appended to supplementary text cut at the text limit
const ellipsis = " ..."

// LabelText builds the label drawn above a detection's box, eg:
// "3. PERSON 87% | waving".  The track id prefix is only added for tracked
// detections and the supplementary text is omitted when blank
func LabelText(det result.Detection, limit int) string {

	var b strings.Builder

	if det.TrackID != nil {
		fmt.Fprintf(&b, "%d. ", *det.TrackID)
	}

	b.WriteString(strings.ToUpper(det.Class))
	fmt.Fprintf(&b, " %d%%", int(math.Round(float64(det.Confidence)*100)))

	if strings.TrimSpace(det.Text) != "" {
		b.WriteString(" | ")
		b.WriteString(truncate(det.Text, limit))
	}

	return b.String()
}

// truncate cuts s to limit characters and marks the cut
func truncate(s string, limit int) string {

	runes := []rune(s)

	if limit <= 0 || len(runes) <= limit {
		return s
	}

	return string(runes[:limit]) + ellipsis
}

// labelLayout is where a label background and its text are drawn
type labelLayout struct {
	background image.Rectangle
	// origin is the bottom left corner of the text
	origin image.Point
}

// placeLabel positions a label of the given text size above the top left
// corner of a box, shifted so it stays inside a frame of the given size
func placeLabel(frame, corner, text image.Point, pad int) labelLayout {

	w := text.X + 2*pad
	h := text.Y + 2*pad
	x, y := corner.X, corner.Y

	if x-1 < 0 {
		x = 1
	}

	if x+w > frame.X {
		x = frame.X - w
	}

	if y-h < 0 {
		y = h
	}

	return labelLayout{
		background: image.Rect(x, y-h, x+w, y),
		origin:     image.Pt(x+pad, y-pad),
	}
}
