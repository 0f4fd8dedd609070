package result

import (
	"fmt"
)

// Color is the display color of a class or connection.  It holds either the
// color string given in the class metadata (hex, named or rgb(r,g,b) form) or
// an explicit RGB triple
type Color struct {
	text  string
	rgb   [3]uint8
	isRGB bool
}

// NewColor returns a Color holding the given color string
func NewColor(s string) Color {
	return Color{text: s}
}

// RGB returns a Color holding an explicit RGB triple
func RGB(r, g, b uint8) Color {
	return Color{rgb: [3]uint8{r, g, b}, isRGB: true}
}

// Triple returns the RGB components when the color was given as a triple
func (c Color) Triple() ([3]uint8, bool) {
	return c.rgb, c.isRGB
}

// IsZero reports if no color has been set
func (c Color) IsZero() bool {
	return !c.isRGB && c.text == ""
}

// String returns the color string, or an rgb(r,g,b) rendition of a triple
func (c Color) String() string {
	if c.isRGB {
		return fmt.Sprintf("rgb(%d,%d,%d)", c.rgb[0], c.rgb[1], c.rgb[2])
	}

	return c.text
}
