package render

import (
	"image/color"

	"gocv.io/x/gocv"
)

// Font defines the parameters for rendering label text on an image using GoCV
type Font struct {
	Face gocv.HersheyFont
	// Scale is the font scale for a frame whose width plus height equals
	// Style.ResolutionBase, other frame sizes scale proportionally
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
	// Padding to place around text inside the label background
	Padding int
}

// DefaultFont returns default font settings
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheyDuplex,
		Scale:     0.35,
		Color:     Black,
		Thickness: 1,
		LineType:  gocv.LineAA,
		Padding:   6,
	}
}

// CoordinateSpace sets how connection keypoint coordinates are interpreted
type CoordinateSpace int

const (
	// NormalizedSpace multiplies connection endpoints by the frame width
	// and height
	NormalizedSpace CoordinateSpace = iota
	// PixelSpace uses connection endpoints as pixel coordinates
	PixelSpace
)

// Style groups the drawing parameters used by the Annotator
type Style struct {
	Font         Font
	BoxThickness int
	// KeypointRadius of the filled circle drawn at each visible keypoint
	KeypointRadius int
	// KeypointThreshold is the visibility a keypoint must exceed to be drawn
	KeypointThreshold float32
	LineThickness     int
	// TextLimit is the number of characters of supplementary text kept
	// before it is truncated
	TextLimit       int
	ResolutionBase  int
	ConnectionSpace CoordinateSpace
}

// DefaultStyle returns default style settings
func DefaultStyle() Style {
	return Style{
		Font:              DefaultFont(),
		BoxThickness:      2,
		KeypointRadius:    3,
		KeypointThreshold: 0.25,
		LineThickness:     2,
		TextLimit:         50,
		ResolutionBase:    1600,
		ConnectionSpace:   NormalizedSpace,
	}
}

// fontScale returns the font scale to use for a frame of the given size
func (s Style) fontScale(width, height int) float64 {
	base := s.ResolutionBase

	if base <= 0 {
		base = 1600
	}

	return s.Font.Scale * float64(width+height) / float64(base)
}
