package tracker

import (
	"github.com/chewxy/math32"
	"github.com/yolokit/go-annotate/result"
)

// Xyah (center x, center y, aspect ratio, height) is the measurement space
// of the Kalman filter
type Xyah [4]float64

// Rect represents a rectangle in top left, width, height form
type Rect struct {
	X, Y, Width, Height float32
}

// RectOf returns the detection's box with corners ordered so width and
// height are never negative
func RectOf(det result.Detection) Rect {

	r := Rect{
		X:      float32(det.X),
		Y:      float32(det.Y),
		Width:  float32(det.Width),
		Height: float32(det.Height),
	}

	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}

	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}

	return r
}

// Center returns the center point of the rectangle
func (r Rect) Center() (float32, float32) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Xyah converts the rectangle to Xyah format.  Degenerate boxes are given a
// height of one so the aspect ratio stays finite
func (r Rect) Xyah() Xyah {

	h := math32.Max(r.Height, 1)
	cx, cy := r.Center()

	return Xyah{float64(cx), float64(cy), float64(r.Width / h), float64(h)}
}

// RectFromXyah creates a Rect from Xyah format
func RectFromXyah(m Xyah) Rect {

	w := float32(m[2] * m[3])
	h := float32(m[3])

	return Rect{
		X:      float32(m[0]) - w/2,
		Y:      float32(m[1]) - h/2,
		Width:  w,
		Height: h,
	}
}

// IoU calculates the Intersection over Union with another rectangle
func (r Rect) IoU(other Rect) float32 {

	iw := math32.Min(r.X+r.Width, other.X+other.Width) - math32.Max(r.X, other.X)
	ih := math32.Min(r.Y+r.Height, other.Y+other.Height) - math32.Max(r.Y, other.Y)

	if iw <= 0 || ih <= 0 {
		return 0
	}

	inter := iw * ih
	union := r.Width*r.Height + other.Width*other.Height - inter

	if union <= 0 {
		return 0
	}

	return inter / union
}
