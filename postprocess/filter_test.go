package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yolokit/go-annotate/result"
)

func box(class string, conf float32, x, y, w, h int) result.Detection {
	return result.Detection{Class: class, Confidence: conf, X: x, Y: y, Width: w, Height: h}
}

func TestFilterConfidence(t *testing.T) {

	dets := []result.Detection{
		box("person", 0.9, 0, 0, 10, 10),
		box("person", 0.25, 100, 100, 10, 10),
		box("person", 0.24, 200, 200, 10, 10),
	}

	kept := Filter(dets, DefaultParams())

	assert.Len(t, kept, 2)
	assert.Equal(t, float32(0.25), kept[1].Confidence)
}

func TestFilterNMS(t *testing.T) {

	dets := []result.Detection{
		box("person", 0.6, 2, 2, 100, 100),
		box("person", 0.9, 0, 0, 100, 100),
		// same place, other class
		box("car", 0.5, 0, 0, 100, 100),
		// separate box
		box("person", 0.4, 300, 300, 50, 50),
	}

	kept := Filter(dets, Params{ConfThreshold: 0.1, IoUThreshold: 0.5})

	assert.Len(t, kept, 3)
	assert.Equal(t, float32(0.9), kept[0].Confidence)
	assert.Equal(t, "car", kept[1].Class)
	assert.Equal(t, 300, kept[2].X)
}

func TestFilterZeroParamsKeepsAll(t *testing.T) {

	dets := []result.Detection{
		box("person", 0.0, 0, 0, 10, 10),
		box("person", 0.1, 0, 0, 10, 10),
	}

	assert.Len(t, Filter(dets, Params{}), 2)
	assert.Empty(t, Filter(nil, DefaultParams()))
}

func TestCalculateOverlap(t *testing.T) {

	a := box("x", 1, 0, 0, 9, 9)

	assert.InDelta(t, 1.0, calculateOverlap(a, a), 1e-6)
	assert.InDelta(t, 0.0, calculateOverlap(a, box("x", 1, 50, 50, 9, 9)), 1e-6)

	// disordered corners are compared as the same area
	flipped := box("x", 1, 9, 9, -9, -9)
	assert.InDelta(t, 1.0, calculateOverlap(a, flipped), 1e-6)
}
