package postprocess

import (
	"sort"

	"github.com/yolokit/go-annotate/result"
)

// Params are the post processing thresholds applied to extracted detections
type Params struct {
	// ConfThreshold is the minimum confidence a detection needs to be kept
	ConfThreshold float32
	// IoUThreshold is the maximum Intersection over Union allowed between two
	// detections of the same class before the lower scoring one is removed.
	// Zero disables non-maximum suppression
	IoUThreshold float32
}

// DefaultParams returns the thresholds used unless configured otherwise
// - Confidence Threshold: 0.25
// - IoU Threshold: 0.7
func DefaultParams() Params {
	return Params{
		ConfThreshold: 0.25,
		IoUThreshold:  0.7,
	}
}

// Filter removes detections under the confidence threshold then applies
// per class non-maximum suppression.  The kept detections retain their
// input order
func Filter(dets []result.Detection, p Params) []result.Detection {

	// order holds indexes of candidate detections, -1 marks a removed one
	order := make([]int, 0, len(dets))

	for i, det := range dets {
		if det.Confidence >= p.ConfThreshold {
			order = append(order, i)
		}
	}

	if p.IoUThreshold > 0 {
		sort.SliceStable(order, func(a, b int) bool {
			return dets[order[a]].Confidence > dets[order[b]].Confidence
		})

		nms(dets, order, p.IoUThreshold)
	}

	keep := make([]bool, len(dets))

	for _, n := range order {
		if n != -1 {
			keep[n] = true
		}
	}

	kept := make([]result.Detection, 0, len(order))

	for i, det := range dets {
		if keep[i] {
			kept = append(kept, det)
		}
	}

	return kept
}

// nms suppresses lower scoring detections of the same class overlapping a
// higher scoring one.  order must be sorted by descending confidence
func nms(dets []result.Detection, order []int, threshold float32) {

	for i := 0; i < len(order); i++ {

		if order[i] == -1 {
			continue
		}

		n := order[i]

		for j := i + 1; j < len(order); j++ {
			m := order[j]

			if m == -1 || dets[m].Class != dets[n].Class {
				continue
			}

			if calculateOverlap(dets[n], dets[m]) > threshold {
				order[j] = -1
			}
		}
	}
}

// calculateOverlap works out the Intersection over Union (IoU) of two
// detection boxes, counting pixels inclusively
func calculateOverlap(a, b result.Detection) float32 {

	ra := a.BoxRect().Canon()
	rb := b.BoxRect().Canon()

	w := max(0, min(ra.Max.X, rb.Max.X)-max(ra.Min.X, rb.Min.X)+1)
	h := max(0, min(ra.Max.Y, rb.Max.Y)-max(ra.Min.Y, rb.Min.Y)+1)
	intersection := float32(w * h)

	area0 := float32((ra.Dx() + 1) * (ra.Dy() + 1))
	area1 := float32((rb.Dx() + 1) * (rb.Dy() + 1))

	union := area0 + area1 - intersection

	if union <= 0 {
		return 0
	}

	return intersection / union
}
