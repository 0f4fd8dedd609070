package result

import (
	"errors"
	"io"
	"math"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var compact = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNonFinite is returned when a NaN or infinite value would be written,
// neither has a JSON representation
var ErrNonFinite = errors.New("json: unsupported non-finite float value")

// Encode writes the detections to w as a JSON array.  Fields of each detection
// are written in the fixed order class, confidence, x, y, width, height,
// keypoints, color, id.  An indent greater than zero pretty prints the output
// with that many spaces per level
func Encode(w io.Writer, dets []Detection, indent int) error {

	cfg := compact

	if indent > 0 {
		cfg = jsoniter.Config{
			EscapeHTML:    true,
			IndentionStep: indent,
		}.Froze()
	}

	stream := jsoniter.NewStream(cfg, w, 4096)

	if len(dets) == 0 {
		stream.WriteEmptyArray()
	} else {
		stream.WriteArrayStart()

		for i, det := range dets {
			if i > 0 {
				stream.WriteMore()
			}
			det.writeJSON(stream)
		}

		stream.WriteArrayEnd()
	}

	if stream.Error != nil {
		return stream.Error
	}

	return stream.Flush()
}

// MarshalJSON writes the detection with its fields in the fixed output order
func (d Detection) MarshalJSON() ([]byte, error) {

	stream := compact.BorrowStream(nil)
	defer compact.ReturnStream(stream)

	d.writeJSON(stream)

	if stream.Error != nil {
		return nil, stream.Error
	}

	return append([]byte(nil), stream.Buffer()...), nil
}

// MarshalJSON writes the keypoint as {x, y, visible}
func (k Keypoint) MarshalJSON() ([]byte, error) {

	stream := compact.BorrowStream(nil)
	defer compact.ReturnStream(stream)

	k.writeJSON(stream)

	return append([]byte(nil), stream.Buffer()...), stream.Error
}

// MarshalJSON writes the color as a string, or as an [r, g, b] array when it
// was given as a triple
func (c Color) MarshalJSON() ([]byte, error) {

	stream := compact.BorrowStream(nil)
	defer compact.ReturnStream(stream)

	c.writeJSON(stream)

	return append([]byte(nil), stream.Buffer()...), stream.Error
}

func (d Detection) writeJSON(stream *jsoniter.Stream) {
	stream.WriteObjectStart()

	stream.WriteObjectField("class")
	stream.WriteString(d.Class)
	stream.WriteMore()

	stream.WriteObjectField("confidence")
	writeFloat(stream, d.Confidence, 2)
	stream.WriteMore()

	stream.WriteObjectField("x")
	stream.WriteInt(d.X)
	stream.WriteMore()

	stream.WriteObjectField("y")
	stream.WriteInt(d.Y)
	stream.WriteMore()

	stream.WriteObjectField("width")
	stream.WriteInt(d.Width)
	stream.WriteMore()

	stream.WriteObjectField("height")
	stream.WriteInt(d.Height)
	stream.WriteMore()

	stream.WriteObjectField("keypoints")

	if len(d.Keypoints) == 0 {
		stream.WriteEmptyArray()
	} else {
		stream.WriteArrayStart()

		for i, kp := range d.Keypoints {
			if i > 0 {
				stream.WriteMore()
			}
			kp.writeJSON(stream)
		}

		stream.WriteArrayEnd()
	}

	stream.WriteMore()

	stream.WriteObjectField("color")
	d.Color.writeJSON(stream)

	if d.TrackID != nil {
		stream.WriteMore()
		stream.WriteObjectField("id")
		stream.WriteInt(*d.TrackID)
	}

	stream.WriteObjectEnd()
}

func (k Keypoint) writeJSON(stream *jsoniter.Stream) {
	stream.WriteObjectStart()

	stream.WriteObjectField("x")
	writeFloat(stream, k.X, -1)
	stream.WriteMore()

	stream.WriteObjectField("y")
	writeFloat(stream, k.Y, -1)
	stream.WriteMore()

	stream.WriteObjectField("visible")
	writeFloat(stream, k.Visible, 2)

	stream.WriteObjectEnd()
}

func (c Color) writeJSON(stream *jsoniter.Stream) {
	if !c.isRGB {
		stream.WriteString(c.text)
		return
	}

	stream.WriteArrayStart()
	stream.WriteUint8(c.rgb[0])
	stream.WriteMore()
	stream.WriteUint8(c.rgb[1])
	stream.WriteMore()
	stream.WriteUint8(c.rgb[2])
	stream.WriteArrayEnd()
}

// writeFloat writes v with prec decimal places, -1 for the shortest exact
// form.  Non-finite values set the stream error instead
func writeFloat(stream *jsoniter.Stream, v float32, prec int) {
	f := float64(v)

	if math.IsNaN(f) || math.IsInf(f, 0) {
		if stream.Error == nil {
			stream.Error = ErrNonFinite
		}

		stream.WriteRaw("null")
		return
	}

	stream.WriteRaw(formatFloat(v, prec))
}

// formatFloat formats v with prec decimal places
func formatFloat(v float32, prec int) string {
	return strconv.FormatFloat(float64(v), 'f', prec, 32)
}
