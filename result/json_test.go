package result

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectionFieldOrder(t *testing.T) {

	det := Detection{
		Class:      "person",
		Confidence: 0.87,
		X:          10,
		Y:          20,
		Width:      100,
		Height:     200,
		Color:      NewColor("#00ffcc"),
	}

	b, err := json.Marshal(det)
	require.NoError(t, err)

	assert.Equal(t,
		`{"class":"person","confidence":0.87,"x":10,"y":20,"width":100,"height":200,"keypoints":[],"color":"#00ffcc"}`,
		string(b))
}

func TestDetectionTrackIDLast(t *testing.T) {

	det := Detection{
		Class:      "car",
		Confidence: 1,
		Width:      5,
		Height:     5,
		Color:      RGB(255, 0, 10),
		Keypoints: []Keypoint{
			{X: 12, Y: 30, Visible: 0.5},
			{X: 0.25, Y: 0.75, Visible: 0.123},
		},
		Connections: []Connection{{From: 0, To: 1}},
		Text:        "not serialized",
	}.WithTrackID(7)

	b, err := json.Marshal(det)
	require.NoError(t, err)

	assert.Equal(t,
		`{"class":"car","confidence":1.00,"x":0,"y":0,"width":5,"height":5,`+
			`"keypoints":[{"x":12,"y":30,"visible":0.50},{"x":0.25,"y":0.75,"visible":0.12}],`+
			`"color":[255,0,10],"id":7}`,
		string(b))
}

func TestFixedTwoDecimals(t *testing.T) {

	tests := []struct {
		in   float32
		want string
	}{
		{0, "0.00"},
		{1, "1.00"},
		{0.5, "0.50"},
		{0.87, "0.87"},
		{0.999, "1.00"},
		{0.123456, "0.12"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, formatFloat(tc.in, 2), "input %v", tc.in)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, float32(0.87), Round2(0.873))
	assert.Equal(t, float32(0.88), Round2(0.875))
	assert.Equal(t, float32(0.1), Round2(0.1))
	assert.Equal(t, float32(0), Round2(0.004))
}

func TestEncode(t *testing.T) {

	dets := []Detection{
		{Class: "a", Confidence: 0.5, Color: NewColor("red")},
		{Class: "b", Confidence: 0.25, Color: NewColor("blue")},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, dets, 0))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "b", decoded[1]["class"])

	buf.Reset()
	require.NoError(t, Encode(&buf, dets, 4))
	assert.Contains(t, buf.String(), "\n    {")
	assert.Contains(t, buf.String(), `"confidence": 0.50`)

	buf.Reset()
	require.NoError(t, Encode(&buf, nil, 4))
	assert.Equal(t, "[]", buf.String())
}

func TestEncodeRejectsNonFinite(t *testing.T) {

	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name string
		det  Detection
	}{
		{"nan confidence", Detection{Class: "a", Confidence: nan}},
		{"inf keypoint x", Detection{Class: "a", Keypoints: []Keypoint{{X: inf, Y: 1, Visible: 1}}}},
		{"nan keypoint y", Detection{Class: "a", Keypoints: []Keypoint{{X: 1, Y: nan, Visible: 1}}}},
		{"nan visibility", Detection{Class: "a", Keypoints: []Keypoint{{X: 1, Y: 1, Visible: nan}}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.ErrorIs(t, Encode(&buf, []Detection{tc.det}, 0), ErrNonFinite)

			_, err := tc.det.MarshalJSON()
			assert.ErrorIs(t, err, ErrNonFinite)
		})
	}
}

func TestBoxRect(t *testing.T) {

	det := Detection{X: 10, Y: 20, Width: 100, Height: 200}
	r := det.BoxRect()

	assert.Equal(t, 10, r.Min.X)
	assert.Equal(t, 220, r.Max.Y)
	assert.False(t, det.HasTrackID())
	assert.True(t, det.WithTrackID(3).HasTrackID())
}
