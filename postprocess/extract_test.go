package postprocess

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yolokit/go-annotate/classes"
	"github.com/yolokit/go-annotate/result"
)

func testRegistry(t *testing.T) *classes.Registry {
	t.Helper()

	reg, err := classes.New([]classes.ClassDefinition{
		{Name: "person", Color: result.NewColor("#00ffcc")},
		{Name: "car", Color: result.NewColor("rgb(10,20,30)")},
	})
	require.NoError(t, err)

	return reg
}

func TestFromRecordsExample(t *testing.T) {

	ex := NewExtractor(testRegistry(t), SchemaPlain)

	dets, err := ex.FromRecords([]Record{{
		Name:       "person",
		Confidence: 0.873,
		Box:        RecordBox{X1: 10, Y1: 20, X2: 110, Y2: 220},
	}})
	require.NoError(t, err)
	require.Len(t, dets, 1)

	assert.Equal(t, result.Detection{
		Class:      "person",
		Confidence: 0.87,
		X:          10,
		Y:          20,
		Width:      100,
		Height:     200,
		Color:      result.NewColor("#00ffcc"),
		Keypoints:  []result.Keypoint{},
	}, dets[0])
}

func TestFromRecordsKeypoints(t *testing.T) {

	ex := NewExtractor(testRegistry(t), SchemaPlain)

	dets, err := ex.FromRecords([]Record{{
		Name:       "person",
		Confidence: 0.5,
		Box:        RecordBox{X1: 0, Y1: 0, X2: 50, Y2: 50},
		Keypoints: &RecordKeypoints{
			X:       []float32{12.9, 30.2},
			Y:       []float32{5.5, 40.99},
			Visible: []float32{0.256, 0.1},
		},
	}})
	require.NoError(t, err)

	assert.Equal(t, []result.Keypoint{
		{X: 12, Y: 5, Visible: 0.26},
		{X: 30, Y: 40, Visible: 0.1},
	}, dets[0].Keypoints)
	assert.Nil(t, dets[0].Connections)
	assert.False(t, dets[0].HasTrackID())
}

func TestFromRecordsDefaultVisibility(t *testing.T) {

	ex := NewExtractor(testRegistry(t), SchemaPlain)

	dets, err := ex.FromRecords([]Record{{
		Name:      "person",
		Keypoints: &RecordKeypoints{X: []float32{1}, Y: []float32{2}},
	}})
	require.NoError(t, err)
	assert.Equal(t, float32(1), dets[0].Keypoints[0].Visible)
}

func TestFromRecordsErrors(t *testing.T) {

	ex := NewExtractor(testRegistry(t), SchemaPlain)

	_, err := ex.FromRecords([]Record{
		{Name: "person"},
		{Name: "horse"},
	})

	var lookupErr *ClassLookupError
	require.True(t, errors.As(err, &lookupErr))
	assert.Equal(t, "horse", lookupErr.Name)

	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 1, rowErr.Row)

	_, err = ex.FromRecords([]Record{{
		Name:      "person",
		Keypoints: &RecordKeypoints{X: []float32{1, 2}, Y: []float32{1}},
	}})
	assert.ErrorIs(t, err, ErrKeypointLength)
}

func TestFromRowsPlain(t *testing.T) {

	ex := NewExtractor(testRegistry(t), SchemaFor(false))

	dets, err := ex.FromRows([][]float32{
		{10.6, 20.2, 110.9, 220.1, 0.873, 0},
		{5, 5, 15, 25, 0.4, 1},
	})
	require.NoError(t, err)
	require.Len(t, dets, 2)

	assert.Equal(t, "person", dets[0].Class)
	assert.Equal(t, float32(0.87), dets[0].Confidence)
	assert.Equal(t, 10, dets[0].X)
	assert.Equal(t, 20, dets[0].Y)
	assert.Equal(t, 100, dets[0].Width)
	assert.Equal(t, 200, dets[0].Height)
	assert.False(t, dets[0].HasTrackID())

	assert.Equal(t, "car", dets[1].Class)
	assert.Equal(t, "rgb(10,20,30)", dets[1].Color.String())
	assert.Empty(t, dets[1].Keypoints)
}

func TestFromRowsTracked(t *testing.T) {

	ex := NewExtractor(testRegistry(t), SchemaFor(true))
	assert.Equal(t, SchemaTracked, ex.Schema())

	dets, err := ex.FromRows([][]float32{
		{1, 2, 3, 4, 42, 0.91, 1},
	})
	require.NoError(t, err)

	require.True(t, dets[0].HasTrackID())
	assert.Equal(t, 42, *dets[0].TrackID)
	assert.Equal(t, float32(0.91), dets[0].Confidence)
	assert.Equal(t, "car", dets[0].Class)
}

func TestFromRowsErrors(t *testing.T) {

	ex := NewExtractor(testRegistry(t), SchemaTracked)

	// a plain row is too short for the tracked schema
	_, err := ex.FromRows([][]float32{{1, 2, 3, 4, 0.5, 0}})
	assert.ErrorIs(t, err, ErrRowLength)

	ex = NewExtractor(testRegistry(t), SchemaPlain)

	_, err = ex.FromRows([][]float32{{1, 2, 3, 4, 0.5, 2}})

	var rangeErr *classes.IndexOutOfRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, 2, rangeErr.Index)

	_, err = NewExtractor(testRegistry(t), Schema(9)).FromRows(nil)
	assert.Error(t, err)
}

// TestBoxDerivationMatches checks both input shapes derive the same box from
// the same corners
func TestBoxDerivationMatches(t *testing.T) {

	corners := []RecordBox{
		{X1: 10.7, Y1: 3.2, X2: 110.2, Y2: 90.9},
		{X1: 0, Y1: 0, X2: 0, Y2: 0},
		// disordered corners surface as negative sizes
		{X1: 50, Y1: 60, X2: 20, Y2: 10},
	}

	ex := NewExtractor(testRegistry(t), SchemaPlain)

	for _, c := range corners {

		fromRec, err := ex.FromRecords([]Record{{Name: "person", Confidence: 1, Box: c}})
		require.NoError(t, err)

		fromRow, err := ex.FromRows([][]float32{{c.X1, c.Y1, c.X2, c.Y2, 1, 0}})
		require.NoError(t, err)

		assert.Equal(t, fromRec[0], fromRow[0])

		br := fromRow[0].BoxRect().Max
		assert.Equal(t, int(c.X2)-int(c.X1), br.X-fromRow[0].X)
		assert.Equal(t, int(c.Y2)-int(c.Y1), br.Y-fromRow[0].Y)
	}

	dets, err := ex.FromRows([][]float32{{50, 60, 20, 10, 1, 0}})
	require.NoError(t, err)
	assert.Equal(t, -30, dets[0].Width)
	assert.Equal(t, -50, dets[0].Height)
}

func TestDecodeRecords(t *testing.T) {

	data := []byte(`[
	  {"name": "person", "class": 0, "confidence": 0.91,
	   "box": {"x1": 1.5, "y1": 2, "x2": 30, "y2": 40},
	   "keypoints": {"x": [3, 4], "y": [5, 6], "visible": [0.9, 0.2]}},
	  {"name": "car", "class": 1, "confidence": 0.5, "track_id": 3,
	   "box": {"x1": 0, "y1": 0, "x2": 1, "y2": 1}}
	]`)

	records, err := DecodeRecords(data)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "person", records[0].Name)
	assert.Equal(t, float32(1.5), records[0].Box.X1)
	require.NotNil(t, records[0].Keypoints)
	assert.Len(t, records[0].Keypoints.Visible, 2)
	assert.Nil(t, records[0].TrackID)

	require.NotNil(t, records[1].TrackID)
	assert.Equal(t, 3, *records[1].TrackID)

	dets, err := NewExtractor(testRegistry(t), SchemaPlain).FromRecords(records)
	require.NoError(t, err)
	assert.Equal(t, 3, *dets[1].TrackID)

	_, err = DecodeRecords([]byte(`{"name": 1}`))
	assert.Error(t, err)
}
