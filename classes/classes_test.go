package classes

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yolokit/go-annotate/result"
)

func TestLoadFile(t *testing.T) {

	reg, err := LoadFile("testdata/coco-pose.yaml")
	require.NoError(t, err)

	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, []string{"person", "dog", "cat"}, reg.Names())

	person, ok := reg.FindByName("person")
	require.True(t, ok)
	assert.Equal(t, "#00ffcc", person.Color.String())
	require.NotNil(t, person.Skeleton)
	require.Len(t, person.Skeleton.Keypoints, 3)
	assert.Equal(t, "left_eye", person.Skeleton.Keypoints[1].ID)

	require.Len(t, person.Skeleton.Connections, 2)
	assert.Equal(t, 0, person.Skeleton.Connections[0].From)
	assert.Equal(t, 1, person.Skeleton.Connections[0].To)
	assert.Equal(t, "rgb(255,0,0)", person.Skeleton.Connections[0].Color.String())
	assert.Equal(t, 2, person.Skeleton.Connections[1].To)
	// connection without a color uses the class color
	assert.Equal(t, "#00ffcc", person.Skeleton.Connections[1].Color.String())

	dog, err := reg.ByIndex(1)
	require.NoError(t, err)
	rgb, isRGB := dog.Color.Triple()
	assert.True(t, isRGB)
	assert.Equal(t, [3]uint8{10, 20, 30}, rgb)
	assert.Nil(t, dog.Skeleton)
	assert.Nil(t, dog.Connections())

	cat, ok := reg.FindByName("cat")
	require.True(t, ok)
	assert.Equal(t, PaletteColor(2), cat.Color)
}

func TestResolveConnectionIndices(t *testing.T) {

	doc := `
classes:
  - name: face
    color: red
    skeleton:
      keypoints:
        - id: nose
        - id: leftEye
        - id: rightEye
      connections:
        - from: nose
          to: leftEye
          color: blue
`
	reg, err := Parse([]byte(doc))
	require.NoError(t, err)

	face, ok := reg.FindByName("face")
	require.True(t, ok)
	assert.Equal(t, []result.Connection{{From: 0, To: 1, Color: result.NewColor("blue")}},
		face.Connections())
}

func TestNumericKeypointIDs(t *testing.T) {

	doc := `
classes:
  - name: hand
    color: green
    skeleton:
      keypoints:
        - id: 0
        - id: 1
      connections:
        - from: 1
          to: 0
`
	reg, err := Parse([]byte(doc))
	require.NoError(t, err)

	hand, _ := reg.FindByName("hand")
	assert.Equal(t, 1, hand.Skeleton.Connections[0].From)
	assert.Equal(t, 0, hand.Skeleton.Connections[0].To)
}

func TestLoadErrors(t *testing.T) {

	tests := []struct {
		name  string
		doc   string
		class string
		want  error
	}{
		{
			name: "undeclared keypoint",
			doc: `
classes:
  - name: person
    color: red
    skeleton:
      keypoints:
        - id: nose
      connections:
        - from: nose
          to: tail
`,
			class: "person",
			want:  ErrUnresolvedKeypoint,
		},
		{
			name: "connections without keypoints",
			doc: `
classes:
  - name: person
    skeleton:
      connections:
        - from: a
          to: b
`,
			class: "person",
			want:  ErrUnresolvedKeypoint,
		},
		{
			name: "duplicate keypoint",
			doc: `
classes:
  - name: person
    skeleton:
      keypoints:
        - id: nose
        - id: nose
`,
			class: "person",
			want:  ErrDuplicateKeypoint,
		},
		{
			name: "duplicate class",
			doc: `
classes:
  - name: person
  - name: person
`,
			class: "person",
			want:  ErrDuplicateClass,
		},
		{
			name: "missing name",
			doc: `
classes:
  - color: red
`,
			want: ErrMalformed,
		},
		{
			name: "no classes",
			doc:  "classes: []\n",
			want: ErrMalformed,
		},
		{
			name: "empty document",
			doc:  "",
			want: ErrMalformed,
		},
		{
			name: "bad rgb triple",
			doc: `
classes:
  - name: person
    color: [1, 2]
`,
			want: ErrMalformed,
		},
		{
			name: "connection missing endpoint",
			doc: `
classes:
  - name: person
    skeleton:
      keypoints:
        - id: nose
      connections:
        - from: nose
`,
			want: ErrMalformed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {

			reg, err := Load(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.Nil(t, reg)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %T", err)
			assert.Equal(t, tc.class, cfgErr.Class)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestByIndexOutOfRange(t *testing.T) {

	reg, err := New([]ClassDefinition{{Name: "a"}, {Name: "b"}})
	require.NoError(t, err)

	for _, i := range []int{-1, 2, 100} {
		_, err := reg.ByIndex(i)

		var rangeErr *IndexOutOfRangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, i, rangeErr.Index)
		assert.Equal(t, 2, rangeErr.Len)
	}
}

func TestFindByNameMissing(t *testing.T) {

	reg, err := New([]ClassDefinition{{Name: "a"}})
	require.NoError(t, err)

	_, ok := reg.FindByName("b")
	assert.False(t, ok)
}

func TestNewCopiesDefinitions(t *testing.T) {

	defs := []ClassDefinition{{
		Name:  "person",
		Color: result.NewColor("red"),
		Skeleton: &Skeleton{
			Keypoints:   []KeypointDef{{ID: "a"}, {ID: "b"}},
			Connections: []result.Connection{{From: 0, To: 1}},
		},
	}}

	reg, err := New(defs)
	require.NoError(t, err)

	defs[0].Name = "changed"
	defs[0].Skeleton.Connections[0].To = 0

	person, ok := reg.FindByName("person")
	require.True(t, ok)
	assert.Equal(t, 1, person.Skeleton.Connections[0].To)

	conns := person.Connections()
	conns[0].From = 1

	again, _ := reg.FindByName("person")
	assert.Equal(t, 0, again.Skeleton.Connections[0].From)
}

func TestNewRejectsBadConnection(t *testing.T) {

	_, err := New([]ClassDefinition{{
		Name: "person",
		Skeleton: &Skeleton{
			Keypoints:   []KeypointDef{{ID: "a"}},
			Connections: []result.Connection{{From: 0, To: 3}},
		},
	}})

	assert.ErrorIs(t, err, ErrUnresolvedKeypoint)
}

func TestLoadLabels(t *testing.T) {

	reg, err := LoadLabels("testdata/labels.txt")
	require.NoError(t, err)

	assert.Equal(t, []string{"person", "bicycle", "car"}, reg.Names())

	car, err := reg.ByIndex(2)
	require.NoError(t, err)
	assert.Equal(t, PaletteColor(2), car.Color)

	_, err = LoadLabels("testdata/missing.txt")
	assert.Error(t, err)
}
