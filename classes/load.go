package classes

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/yolokit/go-annotate/result"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// document is the layout of the class metadata file
//
//	classes:
//	  - name: person
//	    color: '#00ffcc'
//	    skeleton:
//	      keypoints:
//	        - id: nose
//	          name: Nose
//	        - id: left_eye
//	          name: Left Eye
//	      connections:
//	        - from: nose
//	          to: left_eye
//	          color: rgb(255,0,0)
type document struct {
	Classes []classEntry `yaml:"classes" validate:"required,min=1,dive"`
}

type classEntry struct {
	Name     string         `yaml:"name" validate:"required"`
	Color    colorNode      `yaml:"color"`
	Skeleton *skeletonEntry `yaml:"skeleton"`
}

type skeletonEntry struct {
	Keypoints   []keypointEntry   `yaml:"keypoints" validate:"dive"`
	Connections []connectionEntry `yaml:"connections" validate:"dive"`
}

type keypointEntry struct {
	ID   symbol `yaml:"id" validate:"required"`
	Name string `yaml:"name"`
}

type connectionEntry struct {
	From  symbol    `yaml:"from" validate:"required"`
	To    symbol    `yaml:"to" validate:"required"`
	Color colorNode `yaml:"color"`
}

// symbol is a keypoint identifier.  Identifiers may be written as strings or
// numbers in the metadata, both are kept as their literal text
type symbol string

func (s *symbol) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: keypoint id must be a scalar", value.Line)
	}

	*s = symbol(value.Value)
	return nil
}

// colorNode accepts either a color string or an [r, g, b] sequence
type colorNode struct {
	result.Color
}

func (c *colorNode) UnmarshalYAML(value *yaml.Node) error {

	switch value.Kind {
	case yaml.ScalarNode:
		c.Color = result.NewColor(value.Value)
		return nil

	case yaml.SequenceNode:
		var rgb []int

		if err := value.Decode(&rgb); err != nil {
			return err
		}

		if len(rgb) != 3 {
			return fmt.Errorf("line %d: rgb color needs 3 components, got %d", value.Line, len(rgb))
		}

		for _, v := range rgb {
			if v < 0 || v > 255 {
				return fmt.Errorf("line %d: rgb component %d out of range", value.Line, v)
			}
		}

		c.Color = result.RGB(uint8(rgb[0]), uint8(rgb[1]), uint8(rgb[2]))
		return nil
	}

	return fmt.Errorf("line %d: color must be a string or [r, g, b]", value.Line)
}

// LoadFile reads the class metadata YAML file at path and builds a Registry
func LoadFile(path string) (*Registry, error) {

	f, err := os.Open(path)

	if err != nil {
		return nil, fmt.Errorf("error opening class metadata: %w", err)
	}

	defer f.Close()

	return Load(f)
}

// Load reads class metadata YAML from r and builds a Registry.  Skeleton
// connections are resolved from keypoint ids to keypoint positions, any
// failure is returned as a *ConfigError
func Load(r io.Reader) (*Registry, error) {

	data, err := io.ReadAll(r)

	if err != nil {
		return nil, fmt.Errorf("error reading class metadata: %w", err)
	}

	return Parse(data)
}

// Parse builds a Registry from class metadata YAML
func Parse(data []byte) (*Registry, error) {

	var doc document

	dec := yaml.NewDecoder(bytes.NewReader(data))

	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ConfigError{Err: fmt.Errorf("%w: empty document", ErrMalformed)}
		}
		return nil, &ConfigError{Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}

	defs := make([]ClassDefinition, 0, len(doc.Classes))

	for i, entry := range doc.Classes {

		def := ClassDefinition{
			Name:  entry.Name,
			Color: entry.Color.Color,
		}

		if def.Color.IsZero() {
			def.Color = PaletteColor(i)
		}

		if entry.Skeleton != nil {
			skel, err := resolveSkeleton(entry.Skeleton, def.Color)

			if err != nil {
				return nil, &ConfigError{Class: entry.Name, Err: err}
			}

			def.Skeleton = skel
		}

		defs = append(defs, def)
	}

	return New(defs)
}

// resolveSkeleton maps each declared keypoint id to its declaration order
// and resolves the connections through that mapping
func resolveSkeleton(entry *skeletonEntry, classColor result.Color) (*Skeleton, error) {

	indices := make(map[symbol]int, len(entry.Keypoints))
	skel := &Skeleton{}

	for i, kp := range entry.Keypoints {

		if _, exists := indices[kp.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKeypoint, kp.ID)
		}

		indices[kp.ID] = i
		skel.Keypoints = append(skel.Keypoints, KeypointDef{ID: string(kp.ID), Name: kp.Name})
	}

	for i, conn := range entry.Connections {

		from, ok := indices[conn.From]

		if !ok {
			return nil, fmt.Errorf("%w: connection %d from %q", ErrUnresolvedKeypoint, i, conn.From)
		}

		to, ok := indices[conn.To]

		if !ok {
			return nil, fmt.Errorf("%w: connection %d to %q", ErrUnresolvedKeypoint, i, conn.To)
		}

		clr := conn.Color.Color

		if clr.IsZero() {
			clr = classColor
		}

		skel.Connections = append(skel.Connections, result.Connection{
			From:  from,
			To:    to,
			Color: clr,
		})
	}

	return skel, nil
}
