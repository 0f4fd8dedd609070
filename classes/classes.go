// Package classes holds the class metadata a model was trained on, the
// display color of each class and the skeleton topology of pose classes.
package classes

import (
	"fmt"

	"github.com/yolokit/go-annotate/result"
)

// KeypointDef is a keypoint declared by a skeleton
type KeypointDef struct {
	// ID is the symbolic identifier connections reference the keypoint by
	ID string
	// Name is the display name of the keypoint
	Name string
}

// Skeleton is the declared keypoint set of a class and the connections
// between them.  Connection From/To are positions in Keypoints
type Skeleton struct {
	Keypoints   []KeypointDef
	Connections []result.Connection
}

// ClassDefinition defines a single class of object
type ClassDefinition struct {
	Name  string
	Color result.Color
	// Skeleton is nil for classes without pose keypoints
	Skeleton *Skeleton
}

// Connections returns a copy of the skeleton connections of the class, nil
// when the class has no skeleton
func (c ClassDefinition) Connections() []result.Connection {
	if c.Skeleton == nil || len(c.Skeleton.Connections) == 0 {
		return nil
	}

	conns := make([]result.Connection, len(c.Skeleton.Connections))
	copy(conns, c.Skeleton.Connections)

	return conns
}

// Registry is an immutable lookup of class definitions by name and by
// positional class id.  A Registry is never modified once built so it is
// safe for concurrent use, loading new metadata builds a new Registry
type Registry struct {
	classes []ClassDefinition
	byName  map[string]int
}

// New builds a Registry from the given definitions.  The definitions are
// copied.  Classes without a color are given the palette color for their
// position
func New(defs []ClassDefinition) (*Registry, error) {

	reg := &Registry{
		classes: make([]ClassDefinition, len(defs)),
		byName:  make(map[string]int, len(defs)),
	}

	for i, def := range defs {

		if def.Name == "" {
			return nil, &ConfigError{Err: fmt.Errorf("%w: class %d has no name", ErrMalformed, i)}
		}

		if _, exists := reg.byName[def.Name]; exists {
			return nil, &ConfigError{Class: def.Name, Err: ErrDuplicateClass}
		}

		if def.Color.IsZero() {
			def.Color = PaletteColor(i)
		}

		if def.Skeleton != nil {
			skel, err := copySkeleton(def.Skeleton)

			if err != nil {
				return nil, &ConfigError{Class: def.Name, Err: err}
			}

			def.Skeleton = skel
		}

		reg.classes[i] = def
		reg.byName[def.Name] = i
	}

	return reg, nil
}

// copySkeleton returns a private copy of the skeleton after checking its
// connections reference declared keypoints
func copySkeleton(s *Skeleton) (*Skeleton, error) {

	seen := make(map[string]bool, len(s.Keypoints))

	for _, kp := range s.Keypoints {
		if seen[kp.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKeypoint, kp.ID)
		}
		seen[kp.ID] = true
	}

	for i, conn := range s.Connections {
		if conn.From < 0 || conn.From >= len(s.Keypoints) ||
			conn.To < 0 || conn.To >= len(s.Keypoints) {
			return nil, fmt.Errorf("%w: connection %d (%d -> %d) with %d keypoints",
				ErrUnresolvedKeypoint, i, conn.From, conn.To, len(s.Keypoints))
		}
	}

	skel := &Skeleton{
		Keypoints:   make([]KeypointDef, len(s.Keypoints)),
		Connections: make([]result.Connection, len(s.Connections)),
	}

	copy(skel.Keypoints, s.Keypoints)
	copy(skel.Connections, s.Connections)

	return skel, nil
}

// FindByName returns the class with the given name
func (r *Registry) FindByName(name string) (ClassDefinition, bool) {

	i, ok := r.byName[name]

	if !ok {
		return ClassDefinition{}, false
	}

	return r.classes[i], true
}

// ByIndex returns the class at the positional class id i, as used by models
// that output an integer class id
func (r *Registry) ByIndex(i int) (ClassDefinition, error) {

	if i < 0 || i >= len(r.classes) {
		return ClassDefinition{}, &IndexOutOfRangeError{Index: i, Len: len(r.classes)}
	}

	return r.classes[i], nil
}

// Len returns the number of classes
func (r *Registry) Len() int {
	return len(r.classes)
}

// Names returns the class names in positional order
func (r *Registry) Names() []string {

	names := make([]string, len(r.classes))

	for i, c := range r.classes {
		names[i] = c.Name
	}

	return names
}
