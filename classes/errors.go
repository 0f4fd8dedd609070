package classes

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned when the class metadata document is invalid
	ErrMalformed = errors.New("malformed class metadata")
	// ErrUnresolvedKeypoint is returned when a skeleton connection references
	// a keypoint id the class does not declare
	ErrUnresolvedKeypoint = errors.New("unresolved keypoint reference")
	// ErrDuplicateClass is returned when two classes share the same name
	ErrDuplicateClass = errors.New("duplicate class name")
	// ErrDuplicateKeypoint is returned when a skeleton declares the same
	// keypoint id twice
	ErrDuplicateKeypoint = errors.New("duplicate keypoint id")
)

// ConfigError is returned when a Registry can not be built from the class
// metadata given.  It is always fatal to the load
type ConfigError struct {
	// Class is the name of the offending class, empty when the error applies
	// to the document as a whole
	Class string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Class == "" {
		return "class metadata: " + e.Err.Error()
	}
	return fmt.Sprintf("class metadata: class %q: %v", e.Class, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IndexOutOfRangeError is returned when a positional class id does not
// reference a class in the Registry
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("class index %d out of range [0,%d)", e.Index, e.Len)
}
