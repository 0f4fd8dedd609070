package postprocess

import (
	"errors"
	"fmt"
)

var (
	// ErrRowLength is returned when a positional row or tensor does not hold
	// the number of values the schema requires
	ErrRowLength = errors.New("row length does not match schema")
	// ErrKeypointLength is returned when the keypoint x, y and visibility
	// arrays of a record differ in length
	ErrKeypointLength = errors.New("keypoint arrays differ in length")
)

// ClassLookupError is returned when a detection names a class that is not
// in the Registry.  The frame can not be extracted
type ClassLookupError struct {
	Name string
}

func (e *ClassLookupError) Error() string {
	return fmt.Sprintf("no class named %q", e.Name)
}

// RowError reports which positional row or structured record of a frame
// failed extraction
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("detection %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
