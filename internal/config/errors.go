package config

import (
	"errors"
	"fmt"
)

var (
	// ErrParameterBounds indicates an option outside its valid range.
	ErrParameterBounds = errors.New("config: parameter out of valid bounds")

	// ErrUnknownPreset indicates a preset name that is not in the table.
	ErrUnknownPreset = errors.New("config: unknown preset")
)

// BoundsError names the offending option.
type BoundsError struct {
	Field string
	Value string
	Want  string
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: %s = %s, want %s", ErrParameterBounds, e.Field, e.Value, e.Want)
}

func (e *BoundsError) Unwrap() error {
	return ErrParameterBounds
}
