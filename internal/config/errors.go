package config

import (
	"errors"
	"fmt"
)

// ErrInvalidValue is returned for settings with an unusable value.
var ErrInvalidValue = errors.New("invalid preference value")

// ParseError is returned when the preference file cannot be decoded.
type ParseError struct {
	Path string
	// Line is zero when unknown.
	Line    int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
