package app

import (
	"errors"
	"fmt"
)

// Errors returned by commands and the event loop.
var (
	// ErrQuit ends the event loop without reporting a failure.
	ErrQuit = errors.New("quit requested")

	ErrBufferMissing      = errors.New("no buffer available")
	ErrBufferParseFailed  = errors.New("failed to parse buffer")
	ErrCurrentLineMissing = errors.New("couldn't find the current line")
	ErrSearchQueryMissing = errors.New("no search query")
	ErrNoSearchResults    = errors.New("no search results")
	ErrScrollFailed       = errors.New("failed to scroll to cursor")

	// ErrUnknownCommand is returned when running a name that is not
	// registered.
	ErrUnknownCommand = errors.New("unknown command")
)

// OperationError records what was being done when an error occurred.
type OperationError struct {
	Op      string // e.g. "save", "open"
	Target  string // e.g. a path
	Context string
	Err     error
}

// NewOperationError creates an OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

// WithContext adds context to the error. It is safe on a nil receiver.
func (e *OperationError) WithContext(ctx string) *OperationError {
	if e == nil {
		return nil
	}
	e.Context = ctx
	return e
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Context != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Context)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ComponentError is an error raised by one part of the editor.
type ComponentError struct {
	Component string // e.g. "renderer", "config"
	Action    string
	Err       error
}

// NewComponentError creates a ComponentError.
func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{Component: component, Action: action, Err: err}
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Action != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Component, e.Action, e.Err)
	case e.Action != "":
		return fmt.Sprintf("%s: %s", e.Component, e.Action)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Component, e.Err)
	}
	return e.Component
}

func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WrapError prefixes err with a formatted message. It returns nil for a
// nil err.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
