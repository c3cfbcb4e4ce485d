package lua

import "errors"

// Errors returned by the host.
var (
	// ErrStateClosed is returned when operating on a closed host.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrUnknownCommand is returned by Run for a name no script registered.
	ErrUnknownCommand = errors.New("unknown lua command")

	// ErrNoEditor is returned when a vantage function is called outside a
	// running command.
	ErrNoEditor = errors.New("no command is running")
)
