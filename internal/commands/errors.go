package commands

import "errors"

// Errors returned by commands.
var (
	ErrEmptyLine         = errors.New("no characters on the current line")
	ErrNoSelection       = errors.New("no search result selected")
	ErrEmptyPath         = errors.New("empty path")
	ErrInvalidLineNumber = errors.New("invalid line number")
	ErrNoFormatter       = errors.New("no formatter configured")
	ErrNoCommentPrefix   = errors.New("no comment prefix for this syntax")
	ErrNoErrorToDisplay  = errors.New("no error to display")
	ErrWrongMode         = errors.New("command is not available in this mode")
)
