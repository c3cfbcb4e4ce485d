// Package backend provides the terminal abstraction the editor draws to and
// reads input events from.
package backend

import (
	"time"

	"github.com/dshills/vantage/internal/renderer/core"
)

// MinWidth and MinHeight are the smallest surface the editor will lay out.
// Smaller terminals are treated as this size and clipped.
const (
	MinWidth  = 10
	MinHeight = 3
)

// CursorStyle defines how the cursor appears.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorBar
	CursorUnderline
	CursorHidden
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventPaste
	// EventInterrupt carries an application payload posted with PostEvent.
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int

	// Paste event fields
	PasteText string

	// Interrupt payload
	Data any
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Backend is a display surface with an ordered input queue.
type Backend interface {
	// Init prepares the backend. Must be called before any other method.
	Init() error

	// Shutdown releases the backend and restores the terminal.
	Shutdown()

	// Size returns the current dimensions, never below MinWidth x MinHeight.
	Size() (width, height int)

	// SetCell sets a single cell. Positions outside the surface are ignored.
	SetCell(x, y int, cell core.Cell)

	// Clear blanks the whole surface.
	Clear()

	// Show flushes pending cell changes to the display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// SetCursorStyle changes the cursor appearance.
	SetCursorStyle(style CursorStyle)

	// Listen waits up to timeout for the next event. The boolean is false
	// when the timeout elapsed or the backend was shut down.
	Listen(timeout time.Duration) (Event, bool)

	// PostEvent appends a synthetic event to the input queue.
	PostEvent(event Event)

	// Suspend hands the terminal back to the shell.
	Suspend() error

	// Resume reclaims the terminal after Suspend.
	Resume() error
}

func clampSize(width, height int) (int, int) {
	return max(width, MinWidth), max(height, MinHeight)
}
