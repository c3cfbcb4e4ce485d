// Package history provides an undo/redo stack whose entries can be
// coalesced into groups so that a run of edits undoes as one step.
package history

import (
	"errors"
	"sync"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Command is a reversible edit. Apply redoes the edit after Revert has
// undone it; the first application happens before the command is pushed.
type Command interface {
	Apply()
	Revert()
}

// Compound applies its commands in order and reverts them in reverse.
type Compound []Command

// Apply implements Command.
func (c Compound) Apply() {
	for _, cmd := range c {
		cmd.Apply()
	}
}

// Revert implements Command.
func (c Compound) Revert() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i].Revert()
	}
}

type entry struct {
	command   Command
	timestamp time.Time
}

// History manages undo/redo state for a document.
type History struct {
	mu sync.Mutex

	undoStack []entry
	redoStack []entry

	grouping bool
	group    Compound

	maxEntries int
}

// New creates a history holding at most maxEntries undo steps.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &History{maxEntries: maxEntries}
}

// Push records an already-applied command and clears the redo stack.
func (h *History) Push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.redoStack = nil
	if h.grouping {
		h.group = append(h.group, cmd)
		return
	}
	h.pushLocked(cmd)
}

func (h *History) pushLocked(cmd Command) {
	h.undoStack = append(h.undoStack, entry{command: cmd, timestamp: time.Now()})
	if excess := len(h.undoStack) - h.maxEntries; excess > 0 {
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the most recent step and returns it.
func (h *History) Undo() (Command, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.endGroupLocked()
	if len(h.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	e.command.Revert()
	h.redoStack = append(h.redoStack, e)
	return e.command, nil
}

// Redo re-applies the most recently undone step and returns it.
func (h *History) Redo() (Command, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	e.command.Apply()
	h.undoStack = append(h.undoStack, e)
	return e.command, nil
}

// BeginGroup starts coalescing pushed commands. An open group is closed
// first, so groups never nest.
func (h *History) BeginGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.endGroupLocked()
	h.grouping = true
}

// EndGroup closes the open group, recording it as one undo step if any
// command was pushed while it was open.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.endGroupLocked()
}

func (h *History) endGroupLocked() {
	if !h.grouping {
		return
	}
	h.grouping = false
	if len(h.group) > 0 {
		h.pushLocked(h.group)
	}
	h.group = nil
}

// IsGrouping returns true if a group is open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// UndoCount returns the number of undo steps available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo steps available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack, h.redoStack = nil, nil
	h.grouping, h.group = false, nil
}
