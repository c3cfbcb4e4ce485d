// Package mode defines the editor's modes. Exactly one is active at a
// time; each variant carries only the state that belongs to it.
//
// Dispatch sites switch over the concrete types:
//
//	switch m := current.(type) {
//	case *mode.Search:
//	    ...
//	}
package mode

import (
	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/jump"
)

// Mode is implemented by every mode variant in this package.
type Mode interface {
	// Name is the keymap section used for the mode. Exit has none.
	Name() string

	// Label is shown in the status line.
	Label() string

	isMode()
}

// Normal is the default mode.
type Normal struct{}

func (Normal) Name() string { return "normal" }
func (Normal) Label() string { return "normal" }
func (Normal) isMode() {}

// Insert types into the current buffer.
type Insert struct{}

func (Insert) Name() string { return "insert" }
func (Insert) Label() string { return "insert" }
func (Insert) isMode() {}

// Exit ends the event loop.
type Exit struct{}

func (Exit) Name() string { return "" }
func (Exit) Label() string { return "" }
func (Exit) isMode() {}

// Select extends a selection from Anchor to the cursor.
type Select struct {
	Anchor buffer.Position
}

func (*Select) Name() string { return "select" }
func (*Select) Label() string { return "select" }
func (*Select) isMode() {}

// Range returns the selection with the cursor at c.
func (s *Select) Range(c buffer.Position) buffer.Range {
	return buffer.NewRange(s.Anchor, c)
}

// SelectLine selects whole lines from Anchor to the cursor's line.
type SelectLine struct {
	Anchor int
}

func (*SelectLine) Name() string { return "select_line" }
func (*SelectLine) Label() string { return "select line" }
func (*SelectLine) isMode() {}

// Lines returns the selected lines with the cursor on line.
func (s *SelectLine) Lines(line int) buffer.LineRange {
	return buffer.NewLineRange(s.Anchor, line)
}

// Jump labels on-screen words so the cursor can be moved to one by typing
// its tag.
type Jump struct {
	Tags *jump.Assigner
	// Input holds the tag characters typed so far.
	Input string
	// Resume is the Select or SelectLine mode Jump was entered from. It is
	// restored when the jump ends.
	Resume Mode
}

// NewJump creates a jump mode in its first phase.
func NewJump(cursorLine int) *Jump {
	return &Jump{Tags: jump.NewAssigner(cursorLine)}
}

func (*Jump) Name() string { return "jump" }
func (*Jump) Label() string { return "jump" }
func (*Jump) isMode() {}

// TagLength is the number of characters that complete a tag.
func (j *Jump) TagLength() int {
	if j.Tags.FirstPhase {
		return 1
	}
	return 2
}

// LineJump reads a line number.
type LineJump struct {
	Input string
}

func (*LineJump) Name() string { return "line_jump" }
func (*LineJump) Label() string { return "go to line" }
func (*LineJump) isMode() {}

// Path edits the current buffer's path.
type Path struct {
	Input string
	// SaveOnAccept saves the buffer once the path is set.
	SaveOnAccept bool
}

func (*Path) Name() string { return "path" }
func (*Path) Label() string { return "path" }
func (*Path) isMode() {}

// Confirm asks before running Command.
type Confirm struct {
	Command string
}

func (*Confirm) Name() string { return "confirm" }
func (*Confirm) Label() string { return "confirm" }
func (*Confirm) isMode() {}
