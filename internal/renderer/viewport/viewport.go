// Package viewport tracks which buffer line is drawn at the top of the
// screen and moves it to keep the cursor visible.
//
// Scrolling accounts for soft wrapping: a line wider than the content area
// occupies several rows, so fewer lines fit above the cursor.
package viewport

import (
	"github.com/dshills/vantage/internal/renderer/gutter"
	"github.com/dshills/vantage/internal/renderer/layout"
)

// Lines is the read access the viewport needs to a document.
type Lines interface {
	Line(n int) (string, bool)
	LineCount() int
}

// Viewport is the first visible line of a document.
type Viewport struct {
	offset int

	// Terminal size in cells.
	width  int
	height int

	tabs     layout.TabExpander
	wrapping bool
}

// New creates a viewport for a terminal of the given size.
func New(width, height int) *Viewport {
	v := &Viewport{tabs: layout.NewTabExpander(2), wrapping: true}
	v.Resize(width, height)
	return v
}

// Resize updates the terminal size.
func (v *Viewport) Resize(width, height int) {
	v.width, v.height = max(width, 1), max(height, 2)
}

// SetLayout sets the tab width and whether long lines wrap. They must match
// the buffer renderer's options for row counts to agree with the screen.
func (v *Viewport) SetLayout(tabWidth int, wrapping bool) {
	v.tabs = layout.NewTabExpander(tabWidth)
	v.wrapping = wrapping
}

// Offset returns the first visible line.
func (v *Viewport) Offset() int {
	return v.offset
}

// Height returns the rows available to buffer content. The bottom row is
// the status line.
func (v *Viewport) Height() int {
	return v.height - 1
}

// ScrollUp moves the viewport up by amount lines, stopping at the top.
func (v *Viewport) ScrollUp(amount int) {
	v.offset = max(v.offset-amount, 0)
}

// ScrollDown moves the viewport down by amount lines.
func (v *Viewport) ScrollDown(amount int) {
	v.offset += amount
}

// ScrollIntoView moves the viewport the least distance that puts
// cursorLine on screen.
func (v *Viewport) ScrollIntoView(cursorLine int, doc Lines) {
	if cursorLine <= v.offset {
		v.offset = cursorLine
		return
	}
	start := max(cursorLine-v.precedingLines(cursorLine, doc, v.Height()), 0)
	if start > v.offset {
		v.offset = start
	}
}

// ScrollToCenter moves the viewport so cursorLine sits in the middle of
// the content area.
func (v *Viewport) ScrollToCenter(cursorLine int, doc Lines) {
	limit := (v.Height() + 1) / 2
	v.offset = max(cursorLine-v.precedingLines(cursorLine, doc, limit), 0)
}

// precedingLines counts the lines directly above cursorLine that fit in
// limit rows together with the cursor's own line.
func (v *Viewport) precedingLines(cursorLine int, doc Lines, limit int) int {
	start := max(cursorLine+1-limit, 0)
	consumed := v.rows(cursorLine, doc)
	count := 0
	for n := cursorLine - 1; n >= start; n-- {
		consumed += v.rows(n, doc)
		if consumed > limit {
			break
		}
		count++
	}
	return count
}

// Span returns the rows taken by lines offset through cursorLine.
func (v *Viewport) Span(cursorLine int, doc Lines) int {
	rows := 0
	for n := v.offset; n <= cursorLine; n++ {
		rows += v.rows(n, doc)
	}
	return rows
}

// rows returns the screen rows line n takes.
func (v *Viewport) rows(n int, doc Lines) int {
	line, ok := doc.Line(n)
	if !ok || !v.wrapping {
		return 1
	}
	return v.tabs.RowCount(line, v.width-gutter.Width(doc.LineCount()))
}
