// Package statusline draws the bottom row of the screen: a mode label
// followed by any number of entries, the last of which is right-aligned.
package statusline

import (
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/vantage/internal/renderer/backend"
	"github.com/dshills/vantage/internal/renderer/core"
)

// Entry is one segment of the status line.
type Entry struct {
	Text  string
	Style core.Style
}

var upper = cases.Upper(language.Und)

// ModeLabel formats a mode name as it appears on the status line.
func ModeLabel(name string) string {
	return " " + upper.String(name) + " "
}

// Render draws entries on row, filling the row with fill. Entries are laid
// out left to right; when there is more than one, the last is
// right-aligned in whatever width remains. Text that does not fit is
// truncated with an ellipsis.
func Render(sb *backend.ScreenBuffer, row int, entries []Entry, fill core.Style) {
	width, _ := sb.Size()
	sb.FillRow(0, row, fill)

	col := 0
	for i, e := range entries {
		remaining := width - col
		if remaining <= 0 {
			return
		}
		text := Fit(e.Text, remaining)
		if i == len(entries)-1 && len(entries) > 1 {
			sb.FillRow(col, row, e.Style)
			col = width - runewidth.StringWidth(text)
		}
		col = sb.SetString(col, row, text, e.Style)
	}
}

// Fit truncates s to at most width columns.
func Fit(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return truncate.String(s, uint(max(width, 0)))
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
