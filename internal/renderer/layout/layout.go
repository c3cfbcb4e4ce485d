// Package layout holds the column arithmetic shared by the renderer and the
// viewport: tab stops, grapheme widths and wrapped row counts.
package layout

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/vantage/internal/renderer/core"
)

// TabExpander computes tab stops for a fixed tab width.
type TabExpander struct {
	tabWidth int
}

// NewTabExpander creates a tab expander with the given tab width.
func NewTabExpander(tabWidth int) TabExpander {
	if tabWidth < 1 {
		tabWidth = 1
	}
	return TabExpander{tabWidth: tabWidth}
}

// TabWidth returns the tab width.
func (t TabExpander) TabWidth() int {
	return t.tabWidth
}

// NextTabStop returns the first tab stop strictly after col.
func (t TabExpander) NextTabStop(col int) int {
	return (col/t.tabWidth + 1) * t.tabWidth
}

// ExpandedWidth returns the column count of s with tabs expanded and every
// other grapheme taking one column.
func (t TabExpander) ExpandedWidth(s string) int {
	col := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if g.Str() == "\t" {
			col = t.NextTabStop(col)
		} else {
			col++
		}
	}
	return col
}

// Lines splits text into lines. A trailing newline does not start a final
// empty line.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// RowCount returns the number of screen rows line occupies when wrapped at
// width columns. It advances the way the buffer renderer draws: a row wraps
// once the column reaches width, a tab runs to the next stop clipped to the
// row, and other graphemes take their display width. Every line takes at
// least one row.
func (t TabExpander) RowCount(line string, width int) int {
	if width <= 0 {
		return 1
	}
	rows, col := 1, 0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		if col >= width {
			rows++
			col = 0
		}
		if cluster := g.Str(); cluster == "\t" {
			col = min(t.NextTabStop(col), width)
		} else {
			col += core.GraphemeWidth(cluster)
		}
	}
	return rows
}
