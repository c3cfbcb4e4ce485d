package backend

import (
	"strings"

	"github.com/dshills/vantage/internal/renderer/core"
)

// ScreenBuffer is an off-screen cell grid. A frame is drawn into it in full
// and then flushed to a Backend, which only receives the cells that changed
// since the previous flush.
type ScreenBuffer struct {
	width, height int
	front         [][]core.Cell
	back          [][]core.Cell
	fullRedraw    bool
}

// NewScreenBuffer creates a screen buffer with the given dimensions.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	sb := &ScreenBuffer{}
	sb.Resize(width, height)
	return sb
}

func newGrid(width, height int) [][]core.Cell {
	grid := make([][]core.Cell, height)
	for y := range grid {
		grid[y] = make([]core.Cell, width)
		for x := range grid[y] {
			grid[y][x] = core.EmptyCell()
		}
	}
	return grid
}

// Resize reallocates the buffer and forces a full redraw on next flush.
func (sb *ScreenBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == sb.width && height == sb.height && sb.back != nil {
		return
	}
	sb.width, sb.height = width, height
	sb.front = newGrid(width, height)
	sb.back = newGrid(width, height)
	sb.fullRedraw = true
}

// Size returns the buffer dimensions.
func (sb *ScreenBuffer) Size() (width, height int) {
	return sb.width, sb.height
}

// Clear blanks the back buffer.
func (sb *ScreenBuffer) Clear() {
	for y := range sb.back {
		for x := range sb.back[y] {
			sb.back[y][x] = core.EmptyCell()
		}
	}
}

// SetCell sets a cell in the back buffer. Wide cells blank the columns
// they cover.
func (sb *ScreenBuffer) SetCell(x, y int, cell core.Cell) {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return
	}
	sb.back[y][x] = cell
	for i := 1; i < cell.Width && x+i < sb.width; i++ {
		sb.back[y][x+i] = core.Cell{Style: cell.Style}
	}
}

// Cell returns a cell from the back buffer.
func (sb *ScreenBuffer) Cell(x, y int) core.Cell {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return core.EmptyCell()
	}
	return sb.back[y][x]
}

// SetString writes s starting at (x, y) and returns the column after the
// last cell written. Output is clipped at the right edge.
func (sb *ScreenBuffer) SetString(x, y int, s string, style core.Style) int {
	for _, g := range graphemes(s) {
		if x >= sb.width {
			break
		}
		cell := core.NewCell(g, style)
		sb.SetCell(x, y, cell)
		x += cell.Width
	}
	return x
}

// FillRow sets every cell from column x to the right edge of row y.
func (sb *ScreenBuffer) FillRow(x, y int, style core.Style) {
	for ; x < sb.width; x++ {
		sb.SetCell(x, y, core.Cell{Content: " ", Width: 1, Style: style})
	}
}

// Row returns the text of row y, one grapheme per occupied cell.
func (sb *ScreenBuffer) Row(y int) string {
	if y < 0 || y >= sb.height {
		return ""
	}
	var b strings.Builder
	for _, c := range sb.back[y] {
		b.WriteString(c.Content)
	}
	return b.String()
}

// Content returns every row joined by newlines.
func (sb *ScreenBuffer) Content() string {
	rows := make([]string, sb.height)
	for y := range rows {
		rows[y] = sb.Row(y)
	}
	return strings.Join(rows, "\n")
}

// Flush sends changed cells to the backend and shows them.
func (sb *ScreenBuffer) Flush(b Backend) {
	for y := 0; y < sb.height; y++ {
		for x := 0; x < sb.width; x++ {
			cell := sb.back[y][x]
			if !sb.fullRedraw && cell == sb.front[y][x] {
				continue
			}
			sb.front[y][x] = cell
			if cell.Content != "" {
				b.SetCell(x, y, cell)
			}
		}
	}
	sb.fullRedraw = false
	b.Show()
}

// MarkFullRedraw forces every cell to be sent on the next flush.
func (sb *ScreenBuffer) MarkFullRedraw() {
	sb.fullRedraw = true
}
