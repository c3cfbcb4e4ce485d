package renderer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/renderer/backend"
	"github.com/dshills/vantage/internal/renderer/core"
	"github.com/dshills/vantage/internal/renderer/highlight"
	"github.com/dshills/vantage/internal/renderer/rendercache"
	"github.com/dshills/vantage/internal/renderer/statusline"
)

// Presenter composes frames. Each frame starts with Begin, draws into the
// screen buffer and ends with Present, which flushes the changed cells and
// places the cursor.
type Presenter struct {
	backend backend.Backend
	screen  *backend.ScreenBuffer
	theme   *highlight.Theme
	palette Palette

	cursor      *core.ScreenPos
	cursorStyle backend.CursorStyle
}

// NewPresenter creates a presenter drawing to b.
func NewPresenter(b backend.Backend, theme *highlight.Theme) *Presenter {
	w, h := b.Size()
	return &Presenter{
		backend: b,
		screen:  backend.NewScreenBuffer(w, h),
		theme:   theme,
		palette: NewPalette(theme),
	}
}

// Theme returns the current theme.
func (p *Presenter) Theme() *highlight.Theme {
	return p.theme
}

// SetTheme replaces the theme for subsequent frames.
func (p *Presenter) SetTheme(theme *highlight.Theme) {
	p.theme = theme
	p.palette = NewPalette(theme)
	p.screen.MarkFullRedraw()
}

// Palette returns the fixed styles derived from the theme.
func (p *Presenter) Palette() Palette {
	return p.palette
}

// Screen returns the frame being drawn.
func (p *Presenter) Screen() *backend.ScreenBuffer {
	return p.screen
}

// Size returns the frame dimensions.
func (p *Presenter) Size() (width, height int) {
	return p.screen.Size()
}

// Begin starts a frame sized to the backend.
func (p *Presenter) Begin() {
	w, h := p.backend.Size()
	p.screen.Resize(w, h)
	p.screen.Clear()
	p.cursor = nil
	p.cursorStyle = backend.CursorBlock
}

// DrawBuffer renders buf and places the cursor where the buffer's cursor
// was drawn.
func (p *Presenter) DrawBuffer(buf *buffer.Buffer, cache *rendercache.Cache, opts Options) error {
	pos, visible, err := NewBufferRenderer(buf, p.screen, p.theme, cache, opts).Render()
	if err != nil {
		return err
	}
	if visible {
		p.SetCursor(pos)
	}
	return nil
}

// SetCursor shows the cursor at pos when the frame is presented.
func (p *Presenter) SetCursor(pos core.ScreenPos) {
	p.cursor = &pos
}

// HideCursor hides the cursor for this frame.
func (p *Presenter) HideCursor() {
	p.cursor = nil
}

// SetCursorStyle sets the cursor shape for this frame.
func (p *Presenter) SetCursorStyle(style backend.CursorStyle) {
	p.cursorStyle = style
}

// StatusLine draws entries on the bottom row.
func (p *Presenter) StatusLine(entries ...statusline.Entry) {
	_, h := p.screen.Size()
	statusline.Render(p.screen, h-1, entries, p.palette.Focused)
}

// Prompt draws a labelled input line on the bottom row and puts the cursor
// at the end of the input.
func (p *Presenter) Prompt(label string, labelStyle core.Style, input string) {
	w, h := p.screen.Size()
	row := h - 1
	p.screen.FillRow(0, row, p.palette.Focused)
	col := p.screen.SetString(0, row, label, labelStyle)
	col = p.screen.SetString(col, row, " ", p.palette.Focused)
	col = p.screen.SetString(col, row, statusline.Fit(input, max(w-col-1, 0)), p.palette.Focused)
	p.SetCursor(core.ScreenPos{Row: row, Col: min(col, w-1)})
	p.SetCursorStyle(backend.CursorBar)
}

// ResultRows draws search-select results directly above the status line,
// first result on top. The selected row is drawn with the focused style.
// An empty list draws message instead.
func (p *Presenter) ResultRows(results []string, selected int, message string) {
	w, h := p.screen.Size()
	if len(results) == 0 {
		if message != "" {
			row := h - 2
			p.screen.FillRow(0, row, p.palette.Default)
			p.screen.SetString(0, row, statusline.Fit(message, w), p.palette.Default)
		}
		return
	}

	top := max(h-1-len(results), 0)
	for i, r := range results {
		row := top + i
		if row >= h-1 {
			break
		}
		style := p.palette.Default
		if i == selected {
			style = p.palette.Focused.Bold()
		}
		p.screen.FillRow(0, row, style)
		p.screen.SetString(0, row, statusline.Fit(r, w), style)
	}
}

// Splash draws lines centered on an otherwise empty screen.
func (p *Presenter) Splash(lines []string) {
	w, h := p.screen.Size()
	top := max((h-len(lines))/2, 0)
	for i, line := range lines {
		line = statusline.Fit(line, w)
		col := max((w-runewidth.StringWidth(line))/2, 0)
		p.screen.SetString(col, top+i, line, p.palette.Default)
	}
	p.HideCursor()
}

// Message draws the first line of text on the bottom row with the warning
// style, starting with a capital letter.
func (p *Presenter) Message(text string) {
	p.StatusLine(statusline.Entry{Text: " " + capitalize(firstLine(text)), Style: p.palette.Warning})
}

// Present flushes the frame to the backend.
func (p *Presenter) Present() {
	p.screen.Flush(p.backend)
	if p.cursor == nil {
		p.backend.HideCursor()
		return
	}
	p.backend.SetCursorStyle(p.cursorStyle)
	p.backend.ShowCursor(p.cursor.Col, p.cursor.Row)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
