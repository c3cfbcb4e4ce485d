package renderer

import (
	"errors"
	"slices"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/jump"
	"github.com/dshills/vantage/internal/renderer/backend"
	"github.com/dshills/vantage/internal/renderer/core"
	"github.com/dshills/vantage/internal/renderer/gutter"
	"github.com/dshills/vantage/internal/renderer/highlight"
	"github.com/dshills/vantage/internal/renderer/layout"
	"github.com/dshills/vantage/internal/renderer/rendercache"
)

// ErrNoSyntax is returned when the buffer has no syntax definition.
var ErrNoSyntax = errors.New("buffer has no syntax definition")

// Mapper replaces highlighted lexemes with tagged pieces. *jump.Assigner
// implements it.
type Mapper interface {
	Map(lexeme string, pos buffer.Position) []jump.Mapped
}

// Options control a single buffer render.
type Options struct {
	// Highlights are drawn as selections.
	Highlights []buffer.Range
	// ScrollOffset is the first visible line.
	ScrollOffset int
	TabWidth     int
	LineWrapping bool
	// LineLengthGuides are content columns drawn with the focused
	// background.
	LineLengthGuides []int
	// Mapper, when set, replaces syntax highlighting.
	Mapper Mapper
}

// BufferRenderer draws one frame of a buffer. It is single use: create one
// per frame.
type BufferRenderer struct {
	buf     *buffer.Buffer
	screen  *backend.ScreenBuffer
	theme   *highlight.Theme
	palette Palette
	cache   *rendercache.Cache
	opts    Options

	tabs          layout.TabExpander
	numbers       gutter.LineNumbers
	gutterWidth   int
	width, height int
	cursorLine    int

	bufferPos buffer.Position
	screenRow int
	screenCol int

	cursor        core.ScreenPos
	cursorVisible bool
}

// NewBufferRenderer prepares a render of buf into screen.
func NewBufferRenderer(buf *buffer.Buffer, screen *backend.ScreenBuffer, theme *highlight.Theme, cache *rendercache.Cache, opts Options) *BufferRenderer {
	numbers := gutter.New(buf.LineCount())
	width, height := screen.Size()
	return &BufferRenderer{
		buf:         buf,
		screen:      screen,
		theme:       theme,
		palette:     NewPalette(theme),
		cache:       cache,
		opts:        opts,
		tabs:        layout.NewTabExpander(opts.TabWidth),
		numbers:     numbers,
		gutterWidth: numbers.GutterWidth(),
		width:       width,
		height:      height,
		cursorLine:  buf.Cursor().Line,
	}
}

// Render draws every visible line and returns the cursor's screen
// position. The boolean is false when the cursor is not on screen.
func (r *BufferRenderer) Render() (core.ScreenPos, bool, error) {
	syntax := r.buf.Syntax()
	if syntax == nil {
		return core.ScreenPos{}, false, ErrNoSyntax
	}

	parse := highlight.NewParseState(syntax)
	hl := highlight.HighlightState{Theme: r.theme.Name()}
	start := 0
	if e, ok := r.cache.Lookup(r.opts.ScrollOffset); ok && r.reusable(e, syntax) {
		parse, hl, start = e.Parse, e.Highlight, e.Line
	}

	r.bufferPos = buffer.Position{Line: start}
	r.printLineNumber()

	count := r.buf.LineCount()
lines:
	for n := start; n < count; n++ {
		line, _ := r.buf.Line(n)
		if n < count-1 {
			line += "\n"
		}

		if rendercache.ShouldCapture(n) {
			r.cache.Insert(n, parse, hl)
		}

		var tokens []highlight.Token
		tokens, parse = parse.Parse(line)
		var styled []highlight.Styled
		styled, hl = r.theme.Highlight(tokens, hl)

		for _, lexeme := range styled {
			if r.before() {
				continue
			}
			if r.after() {
				break lines
			}
			if r.opts.Mapper == nil {
				r.printLexeme(lexeme.Text, lexeme.Style)
				continue
			}
			for _, m := range r.opts.Mapper.Map(lexeme.Text, r.bufferPos) {
				style := r.theme.Blurred()
				if m.Kind == jump.Focused {
					style = r.theme.Focused()
				}
				r.printLexeme(m.Text, style)
			}
		}

		if strings.HasSuffix(line, "\n") {
			r.advanceToNextLine()
		}
	}

	r.setCursor()
	if r.screenRow < r.height-1 {
		r.printRestOfLine()
	}
	return r.cursor, r.cursorVisible, nil
}

// reusable reports whether a snapshot was taken with the current syntax
// and theme.
func (r *BufferRenderer) reusable(e rendercache.Entry, syntax *highlight.Definition) bool {
	return e.Parse.Definition() == syntax && e.Highlight.Theme == r.theme.Name()
}

func (r *BufferRenderer) before() bool {
	return r.bufferPos.Line < r.opts.ScrollOffset
}

func (r *BufferRenderer) after() bool {
	return r.screenRow >= r.height-1
}

func (r *BufferRenderer) inside() bool {
	return !r.before() && !r.after()
}

func (r *BufferRenderer) onCursorLine() bool {
	return r.bufferPos.Line == r.cursorLine
}

func (r *BufferRenderer) setCursor() {
	if r.inside() && r.buf.Cursor() == r.bufferPos {
		r.cursor = core.ScreenPos{Row: r.screenRow, Col: r.screenCol}
		r.cursorVisible = true
	}
}

func (r *BufferRenderer) printLineNumber() {
	if !r.inside() {
		return
	}
	numberStyle := r.palette.Focused
	gapStyle := r.palette.Default
	if r.onCursorLine() {
		numberStyle = numberStyle.Bold()
		gapStyle = r.palette.Focused
	}
	col := r.screen.SetString(0, r.screenRow, r.numbers.Format(r.bufferPos.Line), numberStyle)
	r.screen.SetString(col, r.screenRow, " ", gapStyle)
	r.screenCol = r.gutterWidth
}

// printBlankGutter starts a wrapped continuation row.
func (r *BufferRenderer) printBlankGutter() {
	r.screen.SetString(0, r.screenRow, strings.Repeat(" ", r.gutterWidth), r.palette.Default)
	r.screenCol = r.gutterWidth
}

func (r *BufferRenderer) advanceToNextLine() {
	if r.inside() {
		r.setCursor()
		r.printRestOfLine()
		r.screenRow++
	}
	r.bufferPos = buffer.Position{Line: r.bufferPos.Line + 1}
	r.printLineNumber()
}

// printRestOfLine pads the current row to the right edge, marking line
// length guides.
func (r *BufferRenderer) printRestOfLine() {
	onCursor := r.onCursorLine()
	for col := r.screenCol; col < r.width; col++ {
		style := r.palette.Default
		if onCursor || slices.Contains(r.opts.LineLengthGuides, col-r.gutterWidth) {
			style = r.palette.Focused
		}
		r.screen.SetCell(col, r.screenRow, core.Cell{Content: " ", Width: 1, Style: style})
	}
}

func (r *BufferRenderer) printLexeme(text string, style core.Style) {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		if cluster == "\n" {
			continue
		}

		if r.opts.LineWrapping && r.screenCol >= r.width {
			r.screenRow++
			if r.after() {
				return
			}
			r.printBlankGutter()
		}

		r.setCursor()
		cellStyle := r.charStyle(style)

		if cluster == "\t" {
			stop := min(r.tabs.NextTabStop(r.screenCol-r.gutterWidth)+r.gutterWidth, r.width)
			for ; r.screenCol < stop; r.screenCol++ {
				r.screen.SetCell(r.screenCol, r.screenRow, core.Cell{Content: " ", Width: 1, Style: cellStyle})
			}
		} else {
			cell := core.NewCell(cluster, cellStyle)
			r.screen.SetCell(r.screenCol, r.screenRow, cell)
			r.screenCol += cell.Width
		}

		r.bufferPos.Offset++
		r.setCursor()
	}
}

// charStyle picks the style for the grapheme at bufferPos. A selection
// under the cursor is drawn bold, any other selection reversed, and
// everything on the cursor line gets the focused background.
func (r *BufferRenderer) charStyle(token core.Style) core.Style {
	for _, h := range r.opts.Highlights {
		if !h.Includes(r.bufferPos) {
			continue
		}
		if h.Includes(r.buf.Cursor()) {
			return r.palette.SelectMode.Bold()
		}
		return r.palette.Default.Reverse()
	}
	if r.onCursorLine() {
		return token.WithBackground(r.palette.Focused.Background)
	}
	return token
}
