package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/jump"
	"github.com/dshills/vantage/internal/renderer/backend"
	"github.com/dshills/vantage/internal/renderer/core"
	"github.com/dshills/vantage/internal/renderer/highlight"
	"github.com/dshills/vantage/internal/renderer/rendercache"
	"github.com/dshills/vantage/internal/renderer/viewport"
)

type frame struct {
	screen  *backend.ScreenBuffer
	cursor  core.ScreenPos
	visible bool
}

func renderFrame(t *testing.T, buf *buffer.Buffer, cache *rendercache.Cache, opts Options) frame {
	t.Helper()
	screen := backend.NewScreenBuffer(10, 10)
	if opts.TabWidth == 0 {
		opts.TabWidth = 2
	}
	pos, visible, err := NewBufferRenderer(buf, screen, highlight.DefaultTheme(), cache, opts).Render()
	require.NoError(t, err)
	return frame{screen: screen, cursor: pos, visible: visible}
}

type constantMapper struct{ text string }

func (m constantMapper) Map(string, buffer.Position) []jump.Mapped {
	return []jump.Mapped{{Kind: jump.Blurred, Text: m.text}}
}

func TestRenderWideTabsDoNotOverflow(t *testing.T) {
	for _, wrap := range []bool{true, false} {
		buf := buffer.FromString("\t\t\t")
		assert.NotPanics(t, func() {
			renderFrame(t, buf, rendercache.New(), Options{TabWidth: 100, LineWrapping: wrap})
		})
	}
}

func TestRenderTabStops(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"consecutive tabs", "\t\txy"},
		{"space between tabs", "\t \txy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := renderFrame(t, buffer.FromString(tt.text), rendercache.New(), Options{TabWidth: 2})
			assert.Equal(t, " 1      xy", f.screen.Row(0))
		})
	}
}

func TestRenderUsesMapper(t *testing.T) {
	f := renderFrame(t, buffer.FromString("original"), rendercache.New(), Options{Mapper: constantMapper{"mapped"}})
	assert.Equal(t, " 1  mapped", f.screen.Row(0))
}

func TestRenderJumpTags(t *testing.T) {
	buf := buffer.FromString("do a test")
	a := jump.NewAssigner(0)
	a.FirstPhase = false

	f := renderFrame(t, buf, rendercache.New(), Options{Mapper: a})
	assert.Equal(t, " 1  aa a a", f.screen.Row(0))

	pos, ok := a.Lookup("ab")
	require.True(t, ok)
	assert.Equal(t, buffer.Position{Line: 0, Offset: 5}, pos)
}

func TestRenderCursorOnEmptyBuffer(t *testing.T) {
	f := renderFrame(t, buffer.New(), rendercache.New(), Options{})
	assert.True(t, f.visible)
	assert.Equal(t, core.ScreenPos{Row: 0, Col: 4}, f.cursor)
}

func TestRenderCursorPosition(t *testing.T) {
	buf := buffer.FromString("abc\ndef")
	buf.MoveTo(buffer.Position{Line: 1, Offset: 2})

	f := renderFrame(t, buf, rendercache.New(), Options{})
	assert.True(t, f.visible)
	assert.Equal(t, core.ScreenPos{Row: 1, Col: 6}, f.cursor)
}

func TestRenderCursorAtEndOfLine(t *testing.T) {
	buf := buffer.FromString("abc\ndef")
	buf.MoveTo(buffer.Position{Line: 0, Offset: 3})

	f := renderFrame(t, buf, rendercache.New(), Options{})
	assert.Equal(t, core.ScreenPos{Row: 0, Col: 7}, f.cursor)
}

func TestRenderCursorScrolledOut(t *testing.T) {
	buf := buffer.FromString(strings.Repeat("x\n", 30))
	f := renderFrame(t, buf, rendercache.New(), Options{ScrollOffset: 10})
	assert.False(t, f.visible)
	assert.Equal(t, " 11  x", f.screen.Row(0)[:6])
}

func TestRenderLineWrapping(t *testing.T) {
	buf := buffer.FromString("nexedit")

	f := renderFrame(t, buf, rendercache.New(), Options{LineWrapping: true})
	assert.Equal(t, " 1  nexedi", f.screen.Row(0))
	assert.Equal(t, "    t     ", f.screen.Row(1))

	f = renderFrame(t, buf, rendercache.New(), Options{LineWrapping: false})
	assert.Equal(t, " 1  nexedi", f.screen.Row(0))
	assert.Equal(t, "          ", f.screen.Row(1))
}

func TestRenderReservesStatusRow(t *testing.T) {
	buf := buffer.FromString(strings.Repeat("x\n", 20))
	f := renderFrame(t, buf, rendercache.New(), Options{})
	assert.Equal(t, "  9  x", f.screen.Row(8)[:6])
	assert.Equal(t, "          ", f.screen.Row(9))
}

func TestRenderSelectionStyles(t *testing.T) {
	buf := buffer.FromString("abc\ndef")
	sel := buffer.NewRange(buffer.Position{Line: 0, Offset: 0}, buffer.Position{Line: 0, Offset: 2})
	palette := NewPalette(highlight.DefaultTheme())

	f := renderFrame(t, buf, rendercache.New(), Options{Highlights: []buffer.Range{sel}})
	assert.Equal(t, palette.SelectMode.Bold(), f.screen.Cell(4, 0).Style)
	assert.Equal(t, palette.SelectMode.Bold(), f.screen.Cell(5, 0).Style)
	assert.NotEqual(t, palette.SelectMode.Bold(), f.screen.Cell(6, 0).Style)

	buf.MoveTo(buffer.Position{Line: 1, Offset: 0})
	f = renderFrame(t, buf, rendercache.New(), Options{Highlights: []buffer.Range{sel}})
	assert.Equal(t, core.DefaultStyle().Reverse(), f.screen.Cell(4, 0).Style)
}

func TestRenderCursorLineBackground(t *testing.T) {
	buf := buffer.FromString("abc\ndef")
	palette := NewPalette(highlight.DefaultTheme())

	f := renderFrame(t, buf, rendercache.New(), Options{})
	assert.Equal(t, palette.Focused.Background, f.screen.Cell(4, 0).Style.Background)
	assert.Equal(t, palette.Focused, f.screen.Cell(9, 0).Style)
	assert.Equal(t, palette.Default, f.screen.Cell(9, 1).Style)
}

func TestRenderLineLengthGuides(t *testing.T) {
	buf := buffer.FromString("a\nb")
	palette := NewPalette(highlight.DefaultTheme())

	f := renderFrame(t, buf, rendercache.New(), Options{LineLengthGuides: []int{3}})
	assert.Equal(t, palette.Focused, f.screen.Cell(7, 1).Style)
	assert.Equal(t, palette.Default, f.screen.Cell(6, 1).Style)
}

func TestRenderWithoutSyntax(t *testing.T) {
	buf := buffer.FromString("abc")
	buf.SetSyntax(nil)

	screen := backend.NewScreenBuffer(10, 10)
	_, _, err := NewBufferRenderer(buf, screen, highlight.DefaultTheme(), rendercache.New(), Options{}).Render()
	assert.ErrorIs(t, err, ErrNoSyntax)
}

func TestRenderCachesStatesUpToScrollOffset(t *testing.T) {
	buf := buffer.FromString(strings.Repeat("line\n", 500))

	cache := rendercache.New()
	renderFrame(t, buf, cache, Options{ScrollOffset: 495})
	assert.Equal(t, []int{100, 200, 300, 400, 500}, cache.Keys())
}

func TestRenderReusesCachedStates(t *testing.T) {
	buf := buffer.FromString(strings.Repeat("line\n", 500))
	cache := rendercache.New()

	renderFrame(t, buf, cache, Options{ScrollOffset: 95})
	require.Equal(t, []int{100}, cache.Keys())
	first, ok := cache.Get(100)
	require.True(t, ok)

	renderFrame(t, buf, cache, Options{ScrollOffset: 495})
	assert.Equal(t, []int{100, 200, 300, 400, 500}, cache.Keys())
	second, ok := cache.Get(100)
	require.True(t, ok)
	assert.Equal(t, first, second)
	assert.Positive(t, cache.Stats().Hits)
}

func TestRenderAfterEditInvalidation(t *testing.T) {
	buf := buffer.FromString(strings.Repeat("line\n", 500))
	cache := rendercache.New()
	buf.SetChangeCallback(cache.InvalidateFrom)

	before := renderFrame(t, buf, cache, Options{ScrollOffset: 495}).screen.Content()
	kept, _ := cache.Get(100)

	require.NoError(t, buf.InsertAt(buffer.Position{Line: 250, Offset: 0}, "x"))
	assert.Equal(t, []int{100, 200}, cache.Keys())

	after := renderFrame(t, buf, cache, Options{ScrollOffset: 495}).screen.Content()
	assert.Equal(t, []int{100, 200, 300, 400, 500}, cache.Keys())
	assert.Equal(t, before, after)

	reused, _ := cache.Get(100)
	assert.Equal(t, kept, reused)
}

func TestRenderIgnoresStatesFromOtherTheme(t *testing.T) {
	buf := buffer.FromString(strings.Repeat("line\n", 300))
	cache := rendercache.New()
	renderFrame(t, buf, cache, Options{ScrollOffset: 250})

	theme, err := highlight.LoadTheme("github")
	require.NoError(t, err)
	screen := backend.NewScreenBuffer(10, 10)
	_, _, err = NewBufferRenderer(buf, screen, theme, cache, Options{ScrollOffset: 250, TabWidth: 2}).Render()
	require.NoError(t, err)

	e, ok := cache.Get(200)
	require.True(t, ok)
	assert.Equal(t, "github", e.Highlight.Theme)
}

func TestScrolledCursorIsDrawn(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"wide characters", "世界世界世"},
		{"tabs", "\t\t\t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := buffer.FromString(strings.Repeat(tt.line+"\n", 8) + "x")
			buf.MoveTo(buffer.Position{Line: 8})

			vp := viewport.New(10, 10)
			vp.SetLayout(4, true)
			vp.ScrollIntoView(8, buf)

			f := renderFrame(t, buf, rendercache.New(), Options{TabWidth: 4, LineWrapping: true, ScrollOffset: vp.Offset()})
			assert.True(t, f.visible)
			assert.Equal(t, 8, f.cursor.Row)
		})
	}
}
