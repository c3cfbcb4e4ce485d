package backend

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vantage/internal/renderer/core"
)

func TestNullBackendSizeIsClamped(t *testing.T) {
	b := NewNullBackend(4, 1)
	w, h := b.Size()
	assert.Equal(t, MinWidth, w)
	assert.Equal(t, MinHeight, h)
}

func TestNullBackendListenTimesOut(t *testing.T) {
	b := NewNullBackend(10, 10)
	start := time.Now()
	_, ok := b.Listen(10 * time.Millisecond)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestNullBackendEventsKeepOrder(t *testing.T) {
	b := NewNullBackend(10, 10)
	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'a'})
	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'b'})
	b.Resize(20, 5)

	for _, want := range []rune{'a', 'b'} {
		ev, ok := b.Listen(time.Second)
		require.True(t, ok)
		assert.Equal(t, want, ev.Rune)
	}
	ev, ok := b.Listen(time.Second)
	require.True(t, ok)
	assert.Equal(t, EventResize, ev.Type)
	assert.Equal(t, 20, ev.Width)
}

func TestScreenBufferSetString(t *testing.T) {
	sb := NewScreenBuffer(6, 2)
	end := sb.SetString(1, 0, "héllo world", core.DefaultStyle())

	assert.Equal(t, 6, end)
	assert.Equal(t, " héllo", sb.Row(0))
	assert.Equal(t, "      ", sb.Row(1))
}

func TestScreenBufferWideCell(t *testing.T) {
	sb := NewScreenBuffer(4, 1)
	end := sb.SetString(0, 0, "世a", core.DefaultStyle())

	assert.Equal(t, 3, end)
	assert.Equal(t, "", sb.Cell(1, 0).Content)
	assert.Equal(t, "世a ", sb.Row(0))
}

func TestScreenBufferFlushSendsOnlyChanges(t *testing.T) {
	sb := NewScreenBuffer(10, 10)
	nb := NewNullBackend(10, 10)

	sb.SetString(0, 0, "abc", core.DefaultStyle())
	sb.Flush(nb)
	assert.Equal(t, "b", nb.Cell(1, 0).Content)

	// A change made directly to the backend survives a flush that did not
	// touch that cell.
	nb.SetCell(5, 5, core.NewCell("z", core.DefaultStyle()))
	sb.SetString(0, 1, "x", core.DefaultStyle())
	sb.Flush(nb)

	assert.Equal(t, "z", nb.Cell(5, 5).Content)
	assert.Equal(t, "x", nb.Cell(0, 1).Content)
	assert.Equal(t, 2, nb.Shows())
}

func TestConvertKeyControlChords(t *testing.T) {
	k, r, mod := convertKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)
	assert.Equal(t, KeyRune, k)
	assert.Equal(t, 's', r)
	assert.True(t, mod.Has(ModCtrl))

	k, _, _ = convertKey(tcell.KeyEnter, 0, tcell.ModNone)
	assert.Equal(t, KeyEnter, k)

	k, _, _ = convertKey(tcell.KeyBackspace2, 0, tcell.ModNone)
	assert.Equal(t, KeyBackspace, k)
}

func TestConvertStyle(t *testing.T) {
	s := core.DefaultStyle().WithForeground(core.ColorFromRGB(1, 2, 3)).Bold()
	fg, bg, attrs := convertStyle(s).Decompose()

	assert.Equal(t, tcell.NewRGBColor(1, 2, 3), fg)
	assert.Equal(t, tcell.ColorDefault, bg)
	assert.NotZero(t, attrs&tcell.AttrBold)
}

func TestTerminalWithSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := newTerminalWithScreen(screen)
	require.NoError(t, term.Init())
	defer term.Shutdown()

	screen.SetSize(20, 5)
	term.SetCell(0, 0, core.NewCell("q", core.DefaultStyle()))
	term.Show()

	cells, w, _ := screen.GetContents()
	require.Equal(t, 20, w)
	assert.Equal(t, []rune("q"), cells[0].Runes)

	term.PostEvent(Event{Type: EventInterrupt, Data: "ping"})
	for {
		ev, ok := term.Listen(time.Second)
		require.True(t, ok)
		if ev.Type == EventInterrupt {
			assert.Equal(t, "ping", ev.Data)
			break
		}
	}
}
