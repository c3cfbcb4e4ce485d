package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vantage/internal/app"
	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/input/key"
	"github.com/dshills/vantage/internal/input/keymap"
	"github.com/dshills/vantage/internal/input/mode"
	"github.com/dshills/vantage/internal/renderer/backend"
)

func newTestApp(t *testing.T, text string) (*app.Application, *buffer.Buffer) {
	t.Helper()
	a, err := app.New(app.Options{
		Backend:  backend.NewNullBackend(40, 10),
		Commands: Registry(),
		Root:     t.TempDir(),
		Logger:   app.NullLogger,
	})
	require.NoError(t, err)
	t.Cleanup(a.Close)

	buf := buffer.FromString(text)
	a.Workspace().Add(buf)
	return a, buf
}

func run(t *testing.T, a *app.Application, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, a.RunCommand(name), name)
	}
}

func press(t *testing.T, a *app.Application, keys ...key.Event) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, a.HandleKey(k), k.String())
	}
}

func typeText(t *testing.T, a *app.Application, text string) {
	t.Helper()
	for _, r := range text {
		press(t, a, key.Rune(r))
	}
}

var (
	escape       = key.Special(key.KeyEscape)
	enter        = key.Special(key.KeyEnter)
	backspaceKey = key.Special(key.KeyBackspace)
)

func TestRegistryCoversDefaultKeymap(t *testing.T) {
	km, err := keymap.Default()
	require.NoError(t, err)

	registry := Registry()
	for _, name := range km.CommandNames() {
		assert.Contains(t, registry, name)
	}
}

func TestCommandModeListsRegistry(t *testing.T) {
	a, _ := newTestApp(t, "")
	run(t, a, "application::switch_to_command_mode")

	m, ok := a.Mode().(*mode.Command)
	require.True(t, ok)
	_, items := m.Candidates()
	assert.Len(t, items, len(Registry()))
}

func TestInsertModeUndoesAsOneStep(t *testing.T) {
	a, buf := newTestApp(t, "ab")

	press(t, a, key.Rune('i'))
	assert.Equal(t, mode.Insert{}, a.Mode())
	typeText(t, a, "xy")
	press(t, a, escape)

	assert.Equal(t, "xyab", buf.Data())
	assert.Equal(t, buffer.Position{Line: 0, Offset: 2}, buf.Cursor())
	assert.Equal(t, mode.Normal{}, a.Mode())

	run(t, a, "buffer::undo")
	assert.Equal(t, "ab", buf.Data())
}

func TestExit(t *testing.T) {
	a, _ := newTestApp(t, "")
	assert.ErrorIs(t, a.RunCommand("application::exit"), app.ErrQuit)

	press(t, a, key.Rune('Q'))
	assert.Equal(t, mode.Exit{}, a.Mode())
}

func TestSwitchToModesNeedABuffer(t *testing.T) {
	a, err := app.New(app.Options{
		Backend:  backend.NewNullBackend(40, 10),
		Commands: Registry(),
		Root:     t.TempDir(),
		Logger:   app.NullLogger,
	})
	require.NoError(t, err)
	t.Cleanup(a.Close)

	for _, name := range []string{
		"application::switch_to_insert_mode",
		"application::switch_to_select_mode",
		"application::switch_to_search_mode",
		"application::switch_to_jump_mode",
	} {
		assert.ErrorIs(t, a.RunCommand(name), app.ErrBufferMissing, name)
	}
	assert.Equal(t, mode.Normal{}, a.Mode())
}

func TestSearchModeStartsWithPreviousQuery(t *testing.T) {
	a, _ := newTestApp(t, "")
	a.SetSearchQuery("needle")

	run(t, a, "application::switch_to_search_mode")
	m, ok := a.Mode().(*mode.Search)
	require.True(t, ok)
	assert.Equal(t, "needle", m.Input)
	assert.True(t, m.InsertMode)
}

func TestDisplayLastError(t *testing.T) {
	a, _ := newTestApp(t, "   ")
	assert.ErrorIs(t, a.RunCommand("application::display_last_error"), ErrNoErrorToDisplay)

	assert.ErrorIs(t, a.HandleKey(key.Rune('m')), ErrEmptyLine)
	a.Render()
	assert.Contains(t, a.Presenter().Screen().Row(9), " No characters on the current line")
	press(t, a, key.Rune('?'))

	assert.Equal(t, 2, a.Workspace().Len())
	current, err := a.CurrentBuffer()
	require.NoError(t, err)
	assert.Equal(t, "no characters on the current line", current.Data())
}

func TestDisplayDefaultKeymap(t *testing.T) {
	a, _ := newTestApp(t, "")
	run(t, a, "application::display_default_keymap")

	current, err := a.CurrentBuffer()
	require.NoError(t, err)
	assert.Equal(t, keymap.DefaultData(), current.Data())
	assert.Equal(t, "YAML", current.Syntax().Name())
}

func TestWorkspaceCommands(t *testing.T) {
	a, first := newTestApp(t, "first")

	run(t, a, "workspace::new_buffer")
	second, err := a.CurrentBuffer()
	require.NoError(t, err)
	assert.NotEqual(t, first.ID(), second.ID())

	run(t, a, "workspace::previous_buffer")
	current, _ := a.CurrentBuffer()
	assert.Equal(t, first.ID(), current.ID())

	run(t, a, "workspace::next_buffer")
	current, _ = a.CurrentBuffer()
	assert.Equal(t, second.ID(), current.ID())
}

func TestViewCommands(t *testing.T) {
	text := ""
	for range 30 {
		text += "line\n"
	}
	a, buf := newTestApp(t, text)

	run(t, a, "view::scroll_down", "view::scroll_down")
	assert.Equal(t, 2, a.View(buf).Viewport.Offset())
	run(t, a, "view::scroll_up")
	assert.Equal(t, 1, a.View(buf).Viewport.Offset())
	assert.Equal(t, 0, buf.Cursor().Line)

	run(t, a, "view::page_down")
	assert.Equal(t, 9, buf.Cursor().Line)
	run(t, a, "view::page_up")
	assert.Equal(t, 0, buf.Cursor().Line)
}
