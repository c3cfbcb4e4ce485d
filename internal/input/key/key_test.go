package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vantage/internal/renderer/backend"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", Rune('a')},
		{"A", Rune('A')},
		{"-", Rune('-')},
		{"space", Rune(' ')},
		{"ctrl-a", Ctrl('a')},
		{"ctrl--", Ctrl('-')},
		{"alt-enter", Event{Key: KeyEnter, Modifiers: ModAlt}},
		{"enter", Special(KeyEnter)},
		{"esc", Special(KeyEscape)},
		{"page_down", Special(KeyPageDown)},
		{"shift-tab", Event{Key: KeyTab, Modifiers: ModShift}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrEmptySpec)

	_, err = Parse("nonsense")
	assert.ErrorIs(t, err, ErrInvalidSpec)

	assert.Panics(t, func() { MustParse("ctrl-nonsense") })
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Rune('x'), "x"},
		{Event{Key: KeyRune, Rune: 'X', Modifiers: ModShift}, "X"},
		{Rune(' '), "space"},
		{Ctrl('r'), "ctrl-r"},
		{Special(KeyBackspace), "backspace"},
		{Event{Key: KeyTab, Modifiers: ModShift}, "shift-tab"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.event.String())
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, spec := range []string{"a", "space", "ctrl-w", "alt-x", "escape", "page_up", "right"} {
		assert.Equal(t, spec, MustParse(spec).String())
	}
}

func TestIsChar(t *testing.T) {
	assert.True(t, Rune('a').IsChar())
	assert.True(t, Rune(' ').IsChar())
	assert.False(t, Ctrl('a').IsChar())
	assert.False(t, Special(KeyEnter).IsChar())
	assert.False(t, Rune('\x01').IsChar())
}

func TestFromBackend(t *testing.T) {
	e, ok := FromBackend(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'w', Mod: backend.ModCtrl})
	require.True(t, ok)
	assert.Equal(t, Ctrl('w'), e)

	e, ok = FromBackend(backend.Event{Type: backend.EventKey, Key: backend.KeyPageDown})
	require.True(t, ok)
	assert.Equal(t, Special(KeyPageDown), e)

	_, ok = FromBackend(backend.Event{Type: backend.EventResize})
	assert.False(t, ok)
	_, ok = FromBackend(backend.Event{Type: backend.EventKey, Key: backend.KeyNone})
	assert.False(t, ok)
}
