package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vantage/internal/app"
	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/input/key"
	"github.com/dshills/vantage/internal/input/mode"
)

func TestMotions(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		cursor  buffer.Position
		command string
		want    buffer.Position
	}{
		{"first word", "   foo", buffer.Position{}, "cursor::move_to_first_word_of_line", buffer.Position{Offset: 3}},
		{"end of line", "foo", buffer.Position{}, "cursor::move_to_end_of_line", buffer.Position{Offset: 3}},
		{"last line", "a\nb\nc", buffer.Position{}, "cursor::move_to_last_line", buffer.Position{Line: 2}},
		{"next token", "foo  bar", buffer.Position{}, "cursor::move_to_start_of_next_token", buffer.Position{Offset: 5}},
		{"next token across lines", "foo\n  bar", buffer.Position{Offset: 1}, "cursor::move_to_start_of_next_token", buffer.Position{Line: 1, Offset: 2}},
		{"no next token", "foo", buffer.Position{Offset: 1}, "cursor::move_to_start_of_next_token", buffer.Position{Offset: 1}},
		{"previous token", "foo bar", buffer.Position{Offset: 6}, "cursor::move_to_start_of_previous_token", buffer.Position{Offset: 4}},
		{"previous token over whitespace", "foo bar", buffer.Position{Offset: 4}, "cursor::move_to_start_of_previous_token", buffer.Position{}},
		{"end of token", "foo bar", buffer.Position{Offset: 1}, "cursor::move_to_end_of_current_token", buffer.Position{Offset: 3}},
		{"end of last token", "foo bar", buffer.Position{Offset: 5}, "cursor::move_to_end_of_current_token", buffer.Position{Offset: 7}},
		{"end of only token", "nexedit", buffer.Position{}, "cursor::move_to_end_of_current_token", buffer.Position{Offset: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, buf := newTestApp(t, tt.text)
			require.True(t, buf.MoveTo(tt.cursor))

			run(t, a, tt.command)
			assert.Equal(t, tt.want, buf.Cursor())
		})
	}
}

func TestMoveToFirstWordOfBlankLine(t *testing.T) {
	a, _ := newTestApp(t, "  ")
	assert.ErrorIs(t, a.RunCommand("cursor::move_to_first_word_of_line"), ErrEmptyLine)
}

func TestMotionScrollsCursorIntoView(t *testing.T) {
	text := ""
	for range 50 {
		text += "x\n"
	}
	a, buf := newTestApp(t, text)

	run(t, a, "cursor::move_to_last_line")
	assert.Equal(t, 50, buf.Cursor().Line)
	assert.Equal(t, 42, a.View(buf).Viewport.Offset())

	run(t, a, "cursor::move_to_first_line")
	assert.Equal(t, 0, a.View(buf).Viewport.Offset())
}

func TestInsertWithNewline(t *testing.T) {
	a, buf := newTestApp(t, "  foo\nbar")
	buf.MoveTo(buffer.Position{Offset: 1})

	press(t, a, key.Rune('o'))
	assert.Equal(t, mode.Insert{}, a.Mode())
	assert.Equal(t, "  foo\n  \nbar", buf.Data())
	assert.Equal(t, buffer.Position{Line: 1, Offset: 2}, buf.Cursor())

	typeText(t, a, "x")
	press(t, a, escape)
	run(t, a, "buffer::undo")
	assert.Equal(t, "  foo\nbar", buf.Data())
}

func TestInsertWithNewlineAbove(t *testing.T) {
	a, buf := newTestApp(t, "a\n  foo")
	buf.MoveTo(buffer.Position{Line: 1, Offset: 3})

	press(t, a, key.Rune('O'))
	assert.Equal(t, "a\n  \n  foo", buf.Data())
	assert.Equal(t, buffer.Position{Line: 1, Offset: 2}, buf.Cursor())
}

func TestInsertAtEndAndFirstWord(t *testing.T) {
	a, buf := newTestApp(t, "  foo")

	press(t, a, key.Rune('A'))
	assert.Equal(t, buffer.Position{Offset: 5}, buf.Cursor())
	assert.Equal(t, mode.Insert{}, a.Mode())
	press(t, a, escape, key.Rune('I'))
	assert.Equal(t, buffer.Position{Offset: 2}, buf.Cursor())
	assert.Equal(t, mode.Insert{}, a.Mode())
}

func TestAppendToCurrentToken(t *testing.T) {
	a, buf := newTestApp(t, "foo bar")
	press(t, a, key.Rune('E'))
	typeText(t, a, "d")
	assert.Equal(t, "food bar", buf.Data())
}

func TestSearch(t *testing.T) {
	a, buf := newTestApp(t, "foo bar\nfoo baz")
	buf.MoveTo(buffer.Position{Offset: 2})

	press(t, a, key.Rune('/'))
	typeText(t, a, "fox")
	press(t, a, backspaceKey)
	typeText(t, a, "o")
	press(t, a, enter)

	m, ok := a.Mode().(*mode.Search)
	require.True(t, ok)
	assert.False(t, m.InsertMode)
	assert.Equal(t, "foo", a.SearchQuery())
	assert.Equal(t, []buffer.Range{
		{Start: buffer.Position{}, End: buffer.Position{Offset: 3}},
		{Start: buffer.Position{Line: 1}, End: buffer.Position{Line: 1, Offset: 3}},
	}, m.Results)
	assert.Equal(t, buffer.Position{Line: 1}, buf.Cursor())

	press(t, a, key.Rune('n'))
	assert.Equal(t, buffer.Position{}, buf.Cursor())
	press(t, a, key.Rune('N'))
	assert.Equal(t, buffer.Position{Line: 1}, buf.Cursor())

	press(t, a, enter)
	assert.Equal(t, mode.Normal{}, a.Mode())
	press(t, a, key.Rune('n'))
	assert.Equal(t, buffer.Position{}, buf.Cursor())
	press(t, a, key.Rune('N'))
	assert.Equal(t, buffer.Position{Line: 1}, buf.Cursor())
}

func TestSearchWithoutResults(t *testing.T) {
	a, _ := newTestApp(t, "abc")
	press(t, a, key.Rune('/'))
	typeText(t, a, "zzz")
	assert.ErrorIs(t, a.HandleKey(enter), app.ErrNoSearchResults)

	press(t, a, key.Rune('i'))
	m := a.Mode().(*mode.Search)
	assert.True(t, m.InsertMode)
	assert.Empty(t, m.Input)
}

func TestNextResultWithoutQuery(t *testing.T) {
	a, _ := newTestApp(t, "abc")
	assert.ErrorIs(t, a.RunCommand("search::move_to_next_result"), app.ErrSearchQueryMissing)

	a.SetSearchQuery("zzz")
	assert.ErrorIs(t, a.RunCommand("search::move_to_previous_result"), app.ErrNoSearchResults)
}

func TestSearchEmptyQuery(t *testing.T) {
	a, _ := newTestApp(t, "abc")
	press(t, a, key.Rune('/'))
	assert.ErrorIs(t, a.HandleKey(enter), app.ErrSearchQueryMissing)
}
