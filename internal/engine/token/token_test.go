package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/dshills/vantage/internal/engine/buffer"
)

func TestLex(t *testing.T) {
	got := Lex("foo_bar(x, 42)\n  y")
	want := []Lexeme{
		{Word, "foo_bar"},
		{Other, "("},
		{Word, "x"},
		{Other, ","},
		{Whitespace, " "},
		{Word, "42"},
		{Other, ")"},
		{Whitespace, "\n  "},
		{Word, "y"},
	}
	assert.Equal(t, want, got)
	assert.Empty(t, Lex(""))
}

func TestLexRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.String().Draw(t, "text")
		var sb strings.Builder
		for _, lex := range Lex(text) {
			sb.WriteString(lex.Text)
		}
		if sb.String() != text {
			t.Fatalf("runs of %q join to %q", text, sb.String())
		}
	})
}

func TestAdjacentPosition(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     buffer.Position
		whitespace bool
		dir        Direction
		want       buffer.Position
		found      bool
	}{
		{"forward to whitespace", "nexedit editor", buffer.Position{}, true, Forward, buffer.Position{Line: 0, Offset: 7}, true},
		{"forward past whitespace", "nexedit editor", buffer.Position{}, false, Forward, buffer.Position{Line: 0, Offset: 8}, true},
		{"forward at last word", "nexedit", buffer.Position{}, false, Forward, buffer.Position{}, false},
		{"forward across lines", "foo\n  bar", buffer.Position{}, false, Forward, buffer.Position{Line: 1, Offset: 2}, true},
		{"forward from middle", "foo.bar", buffer.Position{Line: 0, Offset: 1}, false, Forward, buffer.Position{Line: 0, Offset: 3}, true},
		{"backward within word", "foo bar", buffer.Position{Line: 0, Offset: 5}, false, Backward, buffer.Position{Line: 0, Offset: 4}, true},
		{"backward over whitespace", "foo bar", buffer.Position{Line: 0, Offset: 4}, false, Backward, buffer.Position{}, true},
		{"backward across lines", "foo\nbar", buffer.Position{Line: 1, Offset: 0}, false, Backward, buffer.Position{}, true},
		{"backward past end", "foo", buffer.Position{Line: 3, Offset: 0}, false, Backward, buffer.Position{}, false},
		{"wide graphemes", "世界 x", buffer.Position{}, false, Forward, buffer.Position{Line: 0, Offset: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AdjacentPosition(tt.text, tt.cursor, tt.whitespace, tt.dir)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForwardMotionIsStrictlyAfterCursor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,5}`), 1, 8).Draw(t, "words")
		text := strings.Join(words, " ")
		b := buffer.FromString(text)
		offset := rapid.IntRange(0, b.LineLength(0)).Draw(t, "offset")
		cursor := buffer.Position{Offset: offset}

		if p, ok := AdjacentPosition(text, cursor, false, Forward); ok && !p.After(cursor) {
			t.Fatalf("forward from %v returned %v", cursor, p)
		}
		if p, ok := AdjacentPosition(text, cursor, false, Backward); ok && p.After(cursor) {
			t.Fatalf("backward from %v returned %v", cursor, p)
		}
	})
}
