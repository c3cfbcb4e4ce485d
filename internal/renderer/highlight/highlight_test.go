package highlight

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vantage/internal/renderer/core"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		path    string
		content string
		want    string
	}{
		{"main.go", "package main\n", "Go"},
		{"script.py", "def f():\n    pass\n", "Python"},
		{"notes.unknownext", "just words", PlainText().Name()},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.path, []byte(tt.content)).Name())
		})
	}
}

func TestLookup(t *testing.T) {
	d, ok := Lookup("go")
	require.True(t, ok)
	assert.Equal(t, "Go", d.Name())

	again, _ := Lookup("Go")
	assert.Same(t, d, again)

	_, ok = Lookup("no-such-language")
	assert.False(t, ok)

	assert.Contains(t, Names(), "Go")
}

func joined(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Value)
	}
	return sb.String()
}

func TestParseKeepsLineText(t *testing.T) {
	golang, _ := Lookup("go")
	state := NewParseState(golang)

	for _, line := range []string{"package main\n", "\n", "func main() {}\n", "// end"} {
		var tokens []Token
		tokens, state = state.Parse(line)
		assert.Equal(t, line, joined(tokens))
	}
}

func TestParseUsesContext(t *testing.T) {
	golang, _ := Lookup("go")

	tokens, _ := NewParseState(golang).Parse("still a comment */\n")
	assert.False(t, tokens[0].Type.InCategory(chroma.Comment))

	_, state := NewParseState(golang).Parse("/* opened here\n")
	tokens, _ = state.Parse("still a comment */\n")
	assert.True(t, tokens[0].Type.InCategory(chroma.Comment))
}

func TestParseStateIsAValue(t *testing.T) {
	golang, _ := Lookup("go")
	start := NewParseState(golang)
	_, a := start.Parse("x := 1\n")
	_, b := start.Parse("x := 1\n")

	assert.Equal(t, a, b)
	assert.Equal(t, NewParseState(golang), start)
}

func TestParseContextIsBounded(t *testing.T) {
	state := NewParseState(PlainText())
	for range ContextLines * 2 {
		_, state = state.Parse("line\n")
	}
	assert.Len(t, state.context, ContextLines)
}

func TestTheme(t *testing.T) {
	theme, err := LoadTheme("monokai")
	require.NoError(t, err)

	assert.Equal(t, core.ColorFromRGB(0x66, 0xd9, 0xef), theme.Style(chroma.Keyword).Foreground)
	assert.True(t, theme.Focused().Attributes.Has(core.AttrBold))
	assert.False(t, theme.LineHighlight().IsDefault())

	_, err = LoadTheme("no-such-theme")
	assert.ErrorIs(t, err, ErrUnknownTheme)
	assert.Contains(t, ThemeNames(), DefaultThemeName)
}

func TestHighlight(t *testing.T) {
	theme := DefaultTheme()
	tokens := []Token{{Type: chroma.Keyword, Value: "func"}, {Type: chroma.Text, Value: " "}}

	styled, state := theme.Highlight(tokens, HighlightState{})
	require.Len(t, styled, 2)
	assert.Equal(t, "func", styled[0].Text)
	assert.Equal(t, theme.Style(chroma.Keyword), styled[0].Style)
	assert.Equal(t, HighlightState{Theme: DefaultThemeName, Last: chroma.Text}, state)
}

func TestSymbols(t *testing.T) {
	py, ok := Lookup("python")
	require.True(t, ok)

	symbols := Symbols(py, "class Shape:\n    def area(self):\n        return 0\n")
	assert.Equal(t, []Symbol{
		{Name: "Shape", Line: 0, Offset: 6},
		{Name: "area", Line: 1, Offset: 8},
	}, symbols)
}
