package highlight

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/dshills/vantage/internal/renderer/core"
)

// DefaultThemeName is used when no theme is configured.
const DefaultThemeName = "monokai"

// ErrUnknownTheme is returned when a theme name has no chroma style.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme resolves token types to cell styles.
type Theme struct {
	name  string
	style *chroma.Style
}

// LoadTheme returns the chroma style with the given name.
func LoadTheme(name string) (*Theme, error) {
	if !slices.Contains(styles.Names(), name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}
	return &Theme{name: name, style: styles.Get(name)}, nil
}

// DefaultTheme returns the default theme.
func DefaultTheme() *Theme {
	return &Theme{name: DefaultThemeName, style: styles.Get(DefaultThemeName)}
}

// ThemeNames lists the available themes.
func ThemeNames() []string {
	return styles.Names()
}

// Name returns the theme's name.
func (t *Theme) Name() string {
	return t.name
}

// Style returns the cell style for a token type. Backgrounds are left to
// the terminal.
func (t *Theme) Style(tt chroma.TokenType) core.Style {
	entry := t.style.Get(tt)
	style := core.DefaultStyle()
	if entry.Colour.IsSet() {
		style.Foreground = colour(entry.Colour)
	}
	if entry.Bold == chroma.Yes {
		style.Attributes |= core.AttrBold
	}
	if entry.Italic == chroma.Yes {
		style.Attributes |= core.AttrItalic
	}
	if entry.Underline == chroma.Yes {
		style.Attributes |= core.AttrUnderline
	}
	return style
}

// LineHighlight returns the background for the cursor's line.
func (t *Theme) LineHighlight() core.Color {
	if bg := t.style.Get(chroma.LineHighlight).Background; bg.IsSet() {
		return colour(bg)
	}
	if bg := t.style.Get(chroma.Background).Background; bg.IsSet() {
		return colour(bg).Lighten(0.1)
	}
	return core.ColorDefault
}

// Focused returns the style of jump tags.
func (t *Theme) Focused() core.Style {
	return t.Style(chroma.Keyword).Bold()
}

// Blurred returns the style of text around jump tags.
func (t *Theme) Blurred() core.Style {
	s := t.Style(chroma.Comment)
	s.Attributes &^= core.AttrItalic
	return s
}

func colour(c chroma.Colour) core.Color {
	return core.ColorFromRGB(c.Red(), c.Green(), c.Blue())
}

// Styled is a lexeme and the style it is drawn with.
type Styled struct {
	Style core.Style
	Text  string
}

// Highlight styles a parsed line and returns the state after it.
func (t *Theme) Highlight(tokens []Token, state HighlightState) ([]Styled, HighlightState) {
	out := make([]Styled, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, Styled{Style: t.Style(tok.Type), Text: tok.Value})
		state.Last = tok.Type
	}
	state.Theme = t.name
	return out, state
}
