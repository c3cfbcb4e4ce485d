// Package core provides the value types shared by the renderer and its
// terminal backends: colours, styles, cells and screen coordinates.
package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Attribute represents text attributes (bold, reverse, etc.).
type Attribute uint8

// Text attribute flags.
const (
	AttrNone    Attribute = 0
	AttrBold    Attribute = 1 << iota
	AttrDim               // Faint text
	AttrItalic            // Italic text
	AttrUnderline         // Underlined text
	AttrReverse           // Reverse video (swap fg/bg)
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Color represents a colour value. The zero value is not the terminal
// default; use ColorDefault for that.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	Indexed bool
	// Default indicates the terminal's own colour.
	Default bool
}

// ColorDefault represents the terminal's default colour.
var ColorDefault = Color{Default: true}

// ColorFromRGB creates a true colour from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette colour.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex parses "#rrggbb" or "#rgb".
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	return ColorFromRGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// IsDefault returns true if this is the terminal default colour.
func (c Color) IsDefault() bool {
	return c.Default
}

// String returns a string representation of the colour.
func (c Color) String() string {
	switch {
	case c.Default:
		return "default"
	case c.Indexed:
		return fmt.Sprintf("idx(%d)", c.R)
	default:
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
}

// Lighten returns a lighter version of the colour. Default and indexed
// colours are returned unchanged.
func (c Color) Lighten(amount float64) Color {
	if c.Indexed || c.Default {
		return c
	}
	lift := func(v uint8) uint8 {
		return uint8(min(255, float64(v)+float64(255-v)*amount))
	}
	return ColorFromRGB(lift(c.R), lift(c.G), lift(c.B))
}

// Style represents the visual style of a cell.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{
		Foreground: ColorDefault,
		Background: ColorDefault,
	}
}

// WithForeground returns a copy of the style with the given foreground.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a copy of the style with the given background.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Bold returns a copy of the style with the bold attribute added.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Reverse returns a copy of the style with reverse video added.
func (s Style) Reverse() Style {
	s.Attributes |= AttrReverse
	return s
}

// Cell is a single terminal cell. Content holds one grapheme cluster so
// combining sequences survive the trip to the terminal.
type Cell struct {
	Content string
	Width   int
	Style   Style
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{Content: " ", Width: 1, Style: DefaultStyle()}
}

// NewCell creates a cell holding the given grapheme.
func NewCell(content string, style Style) Cell {
	return Cell{Content: content, Width: GraphemeWidth(content), Style: style}
}

// GraphemeWidth returns the number of columns a grapheme cluster occupies.
// Zero-width and control clusters occupy one column.
func GraphemeWidth(g string) int {
	w := runewidth.StringWidth(g)
	if w < 1 {
		return 1
	}
	return w
}

// ScreenPos is a zero-based row/column on the terminal surface.
type ScreenPos struct {
	Row int
	Col int
}

// ScreenRect is a rectangular region; Bottom and Right are exclusive.
type ScreenRect struct {
	Top, Left, Bottom, Right int
}

// Contains reports whether the position lies inside the rectangle.
func (r ScreenRect) Contains(pos ScreenPos) bool {
	return pos.Row >= r.Top && pos.Row < r.Bottom && pos.Col >= r.Left && pos.Col < r.Right
}
