package renderer

import (
	"github.com/dshills/vantage/internal/renderer/core"
	"github.com/dshills/vantage/internal/renderer/highlight"
)

var (
	white  = core.ColorFromIndex(15)
	green  = core.ColorFromIndex(2)
	yellow = core.ColorFromIndex(3)
	pink   = core.ColorFromIndex(13)
	purple = core.ColorFromIndex(5)
	blue   = core.ColorFromIndex(4)
)

// Palette holds the fixed styles used outside syntax highlighting.
type Palette struct {
	Default    core.Style
	Focused    core.Style
	Inverted   core.Style
	Insert     core.Style
	Warning    core.Style
	PathMode   core.Style
	SearchMode core.Style
	SelectMode core.Style
}

// NewPalette derives a palette from a theme. Focused uses the theme's line
// highlight as its background.
func NewPalette(theme *highlight.Theme) Palette {
	def := core.DefaultStyle()
	return Palette{
		Default:    def,
		Focused:    def.WithBackground(theme.LineHighlight()),
		Inverted:   def.Reverse(),
		Insert:     def.WithForeground(white).WithBackground(green),
		Warning:    def.WithForeground(white).WithBackground(yellow),
		PathMode:   def.WithForeground(white).WithBackground(pink),
		SearchMode: def.WithForeground(white).WithBackground(purple),
		SelectMode: def.WithForeground(white).WithBackground(blue),
	}
}
