package statusline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/vantage/internal/renderer/backend"
	"github.com/dshills/vantage/internal/renderer/core"
)

func TestModeLabel(t *testing.T) {
	assert.Equal(t, " NORMAL ", ModeLabel("normal"))
	assert.Equal(t, " SELECT LINE ", ModeLabel("select line"))
}

func TestRender(t *testing.T) {
	sb := backend.NewScreenBuffer(20, 2)
	Render(sb, 1, []Entry{
		{Text: " NORMAL ", Style: core.DefaultStyle().Reverse()},
		{Text: " a.go", Style: core.DefaultStyle()},
		{Text: "1:1 ", Style: core.DefaultStyle()},
	}, core.DefaultStyle())

	assert.Equal(t, " NORMAL  a.go   1:1 ", sb.Row(1))
	assert.True(t, sb.Cell(1, 1).Style.Attributes.Has(core.AttrReverse))
}

func TestRenderSingleEntry(t *testing.T) {
	sb := backend.NewScreenBuffer(10, 1)
	Render(sb, 0, []Entry{{Text: "error"}}, core.DefaultStyle())
	assert.Equal(t, "error     ", sb.Row(0))
}

func TestRenderTruncates(t *testing.T) {
	sb := backend.NewScreenBuffer(10, 1)
	Render(sb, 0, []Entry{{Text: "a very long message"}}, core.DefaultStyle())
	assert.Equal(t, "a very lo…", sb.Row(0))
}

func TestFit(t *testing.T) {
	assert.Equal(t, "abc", Fit("abc", 3))
	assert.Equal(t, "ab…", Fit("abcd", 3))
	assert.Equal(t, "", Fit("abcd", 0))
}
