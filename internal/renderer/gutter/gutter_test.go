package gutter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineNumbers(t *testing.T) {
	tests := []struct {
		lines  int
		line   int
		want   string
		gutter int
	}{
		{1, 0, " 1 ", 4},
		{9, 8, " 9 ", 4},
		{10, 0, "  1 ", 5},
		{204, 200, " 201 ", 6},
		{0, 0, " 1 ", 4},
	}

	for _, tt := range tests {
		n := New(tt.lines)
		assert.Equal(t, tt.want, n.Format(tt.line))
		assert.Equal(t, tt.gutter, n.GutterWidth())
		assert.Equal(t, tt.gutter, Width(tt.lines))
		assert.Len(t, n.Blank(), n.Width())
	}
}

func TestCountDigits(t *testing.T) {
	assert.Equal(t, 1, CountDigits(0))
	assert.Equal(t, 1, CountDigits(9))
	assert.Equal(t, 2, CountDigits(10))
	assert.Equal(t, 4, CountDigits(1000))
}

func TestPadLeft(t *testing.T) {
	assert.Equal(t, "  7", PadLeft("7", 3))
	assert.Equal(t, "1234", PadLeft("1234", 3))
}
