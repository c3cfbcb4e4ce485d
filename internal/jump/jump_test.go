package jump

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/vantage/internal/engine/buffer"
)

func TestSingleCharacterGenerator(t *testing.T) {
	var g SingleCharacterGenerator
	var tags []string
	for {
		tag, ok := g.Next()
		if !ok {
			break
		}
		tags = append(tags, tag)
	}
	require.Len(t, tags, 26)
	assert.Equal(t, "a", tags[0])
	assert.Equal(t, "z", tags[25])

	g.Reset()
	tag, ok := g.Next()
	assert.True(t, ok)
	assert.Equal(t, "a", tag)
}

func TestTagGenerator(t *testing.T) {
	var g TagGenerator
	first, _ := g.Next()
	second, _ := g.Next()
	assert.Equal(t, "aa", first)
	assert.Equal(t, "ab", second)

	for range 24 {
		g.Next()
	}
	carried, _ := g.Next()
	assert.Equal(t, "ba", carried)

	for range tagIndexLimit - 27 {
		g.Next()
	}
	last, ok := g.Next()
	assert.True(t, ok)
	assert.Equal(t, "zz", last)

	_, ok = g.Next()
	assert.False(t, ok)
}

func TestTagsAreUniqueUntilReset(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var g TagGenerator
		var s SingleCharacterGenerator
		n := rapid.IntRange(0, 800).Draw(t, "n")
		seen := map[string]bool{}
		for range n {
			for _, next := range []func() (string, bool){g.Next, s.Next} {
				tag, ok := next()
				if !ok {
					continue
				}
				if seen[tag] {
					t.Fatalf("tag %q repeated", tag)
				}
				seen[tag] = true
			}
		}
	})
}

func TestMapFirstPhase(t *testing.T) {
	a := NewAssigner(0)

	assert.Equal(t,
		[]Mapped{{Focused, "a"}, {Blurred, "exedit"}},
		a.Map("nexedit", buffer.Position{}))
	assert.Equal(t,
		[]Mapped{{Focused, "b"}, {Blurred, "ditor"}},
		a.Map("editor", buffer.Position{Offset: 8}))

	p, ok := a.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, buffer.Position{Offset: 8}, p)
}

func TestMapSecondPhase(t *testing.T) {
	a := NewAssigner(0)
	a.FirstPhase = false

	assert.Equal(t,
		[]Mapped{{Focused, "aa"}, {Blurred, "xedit"}},
		a.Map("nexedit", buffer.Position{}))
	assert.Equal(t,
		[]Mapped{{Focused, "ab"}, {Blurred, "itor"}},
		a.Map("editor", buffer.Position{Offset: 8}))
}

func TestMapSplitsOnWhitespace(t *testing.T) {
	a := NewAssigner(0)
	a.FirstPhase = false

	assert.Equal(t, []Mapped{
		{Focused, "aa"},
		{Blurred, " "},
		{Blurred, "a"},
		{Blurred, " "},
		{Focused, "ab"},
		{Blurred, "st"},
	}, a.Map("do a test", buffer.Position{}))

	do, _ := a.Lookup("aa")
	test, _ := a.Lookup("ab")
	assert.Equal(t, buffer.Position{Offset: 0}, do)
	assert.Equal(t, buffer.Position{Offset: 5}, test)
	assert.Equal(t, 2, a.Len())
}

func TestMapSkipsLinesBeforeCursorInFirstPhase(t *testing.T) {
	a := NewAssigner(1)

	assert.Equal(t, []Mapped{{Blurred, "above"}}, a.Map("above", buffer.Position{Line: 0}))
	assert.Equal(t, []Mapped{{Focused, "a"}, {Blurred, "elow"}}, a.Map("below", buffer.Position{Line: 1}))
}

func TestFirstPhaseExhaustion(t *testing.T) {
	a := NewAssigner(0)
	words := strings.TrimSpace(strings.Repeat("word ", 27))

	var focused []string
	for _, m := range a.Map(words, buffer.Position{}) {
		if m.Kind == Focused {
			focused = append(focused, m.Text)
		}
	}
	assert.Len(t, focused, 26)
	assert.Equal(t, 26, a.Len())

	_, ok := a.Lookup("z")
	assert.True(t, ok)
}

func TestReset(t *testing.T) {
	a := NewAssigner(0)
	a.Map("one two", buffer.Position{})
	require.Equal(t, 2, a.Len())

	a.Reset()
	assert.Zero(t, a.Len())
	_, ok := a.Lookup("a")
	assert.False(t, ok)

	assert.Equal(t, []Mapped{{Focused, "a"}, {Blurred, "ne"}}, a.Map("one", buffer.Position{}))
}
