// Package jump labels on-screen text so the cursor can be moved to it by
// typing a short tag.
//
// Labelling runs in two phases. The first gives single-letter tags to words
// on or after the cursor's line. The second gives two-letter tags to every
// word longer than one character. A tag is drawn over the start of the word
// it labels, so labelled text keeps its width.
package jump

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/engine/token"
)

// Kind says how a mapped lexeme is drawn.
type Kind int

const (
	// Blurred is text without a tag.
	Blurred Kind = iota
	// Focused is a tag.
	Focused
)

// Mapped is a piece of a lexeme after labelling.
type Mapped struct {
	Kind Kind
	Text string
}

// Assigner places tags on the lexemes of one render pass and remembers
// where each tag was placed.
type Assigner struct {
	// FirstPhase selects single-letter tagging.
	FirstPhase bool

	cursorLine int
	positions  map[string]buffer.Position
	singles    SingleCharacterGenerator
	pairs      TagGenerator
}

// NewAssigner creates an assigner in its first phase for a cursor on
// cursorLine.
func NewAssigner(cursorLine int) *Assigner {
	return &Assigner{
		FirstPhase: true,
		cursorLine: cursorLine,
		positions:  make(map[string]buffer.Position),
	}
}

// Reset forgets every placed tag and restarts both generators. Call it
// before each labelling pass.
func (a *Assigner) Reset() {
	clear(a.positions)
	a.singles.Reset()
	a.pairs.Reset()
}

// Lookup returns the position a tag was placed at.
func (a *Assigner) Lookup(tag string) (buffer.Position, bool) {
	p, ok := a.positions[tag]
	return p, ok
}

// Len returns the number of tags placed since the last Reset.
func (a *Assigner) Len() int {
	return len(a.positions)
}

// Map splits a lexeme starting at pos into tags and untagged text.
func (a *Assigner) Map(lexeme string, pos buffer.Position) []Mapped {
	var out []Mapped
	for _, run := range token.Lex(lexeme) {
		tag, ok := "", false
		if run.Category != token.Whitespace {
			tag, ok = a.next(run.Text, pos)
		}
		if !ok {
			out = append(out, Mapped{Kind: Blurred, Text: run.Text})
			pos = token.Advance(pos, run.Text)
			continue
		}

		a.positions[tag] = pos
		out = append(out, Mapped{Kind: Focused, Text: tag})

		n := uniseg.GraphemeClusterCount(tag)
		pos.Offset += n
		if suffix := skipGraphemes(run.Text, n); suffix != "" {
			out = append(out, Mapped{Kind: Blurred, Text: suffix})
			pos = token.Advance(pos, suffix)
		}
	}
	return out
}

// next returns the tag for a non-whitespace run at pos, if it gets one.
func (a *Assigner) next(run string, pos buffer.Position) (string, bool) {
	if a.FirstPhase {
		if pos.Line < a.cursorLine {
			return "", false
		}
		return a.singles.Next()
	}
	if uniseg.GraphemeClusterCount(run) <= 1 {
		return "", false
	}
	return a.pairs.Next()
}

// skipGraphemes drops the first n grapheme clusters of s.
func skipGraphemes(s string, n int) string {
	g := uniseg.NewGraphemes(s)
	end := 0
	for i := 0; i < n && g.Next(); i++ {
		_, end = g.Positions()
	}
	return s[end:]
}
