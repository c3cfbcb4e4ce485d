// Package token splits text into coarse lexical runs for word motion and
// jump labels. It knows nothing about syntax: a run is a maximal sequence of
// word characters, of whitespace, or of anything else.
package token

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/dshills/vantage/internal/engine/buffer"
)

// Category classifies a run.
type Category int

const (
	Word Category = iota
	Whitespace
	Other
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Word:
		return "word"
	case Whitespace:
		return "whitespace"
	default:
		return "other"
	}
}

// Lexeme is a run of text and its category.
type Lexeme struct {
	Category Category
	Text     string
}

func categorize(r rune) Category {
	switch {
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
		return Word
	case unicode.IsSpace(r):
		return Whitespace
	default:
		return Other
	}
}

// Lex splits text into runs. Concatenating the runs yields text.
func Lex(text string) []Lexeme {
	var lexemes []Lexeme
	start := 0
	var current Category
	for i, r := range text {
		c := categorize(r)
		if i == 0 {
			current = c
			continue
		}
		if c != current {
			lexemes = append(lexemes, Lexeme{Category: current, Text: text[start:i]})
			start, current = i, c
		}
	}
	if start < len(text) {
		lexemes = append(lexemes, Lexeme{Category: current, Text: text[start:]})
	}
	return lexemes
}

// Direction is the way a motion searches.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Advance returns the position just past text when text starts at p.
func Advance(p buffer.Position, text string) buffer.Position {
	if n := strings.Count(text, "\n"); n > 0 {
		tail := text[strings.LastIndexByte(text, '\n')+1:]
		return buffer.Position{Line: p.Line + n, Offset: uniseg.GraphemeClusterCount(tail)}
	}
	return buffer.Position{Line: p.Line, Offset: p.Offset + uniseg.GraphemeClusterCount(text)}
}

// AdjacentPosition finds the start of the run next to cursor in text.
//
// Forward returns the first run start after the cursor, skipping whitespace
// runs unless whitespace is true. Backward returns the start of the run the
// cursor is in or just past; when that run is whitespace, the start of the
// run before it is returned instead. The boolean is false when no run
// qualifies.
func AdjacentPosition(text string, cursor buffer.Position, whitespace bool, dir Direction) (buffer.Position, bool) {
	var position, previous buffer.Position

	for _, lex := range Lex(text) {
		if dir == Forward && position.After(cursor) {
			if whitespace || lex.Category != Whitespace {
				return position, true
			}
		}

		next := Advance(position, lex.Text)
		if dir == Backward && next.Compare(cursor) >= 0 {
			if lex.Category == Whitespace {
				return previous, true
			}
			return position, true
		}

		previous, position = position, next
	}
	return buffer.Position{}, false
}
