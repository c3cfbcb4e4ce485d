package buffer

import (
	"strings"

	"github.com/rivo/uniseg"
)

// graphemeCount returns the number of grapheme clusters in s.
func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// byteIndex returns the byte index of the grapheme at offset in s. Offsets
// past the end map to len(s).
func byteIndex(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	g := uniseg.NewGraphemes(s)
	for i := 0; g.Next(); i++ {
		if i == offset {
			start, _ := g.Positions()
			return start
		}
	}
	return len(s)
}

// endOf returns the position just past text when it is inserted at start.
func endOf(start Position, text string) Position {
	n := strings.Count(text, "\n")
	if n == 0 {
		return Position{Line: start.Line, Offset: start.Offset + graphemeCount(text)}
	}
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return Position{Line: start.Line + n, Offset: graphemeCount(last)}
}

// Graphemes splits s into grapheme clusters.
func Graphemes(s string) []string {
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
