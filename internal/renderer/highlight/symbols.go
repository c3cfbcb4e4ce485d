package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/rivo/uniseg"
)

// Symbol is a named declaration found in a document.
type Symbol struct {
	Name   string
	Line   int
	Offset int
}

// Symbols returns the function and type names in text, in document order.
// Offsets count grapheme clusters.
func Symbols(def *Definition, text string) []Symbol {
	if def == nil {
		return nil
	}
	it, err := def.lexer.Tokenise(nil, text)
	if err != nil {
		return nil
	}

	var symbols []Symbol
	line, offset := 0, 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		if isSymbol(tok.Type) {
			symbols = append(symbols, Symbol{Name: tok.Value, Line: line, Offset: offset})
		}
		if n := strings.Count(tok.Value, "\n"); n > 0 {
			line += n
			offset = uniseg.GraphemeClusterCount(tok.Value[strings.LastIndexByte(tok.Value, '\n')+1:])
		} else {
			offset += uniseg.GraphemeClusterCount(tok.Value)
		}
	}
	return symbols
}

func isSymbol(tt chroma.TokenType) bool {
	switch tt {
	case chroma.NameFunction, chroma.NameClass:
		return true
	}
	return false
}
