package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// ContextLines is the number of preceding lines fed to the lexer along with
// the line being parsed.
const ContextLines = 32

// Token is a lexeme and its chroma type.
type Token struct {
	Type  chroma.TokenType
	Value string
}

// ParseState is the lexer position after some line of a document. It is a
// value: parsing returns a new state and leaves the receiver untouched, so
// states can be cached and resumed from.
type ParseState struct {
	def     *Definition
	context []string
}

// NewParseState returns the state at the start of a document.
func NewParseState(def *Definition) ParseState {
	return ParseState{def: def}
}

// Definition returns the grammar the state belongs to.
func (s ParseState) Definition() *Definition {
	return s.def
}

// Parse tokenises line in the context of the preceding lines and returns
// its tokens together with the state after it. A trailing newline on line
// is kept as part of the last token.
func (s ParseState) Parse(line string) ([]Token, ParseState) {
	body := strings.TrimSuffix(line, "\n")

	var sb strings.Builder
	for _, c := range s.context {
		sb.WriteString(c)
		sb.WriteByte('\n')
	}
	start := sb.Len()
	sb.WriteString(body)
	sb.WriteByte('\n')

	tokens := s.tokenise(sb.String(), start, start+len(line))
	return tokens, s.advance(body)
}

// tokenise lexes text and returns the pieces falling in [from, to).
func (s ParseState) tokenise(text string, from, to int) []Token {
	if from == to {
		return nil
	}
	fallback := []Token{{Type: chroma.Text, Value: text[from:to]}}
	if s.def == nil {
		return fallback
	}

	it, err := s.def.lexer.Tokenise(nil, text)
	if err != nil {
		return fallback
	}

	var tokens []Token
	pos := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		end := pos + len(tok.Value)
		lo, hi := max(pos, from), min(end, to)
		if lo < hi {
			tokens = append(tokens, Token{Type: tok.Type, Value: tok.Value[lo-pos : hi-pos]})
		}
		pos = end
		if pos >= to {
			break
		}
	}
	if pos < to {
		// The lexer consumed less than it was given.
		tokens = append(tokens, Token{Type: chroma.Text, Value: text[max(pos, from):to]})
	}
	return tokens
}

func (s ParseState) advance(line string) ParseState {
	keep := s.context
	if len(keep) >= ContextLines {
		keep = keep[len(keep)-ContextLines+1:]
	}
	next := make([]string, len(keep), len(keep)+1)
	copy(next, keep)
	return ParseState{def: s.def, context: append(next, line)}
}

// HighlightState is the styling position after some line: the theme in use
// and the type of the last token styled.
type HighlightState struct {
	Theme string
	Last  chroma.TokenType
}
