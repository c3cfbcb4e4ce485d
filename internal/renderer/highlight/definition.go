package highlight

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/go-enry/go-enry/v2"
)

// Definition identifies the grammar used to highlight a document.
type Definition struct {
	name  string
	lexer chroma.Lexer
}

// Name returns the display name of the grammar.
func (d *Definition) Name() string {
	return d.name
}

var (
	definitionsMu sync.Mutex
	definitions   = map[string]*Definition{}
)

// definitionFor returns the shared definition for a lexer.
func definitionFor(l chroma.Lexer) *Definition {
	name := l.Config().Name

	definitionsMu.Lock()
	defer definitionsMu.Unlock()
	if d, ok := definitions[name]; ok {
		return d
	}
	d := &Definition{name: name, lexer: chroma.Coalesce(l)}
	definitions[name] = d
	return d
}

// PlainText returns the definition used when no grammar applies.
func PlainText() *Definition {
	if l := lexers.Get("plaintext"); l != nil {
		return definitionFor(l)
	}
	return definitionFor(lexers.Fallback)
}

// Lookup finds a definition by lexer name or alias.
func Lookup(name string) (*Definition, bool) {
	l := lexers.Get(name)
	if l == nil {
		return nil, false
	}
	return definitionFor(l), true
}

// Detect picks a definition for a file from its name and content. Unknown
// files get plain text.
func Detect(path string, content []byte) *Definition {
	base := filepath.Base(path)
	if lang := enry.GetLanguage(base, content); lang != "" {
		if l := lexers.Get(lang); l != nil {
			return definitionFor(l)
		}
	}
	if l := lexers.Match(base); l != nil {
		return definitionFor(l)
	}
	return PlainText()
}

// Names returns the names of every available grammar, sorted.
func Names() []string {
	names := lexers.Names(false)
	sort.Strings(names)
	return names
}
