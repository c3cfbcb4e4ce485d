package mode

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/vantage/internal/input/fuzzy"
	"github.com/dshills/vantage/internal/renderer/highlight"
)

// DefaultMaxResults is the number of results a picker shows.
const DefaultMaxResults = 5

// Picker is the query and result list shared by the search-select modes.
type Picker struct {
	Query      string
	InsertMode bool
	Results    []fuzzy.Result
	Selected   int
	MaxResults int
}

func newPicker(maxResults int) Picker {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return Picker{InsertMode: true, MaxResults: maxResults}
}

// Name returns the keymap section for the picker.
func (p *Picker) Name() string {
	if p.InsertMode {
		return "search_select_insert"
	}
	return "search_select"
}

// PushChar appends r to the query.
func (p *Picker) PushChar(r rune) {
	p.Query += string(r)
}

// PopChar removes the last grapheme of the query.
func (p *Picker) PopChar() {
	var end int
	g := uniseg.NewGraphemes(p.Query)
	for g.Next() {
		end, _ = g.Positions()
	}
	p.Query = p.Query[:end]
}

// SelectNext moves the selection down, wrapping.
func (p *Picker) SelectNext() {
	if len(p.Results) > 0 {
		p.Selected = (p.Selected + 1) % len(p.Results)
	}
}

// SelectPrevious moves the selection up, wrapping.
func (p *Picker) SelectPrevious() {
	if len(p.Results) > 0 {
		p.Selected = (p.Selected + len(p.Results) - 1) % len(p.Results)
	}
}

// Selection returns the selected result.
func (p *Picker) Selection() (fuzzy.Result, bool) {
	if p.Selected < 0 || p.Selected >= len(p.Results) {
		return fuzzy.Result{}, false
	}
	return p.Results[p.Selected], true
}

// Run replaces the results with the best matches of the query.
func (p *Picker) Run(m *fuzzy.Matcher, set string, items []fuzzy.Item) {
	p.Results = m.Find(set, p.Query, items, p.MaxResults)
	p.Selected = 0
}

// SearchSelect is implemented by the modes that pick from a list.
type SearchSelect interface {
	Mode
	Picker() *Picker
	// Candidates returns the cache key and items to match against.
	Candidates() (set string, items []fuzzy.Item)
	// EmptyMessage is shown when there are no results.
	EmptyMessage() string
}

func stringItems(values []string) []fuzzy.Item {
	items := make([]fuzzy.Item, len(values))
	for i, v := range values {
		items[i] = fuzzy.Item{Text: v, Data: v}
	}
	return items
}

// Command picks a command to run.
type Command struct {
	picker   Picker
	commands []string
}

// NewCommand creates a command picker over names.
func NewCommand(names []string, maxResults int) *Command {
	return &Command{picker: newPicker(maxResults), commands: names}
}

func (c *Command) Name() string { return c.picker.Name() }
func (*Command) Label() string { return "command" }
func (*Command) isMode() {}
func (c *Command) Picker() *Picker { return &c.picker }
func (c *Command) Candidates() (string, []fuzzy.Item) { return "commands", stringItems(c.commands) }
func (*Command) EmptyMessage() string { return "No matching commands." }

// Open picks a workspace file to open. Its candidates arrive
// asynchronously through SetIndex.
type Open struct {
	picker  Picker
	Root    string
	index   []string
	indexed bool
}

// NewOpen creates a file picker for the workspace at root.
func NewOpen(root string, maxResults int) *Open {
	o := &Open{picker: newPicker(maxResults), Root: root}
	return o
}

func (o *Open) Name() string { return o.picker.Name() }
func (*Open) Label() string { return "open" }
func (*Open) isMode() {}
func (o *Open) Picker() *Picker { return &o.picker }

// SetIndex supplies the workspace's files.
func (o *Open) SetIndex(paths []string) {
	o.index = paths
	o.indexed = true
}

// Indexed reports whether SetIndex has been called.
func (o *Open) Indexed() bool {
	return o.indexed
}

func (o *Open) Candidates() (string, []fuzzy.Item) {
	return "open:" + o.Root, stringItems(o.index)
}

func (o *Open) EmptyMessage() string {
	if !o.indexed {
		return "Indexing files..."
	}
	return "No matching files."
}

// SymbolJump picks a symbol of the current buffer to move to.
type SymbolJump struct {
	picker  Picker
	symbols []highlight.Symbol
}

// NewSymbolJump creates a symbol picker.
func NewSymbolJump(symbols []highlight.Symbol, maxResults int) *SymbolJump {
	return &SymbolJump{picker: newPicker(maxResults), symbols: symbols}
}

func (s *SymbolJump) Name() string { return s.picker.Name() }
func (*SymbolJump) Label() string { return "symbol" }
func (*SymbolJump) isMode() {}
func (s *SymbolJump) Picker() *Picker { return &s.picker }

// Candidates is not cached: symbols change with every edit.
func (s *SymbolJump) Candidates() (string, []fuzzy.Item) {
	items := make([]fuzzy.Item, len(s.symbols))
	for i, sym := range s.symbols {
		items[i] = fuzzy.Item{Text: sym.Name, Data: sym}
	}
	return "", items
}

func (*SymbolJump) EmptyMessage() string { return "No matching symbols." }

// Syntax picks a syntax definition for the current buffer.
type Syntax struct {
	picker Picker
	names  []string
}

// NewSyntax creates a syntax picker.
func NewSyntax(names []string, maxResults int) *Syntax {
	return &Syntax{picker: newPicker(maxResults), names: names}
}

func (s *Syntax) Name() string { return s.picker.Name() }
func (*Syntax) Label() string { return "syntax" }
func (*Syntax) isMode() {}
func (s *Syntax) Picker() *Picker { return &s.picker }
func (s *Syntax) Candidates() (string, []fuzzy.Item) { return "syntaxes", stringItems(s.names) }
func (*Syntax) EmptyMessage() string { return "No matching syntaxes." }

// Theme picks a colour theme.
type Theme struct {
	picker Picker
	names  []string
}

// NewTheme creates a theme picker.
func NewTheme(names []string, maxResults int) *Theme {
	return &Theme{picker: newPicker(maxResults), names: names}
}

func (t *Theme) Name() string { return t.picker.Name() }
func (*Theme) Label() string { return "theme" }
func (*Theme) isMode() {}
func (t *Theme) Picker() *Picker { return &t.picker }
func (t *Theme) Candidates() (string, []fuzzy.Item) { return "themes", stringItems(t.names) }
func (*Theme) EmptyMessage() string { return "No matching themes." }
