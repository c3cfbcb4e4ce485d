package mode

import "github.com/dshills/vantage/internal/engine/buffer"

// Search finds literal matches of Input in the current buffer.
type Search struct {
	Input      string
	InsertMode bool
	// Results is nil until the query has been run.
	Results  []buffer.Range
	Selected int
}

// NewSearch starts a search whose input is prefilled with the previous
// query.
func NewSearch(previous string) *Search {
	return &Search{Input: previous, InsertMode: true}
}

func (s *Search) Name() string {
	if s.InsertMode {
		return "search_insert"
	}
	return "search"
}

func (*Search) Label() string { return "search" }
func (*Search) isMode()       {}

// SetResults stores the results of running the query and selects the
// first one at or after cursor, wrapping to the first result.
func (s *Search) SetResults(results []buffer.Range, cursor buffer.Position) {
	if results == nil {
		results = []buffer.Range{}
	}
	s.Results = results
	s.Selected = 0
	for i, r := range results {
		if !r.Start.Before(cursor) {
			s.Selected = i
			return
		}
	}
}

// Current returns the selected result.
func (s *Search) Current() (buffer.Range, bool) {
	if len(s.Results) == 0 {
		return buffer.Range{}, false
	}
	return s.Results[s.Selected], true
}

// Next selects the following result, wrapping.
func (s *Search) Next() {
	if len(s.Results) > 0 {
		s.Selected = (s.Selected + 1) % len(s.Results)
	}
}

// Previous selects the preceding result, wrapping.
func (s *Search) Previous() {
	if len(s.Results) > 0 {
		s.Selected = (s.Selected + len(s.Results) - 1) % len(s.Results)
	}
}
