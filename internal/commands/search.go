package commands

import (
	"github.com/dshills/vantage/internal/app"
	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/input/mode"
)

func searchCommands() app.Registry {
	return app.Registry{
		"search::move_to_previous_result": withBuffer(moveToPreviousResult),
		"search::move_to_next_result":     withBuffer(moveToNextResult),
		"search::move_to_current_result":  withBuffer(moveToCurrentResult),
		"search::accept_query":            withBuffer(acceptQuery),
		"search::clear_query":             clearQuery,
		"search::push_search_char":        pushSearchChar,
		"search::pop_search_char":         popSearchChar,
		"search::run":                     withBuffer(runSearch),
	}
}

func searchMode(a *app.Application) (*mode.Search, error) {
	m, ok := a.Mode().(*mode.Search)
	if !ok {
		return nil, ErrWrongMode
	}
	return m, nil
}

// results returns every match of query in buf.
func results(buf *buffer.Buffer, query string) []buffer.Range {
	length := graphemes(query)
	starts := buf.Search(query)
	ranges := make([]buffer.Range, len(starts))
	for i, p := range starts {
		ranges[i] = buffer.Range{Start: p, End: buffer.Position{Line: p.Line, Offset: p.Offset + length}}
	}
	return ranges
}

// lastQueryResults runs the last accepted query, for result navigation
// outside Search mode.
func lastQueryResults(a *app.Application, buf *buffer.Buffer) ([]buffer.Range, error) {
	query := a.SearchQuery()
	if query == "" {
		return nil, app.ErrSearchQueryMissing
	}
	found := results(buf, query)
	if len(found) == 0 {
		return nil, app.WrapError(app.ErrNoSearchResults, "%q", query)
	}
	return found, nil
}

func moveToNextResult(a *app.Application, buf *buffer.Buffer) error {
	if m, ok := a.Mode().(*mode.Search); ok {
		m.Next()
		return moveToCurrentResult(a, buf)
	}
	found, err := lastQueryResults(a, buf)
	if err != nil {
		return err
	}
	target := found[0]
	for _, r := range found {
		if r.Start.After(buf.Cursor()) {
			target = r
			break
		}
	}
	buf.MoveTo(target.Start)
	return scroll(a, buf)
}

func moveToPreviousResult(a *app.Application, buf *buffer.Buffer) error {
	if m, ok := a.Mode().(*mode.Search); ok {
		m.Previous()
		return moveToCurrentResult(a, buf)
	}
	found, err := lastQueryResults(a, buf)
	if err != nil {
		return err
	}
	target := found[len(found)-1]
	for i := len(found) - 1; i >= 0; i-- {
		if found[i].Start.Before(buf.Cursor()) {
			target = found[i]
			break
		}
	}
	buf.MoveTo(target.Start)
	return scroll(a, buf)
}

func moveToCurrentResult(a *app.Application, buf *buffer.Buffer) error {
	m, err := searchMode(a)
	if err != nil {
		return err
	}
	r, ok := m.Current()
	if !ok {
		return app.WrapError(app.ErrNoSearchResults, "%q", m.Input)
	}
	buf.MoveTo(r.Start)
	return scroll(a, buf)
}

// acceptQuery remembers the input as the search query, runs it and
// leaves input editing so the results can be stepped through.
func acceptQuery(a *app.Application, buf *buffer.Buffer) error {
	m, err := searchMode(a)
	if err != nil {
		return err
	}
	if m.Input == "" {
		return app.ErrSearchQueryMissing
	}
	a.SetSearchQuery(m.Input)
	m.InsertMode = false
	if err := runSearch(a, buf); err != nil {
		return err
	}
	return moveToCurrentResult(a, buf)
}

func clearQuery(a *app.Application) error {
	m, err := searchMode(a)
	if err != nil {
		return err
	}
	m.Input = ""
	m.Results = nil
	m.Selected = 0
	m.InsertMode = true
	return nil
}

func pushSearchChar(a *app.Application) error {
	m, err := searchMode(a)
	if err != nil {
		return err
	}
	if k := a.Key(); k.IsChar() {
		m.Input += string(k.Rune)
	}
	return nil
}

func popSearchChar(a *app.Application) error {
	m, err := searchMode(a)
	if err != nil {
		return err
	}
	m.Input = popGrapheme(m.Input)
	return nil
}

// runSearch finds every match of the input and selects the first at or
// after the cursor.
func runSearch(a *app.Application, buf *buffer.Buffer) error {
	m, err := searchMode(a)
	if err != nil {
		return err
	}
	m.SetResults(results(buf, m.Input), buf.Cursor())
	return nil
}
