package commands

import (
	"path/filepath"

	"github.com/dshills/vantage/internal/app"
	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/input/mode"
	"github.com/dshills/vantage/internal/renderer/highlight"
)

func searchSelectCommands() app.Registry {
	return app.Registry{
		"search_select::accept":           accept,
		"search_select::cancel":           cancel,
		"search_select::select_next":      withPicker(func(p *mode.Picker) { p.SelectNext() }),
		"search_select::select_previous":  withPicker(func(p *mode.Picker) { p.SelectPrevious() }),
		"search_select::enable_insert":    withPicker(func(p *mode.Picker) { p.InsertMode = true }),
		"search_select::push_search_char": pushPickerChar,
		"search_select::pop_search_char":  popPickerChar,
		"search_select::step_back":        stepBack,
	}
}

func searchSelectMode(a *app.Application) (mode.SearchSelect, error) {
	m, ok := a.Mode().(mode.SearchSelect)
	if !ok {
		return nil, ErrWrongMode
	}
	return m, nil
}

func withPicker(fn func(*mode.Picker)) app.Command {
	return func(a *app.Application) error {
		m, err := searchSelectMode(a)
		if err != nil {
			return err
		}
		fn(m.Picker())
		return nil
	}
}

func pushPickerChar(a *app.Application) error {
	m, err := searchSelectMode(a)
	if err != nil {
		return err
	}
	if k := a.Key(); k.IsChar() {
		m.Picker().PushChar(k.Rune)
		a.RefreshPicker(m)
	}
	return nil
}

func popPickerChar(a *app.Application) error {
	m, err := searchSelectMode(a)
	if err != nil {
		return err
	}
	m.Picker().PopChar()
	a.RefreshPicker(m)
	return nil
}

// stepBack leaves query editing to browse the results, or leaves the
// mode when there is nothing to browse.
func stepBack(a *app.Application) error {
	m, err := searchSelectMode(a)
	if err != nil {
		return err
	}
	p := m.Picker()
	if p.InsertMode && len(p.Results) > 0 {
		p.InsertMode = false
		return nil
	}
	toNormal(a)
	return nil
}

func cancel(a *app.Application) error {
	toNormal(a)
	return nil
}

// accept acts on the selected result according to the picker.
func accept(a *app.Application) error {
	m, err := searchSelectMode(a)
	if err != nil {
		return err
	}
	selected, ok := m.Picker().Selection()
	if !ok {
		return ErrNoSelection
	}

	switch m := m.(type) {
	case *mode.Command:
		toNormal(a)
		return a.RunCommand(selected.Item.Data.(string))
	case *mode.Open:
		buf, err := a.OpenPath(filepath.FromSlash(selected.Item.Data.(string)))
		if err != nil {
			return err
		}
		toNormal(a)
		return scroll(a, buf)
	case *mode.SymbolJump:
		return acceptSymbol(a, selected.Item.Data.(highlight.Symbol))
	case *mode.Syntax:
		return acceptSyntax(a, selected.Item.Data.(string))
	case *mode.Theme:
		if err := a.SetTheme(selected.Item.Data.(string)); err != nil {
			return err
		}
		toNormal(a)
		return nil
	default:
		return app.WrapError(ErrWrongMode, "%s", m.Label())
	}
}

func acceptSymbol(a *app.Application, sym highlight.Symbol) error {
	buf, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	buf.MoveTo(buffer.Position{Line: sym.Line, Offset: sym.Offset})
	toNormal(a)
	return a.ScrollCursorToCenter(buf)
}

func acceptSyntax(a *app.Application, name string) error {
	buf, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	if def, ok := highlight.Lookup(name); ok {
		buf.SetSyntax(def)
	}
	toNormal(a)
	return nil
}
