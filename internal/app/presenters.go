package app

import (
	"fmt"

	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/input/mode"
	"github.com/dshills/vantage/internal/renderer"
	"github.com/dshills/vantage/internal/renderer/core"
	"github.com/dshills/vantage/internal/renderer/statusline"
)

var splash = []string{
	"vantage",
	"",
	"space  open a file",
	"ctrl-a  run a command",
	"Q  quit",
}

// Render draws one frame for the current mode.
func (a *Application) Render() {
	p := a.presenter
	p.Begin()
	buf, hasBuf := a.workspace.Current()

	switch m := a.mode.(type) {
	case mode.SearchSelect:
		if hasBuf {
			a.drawBuffer(buf, renderer.Options{})
		}
		a.presentSearchSelect(m)
	default:
		if !hasBuf {
			if _, ok := m.(mode.Normal); ok {
				p.Splash(splash)
				a.presentError()
				p.Present()
				return
			}
		} else {
			a.drawBuffer(buf, a.modeOptions(buf))
		}
		a.presentStatus(buf)
	}
	a.presentError()
	p.Present()
}

// modeOptions returns the selections and tag mapping for the mode.
func (a *Application) modeOptions(buf *buffer.Buffer) renderer.Options {
	var opts renderer.Options
	switch m := a.mode.(type) {
	case *mode.Select:
		opts.Highlights = []buffer.Range{m.Range(buf.Cursor())}
	case *mode.SelectLine:
		opts.Highlights = []buffer.Range{m.Lines(buf.Cursor().Line).Range()}
	case *mode.Search:
		opts.Highlights = m.Results
	case *mode.Jump:
		m.Tags.Reset()
		opts.Mapper = m.Tags
	}
	return opts
}

func (a *Application) drawBuffer(buf *buffer.Buffer, opts renderer.Options) {
	view := a.resizedView(buf)
	opts.ScrollOffset = view.Viewport.Offset()
	opts.TabWidth = a.prefs.TabWidthFor(buf.Path())
	opts.LineWrapping = a.prefs.LineWrapping
	opts.LineLengthGuides = a.prefs.LineLengthGuides

	if err := a.presenter.DrawBuffer(buf, view.Cache, opts); err != nil {
		err = NewComponentError("renderer", "draw buffer", fmt.Errorf("%w: %w", ErrBufferParseFailed, err))
		a.log.WithComponent("renderer").Error("%v", err)
		a.ReportError(err)
	}
}

func (a *Application) modeStyle() core.Style {
	pal := a.presenter.Palette()
	switch a.mode.(type) {
	case mode.Insert:
		return pal.Insert
	case *mode.Select, *mode.SelectLine:
		return pal.SelectMode
	case *mode.Search, mode.SearchSelect:
		return pal.SearchMode
	case *mode.Path, *mode.LineJump:
		return pal.PathMode
	case *mode.Confirm:
		return pal.Warning
	}
	return pal.Inverted
}

func (a *Application) presentStatus(buf *buffer.Buffer) {
	p := a.presenter
	pal := p.Palette()

	switch m := a.mode.(type) {
	case *mode.Search:
		if m.InsertMode {
			p.Prompt(statusline.ModeLabel(m.Label()), a.modeStyle(), m.Input)
			return
		}
		p.StatusLine(
			statusline.Entry{Text: statusline.ModeLabel(m.Label()), Style: a.modeStyle()},
			statusline.Entry{Text: " " + m.Input, Style: pal.Focused},
			statusline.Entry{Text: searchPosition(m), Style: pal.Focused},
		)
		return
	case *mode.LineJump:
		p.Prompt(statusline.ModeLabel(m.Label()), a.modeStyle(), m.Input)
		return
	case *mode.Path:
		p.Prompt(statusline.ModeLabel(m.Label()), a.modeStyle(), m.Input)
		return
	case *mode.Confirm:
		p.StatusLine(
			statusline.Entry{Text: statusline.ModeLabel(m.Label()), Style: a.modeStyle()},
			statusline.Entry{Text: " Are you sure? (y/n)", Style: pal.Focused},
		)
		return
	}

	entries := []statusline.Entry{{Text: statusline.ModeLabel(a.mode.Label()), Style: a.modeStyle()}}
	if buf != nil {
		entries = append(entries,
			statusline.Entry{Text: " " + a.bufferTitle(buf), Style: pal.Focused},
			statusline.Entry{Text: fmt.Sprintf(" %d:%d ", buf.Cursor().Line+1, buf.Cursor().Offset+1), Style: pal.Focused},
		)
	}
	p.StatusLine(entries...)
}

func (a *Application) bufferTitle(buf *buffer.Buffer) string {
	title := "untitled"
	if buf.Path() != "" {
		title = a.workspace.Relative(buf.Path())
	}
	if buf.Modified() {
		title += "*"
	}
	return title
}

func searchPosition(m *mode.Search) string {
	if len(m.Results) == 0 {
		return " no matches "
	}
	return fmt.Sprintf(" %d of %d ", m.Selected+1, len(m.Results))
}

func (a *Application) presentSearchSelect(m mode.SearchSelect) {
	p := a.presenter
	picker := m.Picker()

	rows := make([]string, len(picker.Results))
	for i, r := range picker.Results {
		rows[i] = r.Item.Text
	}
	p.ResultRows(rows, picker.Selected, m.EmptyMessage())

	label := statusline.ModeLabel(m.Label())
	if picker.InsertMode {
		p.Prompt(label, a.modeStyle(), picker.Query)
		return
	}
	p.StatusLine(
		statusline.Entry{Text: label, Style: a.modeStyle()},
		statusline.Entry{Text: " " + picker.Query, Style: p.Palette().Focused},
	)
}

// presentError replaces the status line with the error from the last key
// press.
func (a *Application) presentError() {
	if a.showError && a.lastError != nil {
		a.presenter.Message(a.lastError.Error())
	}
}
