package commands

import (
	"github.com/dshills/vantage/internal/app"
	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/input/mode"
)

func selectionCommands() app.Registry {
	return app.Registry{
		"selection::delete":     withBuffer(deleteSelection),
		"selection::copy":       withBuffer(copySelection),
		"selection::change":     withBuffer(changeSelection),
		"selection::justify":    withBuffer(justifySelection),
		"selection::select_all": withBuffer(selectAll),
	}
}

// selection returns the selected text's range. Line selections cover
// whole lines and are copied as blocks.
func selection(a *app.Application, buf *buffer.Buffer) (r buffer.Range, lines bool, err error) {
	switch m := a.Mode().(type) {
	case *mode.Select:
		return m.Range(buf.Cursor()), false, nil
	case *mode.SelectLine:
		return m.Lines(buf.Cursor().Line).Range(), true, nil
	}
	return buffer.Range{}, false, ErrWrongMode
}

func deleteSelection(a *app.Application, buf *buffer.Buffer) error {
	if err := removeSelection(a, buf); err != nil {
		return err
	}
	toNormal(a)
	return scroll(a, buf)
}

// removeSelection deletes the selection and puts the cursor where it
// started.
func removeSelection(a *app.Application, buf *buffer.Buffer) error {
	r, lines, err := selection(a, buf)
	if err != nil {
		return err
	}
	if lines {
		err = buf.DeleteLines(buffer.NewLineRange(r.Start.Line, r.End.Line-1))
	} else {
		err = buf.DeleteRange(r)
	}
	if err != nil {
		return err
	}
	if lines {
		buf.MoveTo(buffer.Position{Line: min(r.Start.Line, buf.LineCount()-1)})
	} else {
		buf.MoveTo(r.Start)
	}
	return nil
}

func copySelection(a *app.Application, buf *buffer.Buffer) error {
	r, lines, err := selection(a, buf)
	if err != nil {
		return err
	}
	text, err := buf.Read(r)
	if err != nil {
		return err
	}
	if lines && r.End.Line >= buf.LineCount() {
		// The last line has no newline of its own.
		text += "\n"
	}
	if err := a.Clipboard().Set(app.ClipboardContent{Text: text, Block: lines}); err != nil {
		return err
	}
	toNormal(a)
	return nil
}

// changeSelection replaces the selection with typed text. The deletion
// and the typing undo together.
func changeSelection(a *app.Application, buf *buffer.Buffer) error {
	buf.StartOperationGroup()
	if err := removeSelection(a, buf); err != nil {
		buf.EndOperationGroup()
		return err
	}
	a.SetMode(mode.Insert{})
	return scroll(a, buf)
}

func justifySelection(a *app.Application, buf *buffer.Buffer) error {
	lr := targetLines(a, buf)
	toNormal(a)
	return reflowLines(a, buf, lr)
}

// selectAll selects from the start of the buffer to its end.
func selectAll(a *app.Application, buf *buffer.Buffer) error {
	a.SetMode(&mode.Select{})
	last := buf.LineCount() - 1
	buf.MoveTo(buffer.Position{Line: last, Offset: buf.LineLength(last)})
	return scroll(a, buf)
}
