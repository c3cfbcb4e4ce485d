package commands

import (
	"github.com/dshills/vantage/internal/app"
	"github.com/dshills/vantage/internal/engine/buffer"
)

func viewCommands() app.Registry {
	return app.Registry{
		"view::scroll_up":               withBuffer(scrollUp),
		"view::scroll_down":             withBuffer(scrollDown),
		"view::scroll_to_cursor":        withBuffer(scroll),
		"view::scroll_cursor_to_center": withBuffer(scrollCursorToCenter),
		"view::page_up":                 withBuffer(pageUp),
		"view::page_down":               withBuffer(pageDown),
	}
}

// scrollUp and scrollDown move the view without moving the cursor.
func scrollUp(a *app.Application, buf *buffer.Buffer) error {
	a.ScrollBy(buf, -1)
	return nil
}

func scrollDown(a *app.Application, buf *buffer.Buffer) error {
	a.ScrollBy(buf, 1)
	return nil
}

func scrollCursorToCenter(a *app.Application, buf *buffer.Buffer) error {
	return a.ScrollCursorToCenter(buf)
}

func pageUp(a *app.Application, buf *buffer.Buffer) error {
	return moveLines(a, buf, -a.ContentHeight(buf))
}

func pageDown(a *app.Application, buf *buffer.Buffer) error {
	return moveLines(a, buf, a.ContentHeight(buf))
}

// moveLines moves the cursor delta lines, stopping at either end, and
// scrolls it into view.
func moveLines(a *app.Application, buf *buffer.Buffer, delta int) error {
	line := min(max(buf.Cursor().Line+delta, 0), buf.LineCount()-1)
	buf.MoveTo(buffer.Position{Line: line, Offset: min(buf.Cursor().Offset, buf.LineLength(line))})
	return a.ScrollCursorToCenter(buf)
}
