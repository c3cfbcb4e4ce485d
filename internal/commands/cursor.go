package commands

import (
	"github.com/dshills/vantage/internal/app"
	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/engine/token"
)

func cursorCommands() app.Registry {
	return app.Registry{
		"cursor::move_up":                         motion((*buffer.Buffer).MoveUp),
		"cursor::move_down":                       motion((*buffer.Buffer).MoveDown),
		"cursor::move_left":                       motion((*buffer.Buffer).MoveLeft),
		"cursor::move_right":                      motion((*buffer.Buffer).MoveRight),
		"cursor::move_to_start_of_line":           motion((*buffer.Buffer).MoveToStartOfLine),
		"cursor::move_to_end_of_line":             motion((*buffer.Buffer).MoveToEndOfLine),
		"cursor::move_to_first_line":              motion((*buffer.Buffer).MoveToFirstLine),
		"cursor::move_to_last_line":               motion((*buffer.Buffer).MoveToLastLine),
		"cursor::move_to_first_word_of_line":      withBuffer(moveToFirstWordOfLine),
		"cursor::insert_at_end_of_line":           withBuffer(insertAtEndOfLine),
		"cursor::insert_at_first_word_of_line":    withBuffer(insertAtFirstWordOfLine),
		"cursor::insert_with_newline":             withBuffer(insertWithNewline),
		"cursor::insert_with_newline_above":       withBuffer(insertWithNewlineAbove),
		"cursor::move_to_start_of_previous_token": withBuffer(moveToStartOfPreviousToken),
		"cursor::move_to_start_of_next_token":     withBuffer(moveToStartOfNextToken),
		"cursor::move_to_end_of_current_token":    withBuffer(moveToEndOfCurrentToken),
		"cursor::append_to_current_token":         withBuffer(appendToCurrentToken),
	}
}

func moveToFirstWordOfLine(a *app.Application, buf *buffer.Buffer) error {
	n := buf.Cursor().Line
	line, _ := buf.Line(n)
	indent := indentation(line)
	if indent == line {
		return ErrEmptyLine
	}
	buf.MoveTo(buffer.Position{Line: n, Offset: graphemes(indent)})
	return scroll(a, buf)
}

func insertAtEndOfLine(a *app.Application, buf *buffer.Buffer) error {
	buf.MoveToEndOfLine()
	if err := scroll(a, buf); err != nil {
		return err
	}
	return switchToInsertMode(a)
}

func insertAtFirstWordOfLine(a *app.Application, buf *buffer.Buffer) error {
	if err := moveToFirstWordOfLine(a, buf); err != nil {
		return err
	}
	return switchToInsertMode(a)
}

// insertWithNewline opens an indented line below the cursor's line and
// enters Insert on it.
func insertWithNewline(a *app.Application, buf *buffer.Buffer) error {
	if err := switchToInsertMode(a); err != nil {
		return err
	}
	line, _ := buf.Line(buf.Cursor().Line)
	buf.MoveToEndOfLine()
	if err := insertAndAdvance(buf, "\n"+indentation(line)); err != nil {
		return err
	}
	return scroll(a, buf)
}

// insertWithNewlineAbove opens an indented line above the cursor's line
// and enters Insert on it.
func insertWithNewlineAbove(a *app.Application, buf *buffer.Buffer) error {
	if err := switchToInsertMode(a); err != nil {
		return err
	}
	n := buf.Cursor().Line
	line, _ := buf.Line(n)
	indent := indentation(line)
	if err := buf.InsertAt(buffer.Position{Line: n}, indent+"\n"); err != nil {
		return err
	}
	buf.MoveTo(buffer.Position{Line: n, Offset: graphemes(indent)})
	return scroll(a, buf)
}

func moveToStartOfPreviousToken(a *app.Application, buf *buffer.Buffer) error {
	if p, ok := token.AdjacentPosition(buf.Data(), buf.Cursor(), false, token.Backward); ok {
		buf.MoveTo(p)
	}
	return scroll(a, buf)
}

func moveToStartOfNextToken(a *app.Application, buf *buffer.Buffer) error {
	if p, ok := token.AdjacentPosition(buf.Data(), buf.Cursor(), false, token.Forward); ok {
		buf.MoveTo(p)
	}
	return scroll(a, buf)
}

// moveToEndOfCurrentToken moves just past the token under the cursor.
func moveToEndOfCurrentToken(a *app.Application, buf *buffer.Buffer) error {
	if p, ok := token.AdjacentPosition(buf.Data(), buf.Cursor(), true, token.Forward); ok {
		buf.MoveTo(p)
	} else {
		buf.MoveToEndOfLine()
	}
	return scroll(a, buf)
}

func appendToCurrentToken(a *app.Application, buf *buffer.Buffer) error {
	if err := moveToEndOfCurrentToken(a, buf); err != nil {
		return err
	}
	return switchToInsertMode(a)
}
