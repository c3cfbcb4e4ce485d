package commands

import (
	"strconv"

	"github.com/dshills/vantage/internal/app"
	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/input/mode"
)

func jumpCommands() app.Registry {
	return app.Registry{
		"jump::match_tag":         withBuffer(matchTag),
		"line_jump::push_char":    pushLineJumpChar,
		"line_jump::pop_char":     popLineJumpChar,
		"line_jump::accept_input": withBuffer(acceptLineJump),
	}
}

// matchTag adds the typed character to the tag input. Once the input is
// as long as a tag, the cursor moves to the tagged position if there is
// one and the mode Jump was entered from is restored.
func matchTag(a *app.Application, buf *buffer.Buffer) error {
	m, ok := a.Mode().(*mode.Jump)
	if !ok {
		return ErrWrongMode
	}
	k := a.Key()
	if !k.IsChar() {
		return nil
	}
	m.Input += string(k.Rune)
	if graphemes(m.Input) < m.TagLength() {
		return nil
	}

	if m.Resume != nil {
		a.SetMode(m.Resume)
	} else {
		toNormal(a)
	}
	if pos, ok := m.Tags.Lookup(m.Input); ok {
		buf.MoveTo(pos)
		return scroll(a, buf)
	}
	return nil
}

func lineJumpMode(a *app.Application) (*mode.LineJump, error) {
	m, ok := a.Mode().(*mode.LineJump)
	if !ok {
		return nil, ErrWrongMode
	}
	return m, nil
}

// pushLineJumpChar accepts digits only.
func pushLineJumpChar(a *app.Application) error {
	m, err := lineJumpMode(a)
	if err != nil {
		return err
	}
	if k := a.Key(); k.IsChar() && k.Rune >= '0' && k.Rune <= '9' {
		m.Input += string(k.Rune)
	}
	return nil
}

func popLineJumpChar(a *app.Application) error {
	m, err := lineJumpMode(a)
	if err != nil {
		return err
	}
	m.Input = popGrapheme(m.Input)
	return nil
}

// acceptLineJump moves to the typed 1-based line, clamped to the buffer,
// and centres it.
func acceptLineJump(a *app.Application, buf *buffer.Buffer) error {
	m, err := lineJumpMode(a)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(m.Input)
	if err != nil || n < 1 {
		toNormal(a)
		return app.WrapError(ErrInvalidLineNumber, "%q", m.Input)
	}
	line := min(n, buf.LineCount()) - 1
	buf.MoveTo(buffer.Position{Line: line})
	toNormal(a)
	return a.ScrollCursorToCenter(buf)
}
