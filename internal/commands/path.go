package commands

import (
	"path/filepath"
	"strings"

	"github.com/dshills/vantage/internal/app"
	"github.com/dshills/vantage/internal/input/mode"
	"github.com/dshills/vantage/internal/renderer/highlight"
)

func pathCommands() app.Registry {
	return app.Registry{
		"path::push_char":          pushPathChar,
		"path::pop_char":           popPathChar,
		"path::accept_path":        acceptPath,
		"confirm::confirm_command": confirmCommand,
	}
}

func pathMode(a *app.Application) (*mode.Path, error) {
	m, ok := a.Mode().(*mode.Path)
	if !ok {
		return nil, ErrWrongMode
	}
	return m, nil
}

func pushPathChar(a *app.Application) error {
	m, err := pathMode(a)
	if err != nil {
		return err
	}
	if k := a.Key(); k.IsChar() {
		m.Input += string(k.Rune)
	}
	return nil
}

func popPathChar(a *app.Application) error {
	m, err := pathMode(a)
	if err != nil {
		return err
	}
	m.Input = popGrapheme(m.Input)
	return nil
}

// acceptPath sets the current buffer's path, detecting its syntax from the
// new name, and saves when the path was asked for by a save.
func acceptPath(a *app.Application) error {
	m, err := pathMode(a)
	if err != nil {
		return err
	}
	buf, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	input := strings.TrimSpace(m.Input)
	if input == "" {
		return ErrEmptyPath
	}

	path := filepath.Clean(input)
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.Workspace().Root(), path)
	}
	buf.SetPath(path)
	buf.SetSyntax(highlight.Detect(path, []byte(buf.Data())))
	a.ApplySyntaxPreference(buf)

	toNormal(a)
	if m.SaveOnAccept {
		return save(a, buf)
	}
	return nil
}

// confirmCommand runs the command awaiting confirmation. The mode returns
// to Normal unless the command switched to another one.
func confirmCommand(a *app.Application) error {
	m, ok := a.Mode().(*mode.Confirm)
	if !ok {
		return ErrWrongMode
	}
	err := a.RunCommand(m.Command)
	if a.Mode() == m {
		toNormal(a)
	}
	return err
}
