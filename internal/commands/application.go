package commands

import (
	"path/filepath"
	"strings"

	"github.com/dshills/vantage/internal/app"
	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/input/keymap"
	"github.com/dshills/vantage/internal/input/mode"
	"github.com/dshills/vantage/internal/renderer/highlight"
)

func applicationCommands() app.Registry {
	return app.Registry{
		"application::switch_to_normal_mode":            switchToNormalMode,
		"application::switch_to_insert_mode":            switchToInsertMode,
		"application::switch_to_jump_mode":              switchToJumpMode,
		"application::switch_to_second_stage_jump_mode": switchToSecondStageJumpMode,
		"application::switch_to_line_jump_mode":         switchToLineJumpMode,
		"application::switch_to_open_mode":              switchToOpenMode,
		"application::switch_to_command_mode":           switchToCommandMode,
		"application::switch_to_symbol_jump_mode":       switchToSymbolJumpMode,
		"application::switch_to_syntax_mode":            switchToSyntaxMode,
		"application::switch_to_theme_mode":             switchToThemeMode,
		"application::switch_to_select_mode":            switchToSelectMode,
		"application::switch_to_select_line_mode":       switchToSelectLineMode,
		"application::switch_to_search_mode":            switchToSearchMode,
		"application::switch_to_path_mode":              switchToPathMode,
		"application::exit":                             exit,
		"application::display_last_error":               displayLastError,
		"application::display_available_commands":       displayAvailableCommands,
		"application::display_default_keymap":           displayDefaultKeymap,
		"application::suspend":                          suspend,
	}
}

// switchToNormalMode returns to Normal. Leaving Insert closes the undo
// step opened when Insert was entered.
func switchToNormalMode(a *app.Application) error {
	if _, ok := a.Mode().(mode.Insert); ok {
		if buf, err := a.CurrentBuffer(); err == nil {
			buf.EndOperationGroup()
		}
	}
	toNormal(a)
	return nil
}

// switchToInsertMode enters Insert. Everything typed until the next
// switch to Normal is undone as one step.
func switchToInsertMode(a *app.Application) error {
	buf, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	buf.StartOperationGroup()
	a.SetMode(mode.Insert{})
	return nil
}

func switchToJumpMode(a *app.Application) error {
	buf, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	j := mode.NewJump(buf.Cursor().Line)
	switch m := a.Mode().(type) {
	case *mode.Select, *mode.SelectLine:
		j.Resume = m
	}
	a.SetMode(j)
	return nil
}

func switchToSecondStageJumpMode(a *app.Application) error {
	if err := switchToJumpMode(a); err != nil {
		return err
	}
	a.Mode().(*mode.Jump).Tags.FirstPhase = false
	return nil
}

func switchToLineJumpMode(a *app.Application) error {
	if _, err := a.CurrentBuffer(); err != nil {
		return err
	}
	a.SetMode(&mode.LineJump{})
	return nil
}

// switchToOpenMode starts indexing the workspace. The picker shows a
// placeholder until the index arrives.
func switchToOpenMode(a *app.Application) error {
	root := a.Workspace().Root()
	m := mode.NewOpen(root, a.Preferences().SearchSelect.MaxResults)
	a.SetMode(m)
	a.RefreshPicker(m)
	a.StartIndex(root)
	return nil
}

func switchToCommandMode(a *app.Application) error {
	m := mode.NewCommand(a.CommandNames(), a.Preferences().SearchSelect.MaxResults)
	a.SetMode(m)
	a.RefreshPicker(m)
	return nil
}

func switchToSymbolJumpMode(a *app.Application) error {
	buf, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	symbols := highlight.Symbols(buf.Syntax(), buf.Data())
	m := mode.NewSymbolJump(symbols, a.Preferences().SearchSelect.MaxResults)
	a.SetMode(m)
	a.RefreshPicker(m)
	return nil
}

func switchToSyntaxMode(a *app.Application) error {
	if _, err := a.CurrentBuffer(); err != nil {
		return err
	}
	m := mode.NewSyntax(highlight.Names(), a.Preferences().SearchSelect.MaxResults)
	a.SetMode(m)
	a.RefreshPicker(m)
	return nil
}

func switchToThemeMode(a *app.Application) error {
	m := mode.NewTheme(highlight.ThemeNames(), a.Preferences().SearchSelect.MaxResults)
	a.SetMode(m)
	a.RefreshPicker(m)
	return nil
}

func switchToSelectMode(a *app.Application) error {
	buf, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	a.SetMode(&mode.Select{Anchor: buf.Cursor()})
	return nil
}

func switchToSelectLineMode(a *app.Application) error {
	buf, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	a.SetMode(&mode.SelectLine{Anchor: buf.Cursor().Line})
	return nil
}

func switchToSearchMode(a *app.Application) error {
	if _, err := a.CurrentBuffer(); err != nil {
		return err
	}
	a.SetMode(mode.NewSearch(a.SearchQuery()))
	return nil
}

// switchToPathMode edits the buffer's path, starting from the workspace
// root for an unnamed buffer.
func switchToPathMode(a *app.Application) error {
	buf, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	a.SetMode(&mode.Path{Input: initialPath(a, buf)})
	return nil
}

func initialPath(a *app.Application, buf *buffer.Buffer) string {
	if p := buf.Path(); p != "" {
		return p
	}
	return a.Workspace().Root() + string(filepath.Separator)
}

func exit(*app.Application) error {
	return app.ErrQuit
}

// displayLastError opens the full text of the last error in a new
// buffer.
func displayLastError(a *app.Application) error {
	err := a.LastError()
	if err == nil {
		return ErrNoErrorToDisplay
	}
	showBuffer(a, err.Error())
	return nil
}

func displayAvailableCommands(a *app.Application) error {
	showBuffer(a, strings.Join(a.CommandNames(), "\n"))
	return nil
}

func displayDefaultKeymap(a *app.Application) error {
	buf := showBuffer(a, keymap.DefaultData())
	if def, ok := highlight.Lookup("yaml"); ok {
		buf.SetSyntax(def)
	}
	return nil
}

// showBuffer opens text in a new unnamed buffer.
func showBuffer(a *app.Application, text string) *buffer.Buffer {
	buf := buffer.FromString(text)
	a.Workspace().Add(buf)
	toNormal(a)
	return buf
}

func suspend(a *app.Application) error {
	return a.Suspend()
}
