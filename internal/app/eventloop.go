package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dshills/vantage/internal/config"
	"github.com/dshills/vantage/internal/engine/token"
	"github.com/dshills/vantage/internal/input/key"
	"github.com/dshills/vantage/internal/input/keymap"
	"github.com/dshills/vantage/internal/input/mode"
	"github.com/dshills/vantage/internal/renderer/backend"
	"github.com/dshills/vantage/internal/workspace"
)

// listenTimeout bounds each wait for input so cancellation is noticed.
const listenTimeout = 100 * time.Millisecond

// PreferencesChanged is posted by the preference watcher.
type PreferencesChanged struct{}

// Run renders, then handles events until the mode becomes Exit or ctx is
// cancelled. Each event is followed by exactly one render.
func (a *Application) Run(ctx context.Context) error {
	defer a.Close()

	if path := a.prefs.Path; path != "" {
		if w, err := config.NewWatcher(path, a.postPreferencesChanged, config.WithErrorHandler(func(err error) {
			a.log.WithComponent("config").Warn("watching preferences: %v", err)
		})); err != nil {
			a.log.WithComponent("config").Warn("preferences will not reload: %v", err)
		} else {
			defer w.Close()
			go w.Run(a.ctx)
		}
	}

	a.Render()
	for {
		if _, ok := a.mode.(mode.Exit); ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		ev, ok := a.backend.Listen(listenTimeout)
		if !ok {
			continue
		}
		a.HandleEvent(ev)
		if _, ok := a.mode.(mode.Exit); ok {
			return nil
		}
		a.Render()
	}
}

func (a *Application) postPreferencesChanged() {
	a.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: PreferencesChanged{}})
}

// HandleEvent processes one backend event.
func (a *Application) HandleEvent(ev backend.Event) {
	switch ev.Type {
	case backend.EventKey:
		if k, ok := key.FromBackend(ev); ok {
			_ = a.HandleKey(k)
		}
	case backend.EventPaste:
		a.handlePaste(ev.PasteText)
	case backend.EventInterrupt:
		switch data := ev.Data.(type) {
		case workspace.IndexComplete:
			a.indexComplete(data)
		case PreferencesChanged:
			a.ReloadPreferences()
		}
	}
}

// HandleKey runs the commands bound to k in the current mode, in order,
// stopping at the first error. The error is kept as the last error.
func (a *Application) HandleKey(k key.Event) error {
	a.showError = false
	name := a.mode.Name()
	commands, ok := a.keymap.CommandsFor(name, k)
	if !ok {
		a.log.Debug("no binding for %s in %s mode", k, name)
		return nil
	}

	a.key = k
	for _, command := range commands {
		a.log.WithFields(map[string]any{"mode": name, "key": k.String()}).Debug("running %s", command)
		if err := a.RunCommand(command); err != nil {
			if errors.Is(err, ErrQuit) {
				a.mode = mode.Exit{}
				return nil
			}
			a.ReportError(err)
			a.log.WithFields(map[string]any{"mode": name, "key": k.String()}).Warn("%s: %v", command, err)
			return err
		}
	}
	return nil
}

func (a *Application) handlePaste(text string) {
	switch m := a.mode.(type) {
	case mode.Insert:
		buf, err := a.CurrentBuffer()
		if err != nil {
			return
		}
		at := buf.Cursor()
		if err := buf.InsertAt(at, text); err != nil {
			a.ReportError(err)
			return
		}
		buf.MoveTo(token.Advance(at, text))
		_ = a.ScrollToCursor(buf)
	case *mode.Search:
		if m.InsertMode {
			m.Input += firstLine(text)
		}
	case mode.SearchSelect:
		if p := m.Picker(); p.InsertMode {
			p.Query += firstLine(text)
			a.RefreshPicker(m)
		}
	}
}

// RefreshPicker re-runs a search-select mode's query.
func (a *Application) RefreshPicker(m mode.SearchSelect) {
	set, items := m.Candidates()
	m.Picker().Run(a.matcher, set, items)
}

// StartIndex indexes the workspace for open mode on a goroutine. The
// result arrives as an IndexComplete event.
func (a *Application) StartIndex(root string) {
	workspace.IndexAsync(a.ctx, root, a.prefs.Excluded, func(ic workspace.IndexComplete) {
		a.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: ic})
	})
}

// indexComplete delivers an index to open mode. Results for a mode that
// is no longer active are dropped.
func (a *Application) indexComplete(ic workspace.IndexComplete) {
	open, ok := a.mode.(*mode.Open)
	if !ok || open.Root != ic.Root {
		return
	}
	if ic.Err != nil {
		a.ReportError(WrapError(ic.Err, "indexing %s", ic.Root))
		return
	}
	open.SetIndex(ic.Paths)
	a.matcher.Invalidate("open:" + ic.Root)
	a.RefreshPicker(open)
}

// ReloadPreferences reads the preference file again. On failure the
// current preferences stay in effect.
func (a *Application) ReloadPreferences() {
	log := a.log.WithComponent("config")
	prefs, err := config.Load(a.prefs.Path)
	if err != nil {
		a.ReportError(NewComponentError("config", "reload", err))
		log.Warn("reload failed: %v", err)
		return
	}

	km, err := keymap.Default()
	if err == nil {
		err = mergeOverrides(km, prefs)
	}
	if err != nil {
		a.ReportError(err)
		log.Warn("reload failed: %v", err)
		return
	}

	theme := a.prefs.Theme
	a.prefs, a.keymap = prefs, km
	if prefs.Theme != theme {
		if err := a.SetTheme(prefs.Theme); err != nil {
			a.ReportError(WrapError(err, "loading theme"))
		}
	}
	log.Info("reloaded preferences from %s", prefs.Path)
}

// Suspend hands the terminal back to the shell until the process is
// resumed.
func (a *Application) Suspend() error {
	if err := a.backend.Suspend(); err != nil {
		return NewComponentError("terminal", "suspend", err)
	}
	stopProcess()
	if err := a.backend.Resume(); err != nil {
		return NewComponentError("terminal", "resume", err)
	}
	a.presenter.Screen().MarkFullRedraw()
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
