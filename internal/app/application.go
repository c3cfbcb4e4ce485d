package app

import (
	"context"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/vantage/internal/config"
	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/input/fuzzy"
	"github.com/dshills/vantage/internal/input/key"
	"github.com/dshills/vantage/internal/input/keymap"
	"github.com/dshills/vantage/internal/input/mode"
	"github.com/dshills/vantage/internal/plugin/lua"
	"github.com/dshills/vantage/internal/renderer"
	"github.com/dshills/vantage/internal/renderer/backend"
	"github.com/dshills/vantage/internal/renderer/highlight"
	"github.com/dshills/vantage/internal/workspace"
)

// Command is a named editor operation.
type Command func(*Application) error

// Registry maps command names to commands.
type Registry map[string]Command

// Options configure a new Application. Backend is required.
type Options struct {
	Backend backend.Backend
	// Preferences default to config.Default().
	Preferences *config.Preferences
	// Keymap defaults to the embedded keymap. Preference overrides are
	// merged into it.
	Keymap   *keymap.Keymap
	Commands Registry
	// Root is the workspace directory. It defaults to the working
	// directory.
	Root string
	// Plugins supplies lua:: commands.
	Plugins *lua.Host
	// Clipboard defaults to an in-process register.
	Clipboard *Clipboard
	Logger    *Logger
}

// Application is the running editor.
type Application struct {
	backend   backend.Backend
	presenter *renderer.Presenter
	workspace *workspace.Workspace
	views     map[uuid.UUID]*View

	mode     mode.Mode
	prefs    *config.Preferences
	keymap   *keymap.Keymap
	commands Registry
	matcher  *fuzzy.Matcher
	plugins  *lua.Host
	clip     *Clipboard
	log      *Logger

	// key is the key press being handled.
	key         key.Event
	searchQuery string
	lastError   error
	// showError is set when the last key press failed.
	showError bool

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates an application in Normal mode with no open buffers.
func New(opts Options) (*Application, error) {
	if opts.Backend == nil {
		return nil, errors.New("app: backend is required")
	}
	prefs := opts.Preferences
	if prefs == nil {
		prefs = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = GetLogger()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = NewClipboard(false)
	}
	root := opts.Root
	if root == "" {
		root, _ = os.Getwd()
	}

	km := opts.Keymap
	if km == nil {
		var err error
		if km, err = keymap.Default(); err != nil {
			return nil, NewComponentError("keymap", "load default", err)
		}
	}
	if err := mergeOverrides(km, prefs); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &Application{
		backend:   opts.Backend,
		workspace: workspace.New(root),
		views:     make(map[uuid.UUID]*View),
		mode:      mode.Normal{},
		prefs:     prefs,
		keymap:    km,
		commands:  opts.Commands,
		matcher:   fuzzy.NewMatcher(fuzzy.DefaultOptions()),
		plugins:   opts.Plugins,
		clip:      clip,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
	}
	if a.commands == nil {
		a.commands = Registry{}
	}

	theme, err := highlight.LoadTheme(prefs.Theme)
	if err != nil {
		a.ReportError(WrapError(err, "loading theme"))
		theme = highlight.DefaultTheme()
	}
	a.presenter = renderer.NewPresenter(opts.Backend, theme)
	return a, nil
}

func mergeOverrides(km *keymap.Keymap, prefs *config.Preferences) error {
	overrides, err := prefs.KeymapOverrides()
	if err != nil {
		return NewComponentError("keymap", "read overrides", err)
	}
	if err := km.Merge(overrides); err != nil {
		return NewComponentError("keymap", "merge overrides", err)
	}
	return nil
}

// Close stops background work started by the application.
func (a *Application) Close() {
	a.cancel()
}

// Context is cancelled when the application closes.
func (a *Application) Context() context.Context { return a.ctx }

func (a *Application) Backend() backend.Backend { return a.backend }
func (a *Application) Presenter() *renderer.Presenter { return a.presenter }
func (a *Application) Workspace() *workspace.Workspace { return a.workspace }
func (a *Application) Preferences() *config.Preferences { return a.prefs }
func (a *Application) Keymap() *keymap.Keymap { return a.keymap }
func (a *Application) Clipboard() *Clipboard { return a.clip }
func (a *Application) Logger() *Logger { return a.log }
func (a *Application) Mode() mode.Mode { return a.mode }
func (a *Application) SetMode(m mode.Mode) { a.mode = m }
func (a *Application) SearchQuery() string { return a.searchQuery }
func (a *Application) SetSearchQuery(q string) { a.searchQuery = q }
func (a *Application) LastError() error { return a.lastError }

// Key returns the key press whose commands are running.
func (a *Application) Key() key.Event { return a.key }

// ReportError records err as the last error and shows it until the next key
// press.
func (a *Application) ReportError(err error) {
	a.lastError = err
	a.showError = true
}

// CurrentBuffer returns the current buffer or ErrBufferMissing.
func (a *Application) CurrentBuffer() (*buffer.Buffer, error) {
	buf, ok := a.workspace.Current()
	if !ok {
		return nil, ErrBufferMissing
	}
	return buf, nil
}

// OpenPath makes the buffer for path current. A path that does not exist
// yet opens an empty buffer that will be created on save.
func (a *Application) OpenPath(path string) (*buffer.Buffer, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.workspace.Root(), path)
	}
	count := a.workspace.Len()

	buf, err := a.workspace.Open(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		buf = a.workspace.NewBuffer()
		buf.SetPath(path)
		buf.SetSyntax(highlight.Detect(path, nil))
	default:
		return nil, NewOperationError("open", a.workspace.Relative(path), err)
	}

	if a.workspace.Len() > count {
		a.ApplySyntaxPreference(buf)
	}
	return buf, nil
}

// ApplySyntaxPreference applies the types.<ext>.syntax preference to buf.
func (a *Application) ApplySyntaxPreference(buf *buffer.Buffer) {
	name, ok := a.prefs.SyntaxFor(buf.Path())
	if !ok {
		return
	}
	if def, ok := highlight.Lookup(name); ok {
		buf.SetSyntax(def)
	}
}

// CommandNames returns every runnable command, sorted.
func (a *Application) CommandNames() []string {
	names := slices.Collect(maps.Keys(a.commands))
	if a.plugins != nil {
		names = append(names, a.plugins.Names()...)
	}
	slices.Sort(names)
	return names
}

// RunCommand runs one command by name.
func (a *Application) RunCommand(name string) error {
	if cmd, ok := a.commands[name]; ok {
		return cmd(a)
	}
	if strings.HasPrefix(name, lua.Prefix) && a.plugins != nil {
		return a.runPlugin(name)
	}
	return WrapError(ErrUnknownCommand, "%s", name)
}

func (a *Application) runPlugin(name string) error {
	buf, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	if err := a.plugins.Run(a.ctx, name, pluginEditor{buf}); err != nil {
		return err
	}
	return a.ScrollToCursor(buf)
}

// SetTheme switches the colour theme.
func (a *Application) SetTheme(name string) error {
	theme, err := highlight.LoadTheme(name)
	if err != nil {
		return err
	}
	a.presenter.SetTheme(theme)
	a.prefs.Theme = name
	return nil
}

// pluginEditor exposes a buffer to Lua commands.
type pluginEditor struct {
	buf *buffer.Buffer
}

func (e pluginEditor) Insert(text string) error {
	return e.buf.InsertAt(e.buf.Cursor(), text)
}

func (e pluginEditor) Cursor() (int, int) {
	c := e.buf.Cursor()
	return c.Line, c.Offset
}

func (e pluginEditor) SetCursor(line, offset int) error {
	p := buffer.Position{Line: line, Offset: offset}
	if !e.buf.MoveTo(p) {
		return WrapError(buffer.ErrPositionOutOfRange, "set cursor %s", p)
	}
	return nil
}

func (e pluginEditor) Line(n int) (string, bool) {
	return e.buf.Line(n)
}
