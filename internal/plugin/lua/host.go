package lua

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// Prefix is prepended to registered names in the command registry.
const Prefix = "lua::"

// Editor is the document access a running command has. Lines and offsets
// are 0-based.
type Editor interface {
	Insert(text string) error
	Cursor() (line, offset int)
	SetCursor(line, offset int) error
	Line(n int) (string, bool)
}

// Host owns a Lua state and the commands its scripts registered. Calls
// are serialized.
type Host struct {
	mu       sync.Mutex
	L        *lua.LState
	commands map[string]*lua.LFunction
	timeout  time.Duration
	closed   bool

	// editor is set while a command runs.
	editor Editor
}

// NewHost creates a host with the vantage module installed.
func NewHost(opts ...Option) *Host {
	h := &Host{
		L:        newState(),
		commands: make(map[string]*lua.LFunction),
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.L.SetGlobal("vantage", h.L.SetFuncs(h.L.NewTable(), map[string]lua.LGFunction{
		"register":   h.register,
		"insert":     h.insert,
		"cursor":     h.cursor,
		"set_cursor": h.setCursor,
		"line":       h.line,
	}))
	return h
}

// LoadFile runs a script, collecting the commands it registers.
func (h *Host) LoadFile(ctx context.Context, path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrStateClosed
	}
	if err := h.protect(ctx, func() error { return h.L.DoFile(path) }); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// LoadString runs script source. name identifies it in errors.
func (h *Host) LoadString(ctx context.Context, name, source string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrStateClosed
	}
	if err := h.protect(ctx, func() error { return h.L.DoString(source) }); err != nil {
		return fmt.Errorf("loading %s: %w", name, err)
	}
	return nil
}

// Names returns the registered commands with their prefix, sorted.
func (h *Host) Names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.commands))
	for name := range h.commands {
		names = append(names, Prefix+name)
	}
	slices.Sort(names)
	return names
}

// Run calls a registered command against ed. name may carry the prefix.
func (h *Host) Run(ctx context.Context, name string, ed Editor) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrStateClosed
	}

	name = strings.TrimPrefix(name, Prefix)
	fn, ok := h.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	h.editor = ed
	defer func() { h.editor = nil }()

	err := h.protect(ctx, func() error {
		return h.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true})
	})
	if err != nil {
		return fmt.Errorf("%s%s: %w", Prefix, name, err)
	}
	return nil
}

// Close releases the Lua state.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.closed {
		h.L.Close()
		h.closed = true
	}
}

func (h *Host) register(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if name == "" {
		L.ArgError(1, "command name must not be empty")
		return 0
	}
	h.commands[name] = fn
	return 0
}

func (h *Host) current(L *lua.LState) Editor {
	if h.editor == nil {
		L.RaiseError("%s", ErrNoEditor)
	}
	return h.editor
}

func (h *Host) insert(L *lua.LState) int {
	ed := h.current(L)
	if err := ed.Insert(L.CheckString(1)); err != nil {
		L.RaiseError("%s", err)
	}
	return 0
}

func (h *Host) cursor(L *lua.LState) int {
	line, offset := h.current(L).Cursor()
	L.Push(lua.LNumber(line + 1))
	L.Push(lua.LNumber(offset + 1))
	return 2
}

func (h *Host) setCursor(L *lua.LState) int {
	ed := h.current(L)
	line, offset := L.CheckInt(1), L.CheckInt(2)
	if err := ed.SetCursor(line-1, offset-1); err != nil {
		L.RaiseError("%s", err)
	}
	return 0
}

func (h *Host) line(L *lua.LState) int {
	ed := h.current(L)
	text, ok := ed.Line(L.CheckInt(1) - 1)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(text))
	return 1
}
