package workspace

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/vantage/internal/engine/buffer"
)

// ErrNoBuffer is returned when an operation needs a current buffer and
// there is none.
var ErrNoBuffer = errors.New("no buffer open")

// Workspace is an ordered list of open buffers with one of them current.
type Workspace struct {
	root    string
	buffers []*buffer.Buffer
	current int
}

// New creates an empty workspace rooted at root.
func New(root string) *Workspace {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Workspace{root: root, current: -1}
}

// Root returns the workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

// Len returns the number of open buffers.
func (w *Workspace) Len() int {
	return len(w.buffers)
}

// Current returns the current buffer.
func (w *Workspace) Current() (*buffer.Buffer, bool) {
	if w.current < 0 {
		return nil, false
	}
	return w.buffers[w.current], true
}

// Add appends buf and makes it current.
func (w *Workspace) Add(buf *buffer.Buffer) {
	w.buffers = append(w.buffers, buf)
	w.current = len(w.buffers) - 1
}

// NewBuffer adds an empty, unnamed buffer and makes it current.
func (w *Workspace) NewBuffer() *buffer.Buffer {
	buf := buffer.New()
	w.Add(buf)
	return buf
}

// Open makes the buffer for path current, loading it if it is not already
// open. Relative paths are resolved against the root.
func (w *Workspace) Open(path string) (*buffer.Buffer, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.root, path)
	}
	path = filepath.Clean(path)

	for i, b := range w.buffers {
		if b.Path() == path {
			w.current = i
			return b, nil
		}
	}

	buf, err := buffer.Load(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", w.Relative(path), err)
	}
	w.Add(buf)
	return buf, nil
}

// Select makes the buffer with id current.
func (w *Workspace) Select(id uuid.UUID) bool {
	for i, b := range w.buffers {
		if b.ID() == id {
			w.current = i
			return true
		}
	}
	return false
}

// Next makes the following buffer current, wrapping.
func (w *Workspace) Next() {
	if len(w.buffers) > 0 {
		w.current = (w.current + 1) % len(w.buffers)
	}
}

// Previous makes the preceding buffer current, wrapping.
func (w *Workspace) Previous() {
	if len(w.buffers) > 0 {
		w.current = (w.current + len(w.buffers) - 1) % len(w.buffers)
	}
}

// CloseCurrent removes the current buffer and returns it. The buffer
// before it becomes current.
func (w *Workspace) CloseCurrent() (*buffer.Buffer, error) {
	buf, ok := w.Current()
	if !ok {
		return nil, ErrNoBuffer
	}
	w.buffers = append(w.buffers[:w.current], w.buffers[w.current+1:]...)
	switch {
	case len(w.buffers) == 0:
		w.current = -1
	case w.current > 0:
		w.current--
	}
	return buf, nil
}

// Relative returns path relative to the root when it lies inside it.
func (w *Workspace) Relative(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || !filepath.IsLocal(rel) {
		return path
	}
	return rel
}
