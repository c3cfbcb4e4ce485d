package app

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/renderer/rendercache"
	"github.com/dshills/vantage/internal/renderer/viewport"
)

// View is the per-buffer render state: where the buffer is scrolled to and
// the highlighting snapshots taken while drawing it.
type View struct {
	Viewport *viewport.Viewport
	Cache    *rendercache.Cache
}

// View returns the view of buf, creating it on first use. Edits to buf
// invalidate the view's cache from the first changed line.
func (a *Application) View(buf *buffer.Buffer) *View {
	if v, ok := a.views[buf.ID()]; ok {
		return v
	}
	w, h := a.backend.Size()
	v := &View{
		Viewport: viewport.New(w, h),
		Cache:    rendercache.New(),
	}
	buf.SetChangeCallback(v.Cache.InvalidateFrom)
	a.views[buf.ID()] = v
	return v
}

// DropView forgets the view of a closed buffer.
func (a *Application) DropView(id uuid.UUID) {
	delete(a.views, id)
}

func (a *Application) resizedView(buf *buffer.Buffer) *View {
	v := a.View(buf)
	v.Viewport.Resize(a.backend.Size())
	v.Viewport.SetLayout(a.prefs.TabWidthFor(buf.Path()), a.prefs.LineWrapping)
	return v
}

// ScrollToCursor scrolls the least distance that shows buf's cursor.
func (a *Application) ScrollToCursor(buf *buffer.Buffer) error {
	line := buf.Cursor().Line
	if _, ok := buf.Line(line); !ok {
		return errScroll()
	}
	a.resizedView(buf).Viewport.ScrollIntoView(line, buf)
	return nil
}

// ScrollCursorToCenter scrolls so buf's cursor line is centred.
func (a *Application) ScrollCursorToCenter(buf *buffer.Buffer) error {
	line := buf.Cursor().Line
	if _, ok := buf.Line(line); !ok {
		return errScroll()
	}
	a.resizedView(buf).Viewport.ScrollToCenter(line, buf)
	return nil
}

// ScrollBy scrolls buf's view by lines, negative for up.
func (a *Application) ScrollBy(buf *buffer.Buffer, lines int) {
	vp := a.resizedView(buf).Viewport
	if lines < 0 {
		vp.ScrollUp(-lines)
		return
	}
	vp.ScrollDown(lines)
}

// ContentHeight returns the rows available to buffer content.
func (a *Application) ContentHeight(buf *buffer.Buffer) int {
	return a.resizedView(buf).Viewport.Height()
}

func errScroll() error {
	return fmt.Errorf("%w: %w", ErrScrollFailed, ErrCurrentLineMissing)
}
