package backend

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/vantage/internal/renderer/core"
)

// Terminal implements Backend using tcell.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	events chan Event
	done   chan struct{}
}

// NewTerminal creates a terminal backend. Init must be called before use.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminalWithScreen(screen), nil
}

func newTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	t.screen.SetStyle(tcell.StyleDefault)

	go t.pump()
	return nil
}

// pump moves tcell events onto the ordered event channel until the screen
// is finalised.
func (t *Terminal) pump() {
	var paste []rune
	pasting := false

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			close(t.events)
			return
		}

		switch e := ev.(type) {
		case *tcell.EventPaste:
			if e.Start() {
				pasting, paste = true, paste[:0]
				continue
			}
			pasting = false
			t.send(Event{Type: EventPaste, PasteText: string(paste)})
			continue
		case *tcell.EventKey:
			if pasting {
				if e.Key() == tcell.KeyEnter {
					paste = append(paste, '\n')
				} else if e.Key() == tcell.KeyRune {
					paste = append(paste, e.Rune())
				}
				continue
			}
		}

		if converted, ok := convertEvent(ev); ok {
			t.send(converted)
		}
	}
}

func (t *Terminal) send(ev Event) {
	select {
	case t.events <- ev:
	case <-t.done:
	}
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	select {
	case <-t.done:
		return
	default:
		close(t.done)
	}
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return clampSize(t.screen.Size())
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cell.Content == "" {
		return
	}
	runes := []rune(cell.Content)
	t.screen.SetContent(x, y, runes[0], runes[1:], convertStyle(cell.Style))
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

func (t *Terminal) SetCursorStyle(style CursorStyle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch style {
	case CursorBlock:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	case CursorUnderline:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyUnderline)
	case CursorBar:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyBar)
	case CursorHidden:
		t.screen.HideCursor()
	}
}

func (t *Terminal) Listen(timeout time.Duration) (Event, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev, ok := <-t.events:
		return ev, ok
	case <-timer.C:
		return Event{}, false
	}
}

func (t *Terminal) PostEvent(event Event) {
	// Everything goes through tcell's queue so posted events keep their
	// order relative to input.
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(event))
}

func (t *Terminal) Suspend() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Suspend()
}

func (t *Terminal) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Resume()
}

// convertStyle converts a core.Style to tcell.Style.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault.
		Foreground(convertColor(s.Foreground)).
		Background(convertColor(s.Background))

	return style.
		Bold(s.Attributes.Has(core.AttrBold)).
		Dim(s.Attributes.Has(core.AttrDim)).
		Italic(s.Attributes.Has(core.AttrItalic)).
		Underline(s.Attributes.Has(core.AttrUnderline)).
		Reverse(s.Attributes.Has(core.AttrReverse))
}

func convertColor(c core.Color) tcell.Color {
	switch {
	case c.IsDefault():
		return tcell.ColorDefault
	case c.Indexed:
		return tcell.PaletteColor(int(c.R))
	default:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
}

// convertEvent converts a tcell event. Mouse and focus events are dropped.
func convertEvent(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, r, mod := convertKey(e.Key(), e.Rune(), e.Modifiers())
		return Event{Type: EventKey, Key: k, Rune: r, Mod: mod}, true
	case *tcell.EventResize:
		w, h := e.Size()
		w, h = clampSize(w, h)
		return Event{Type: EventResize, Width: w, Height: h}, true
	case *tcell.EventInterrupt:
		if posted, ok := e.Data().(Event); ok {
			return posted, true
		}
		return Event{Type: EventInterrupt, Data: e.Data()}, true
	default:
		return Event{}, false
	}
}

// convertKey maps tcell keys onto Key values. Control chords arrive from
// tcell as dedicated keys and are reported here as a rune plus ModCtrl.
func convertKey(k tcell.Key, r rune, m tcell.ModMask) (Key, rune, ModMask) {
	mod := convertMod(m)

	switch k {
	case tcell.KeyRune:
		return KeyRune, r, mod
	case tcell.KeyEscape:
		return KeyEscape, 0, mod
	case tcell.KeyEnter:
		return KeyEnter, 0, mod
	case tcell.KeyTab:
		return KeyTab, 0, mod
	case tcell.KeyBacktab:
		return KeyBacktab, 0, mod
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace, 0, mod
	case tcell.KeyDelete:
		return KeyDelete, 0, mod
	case tcell.KeyInsert:
		return KeyInsert, 0, mod
	case tcell.KeyHome:
		return KeyHome, 0, mod
	case tcell.KeyEnd:
		return KeyEnd, 0, mod
	case tcell.KeyPgUp:
		return KeyPageUp, 0, mod
	case tcell.KeyPgDn:
		return KeyPageDown, 0, mod
	case tcell.KeyUp:
		return KeyUp, 0, mod
	case tcell.KeyDown:
		return KeyDown, 0, mod
	case tcell.KeyLeft:
		return KeyLeft, 0, mod
	case tcell.KeyRight:
		return KeyRight, 0, mod
	}

	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return KeyRune, 'a' + rune(k-tcell.KeyCtrlA), mod | ModCtrl
	}
	if k == tcell.KeyCtrlSpace {
		return KeyRune, ' ', mod | ModCtrl
	}
	return KeyNone, 0, mod
}

func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	return result
}

// graphemes splits s into grapheme clusters.
func graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
