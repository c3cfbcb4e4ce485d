package key

import (
	"strings"
	"unicode"

	"github.com/dshills/vantage/internal/renderer/backend"
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// Rune returns a character key press.
func Rune(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// Ctrl returns a control chord.
func Ctrl(r rune) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: ModCtrl}
}

// Special returns a special key press.
func Special(k Key) Event {
	return Event{Key: k}
}

// IsChar reports whether the event types a printable character.
func (e Event) IsChar() bool {
	return e.Key == KeyRune && !e.Modifiers.Has(ModCtrl|ModAlt) && unicode.IsPrint(e.Rune)
}

// String returns the keymap name of the event.
func (e Event) String() string {
	var sb strings.Builder
	if e.Modifiers.Has(ModCtrl) {
		sb.WriteString("ctrl-")
	}
	if e.Modifiers.Has(ModAlt) {
		sb.WriteString("alt-")
	}
	// Shift is already part of a character.
	if e.Modifiers.Has(ModShift) && e.Key != KeyRune {
		sb.WriteString("shift-")
	}
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		sb.WriteString("space")
	case e.Key == KeyRune:
		sb.WriteRune(e.Rune)
	default:
		sb.WriteString(e.Key.String())
	}
	return sb.String()
}

// FromBackend converts a terminal key event.
func FromBackend(ev backend.Event) (Event, bool) {
	if ev.Type != backend.EventKey {
		return Event{}, false
	}
	k, ok := backendKeys[ev.Key]
	if !ok {
		return Event{}, false
	}
	var mods Modifier
	if ev.Mod.Has(backend.ModShift) {
		mods |= ModShift
	}
	if ev.Mod.Has(backend.ModCtrl) {
		mods |= ModCtrl
	}
	if ev.Mod.Has(backend.ModAlt) {
		mods |= ModAlt
	}
	e := Event{Key: k, Modifiers: mods}
	if k == KeyRune {
		e.Rune = ev.Rune
	}
	return e, true
}

var backendKeys = map[backend.Key]Key{
	backend.KeyRune:      KeyRune,
	backend.KeyEscape:    KeyEscape,
	backend.KeyEnter:     KeyEnter,
	backend.KeyTab:       KeyTab,
	backend.KeyBacktab:   KeyBacktab,
	backend.KeyBackspace: KeyBackspace,
	backend.KeyDelete:    KeyDelete,
	backend.KeyInsert:    KeyInsert,
	backend.KeyHome:      KeyHome,
	backend.KeyEnd:       KeyEnd,
	backend.KeyPageUp:    KeyPageUp,
	backend.KeyPageDown:  KeyPageDown,
	backend.KeyUp:        KeyUp,
	backend.KeyDown:      KeyDown,
	backend.KeyLeft:      KeyLeft,
	backend.KeyRight:     KeyRight,
}
