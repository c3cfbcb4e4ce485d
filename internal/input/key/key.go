package key

import "strings"

// Key identifies a key. Character keys are KeyRune with the character in
// Event.Rune.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

var keyNames = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "page_up",
	KeyPageDown:  "page_down",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
}

var namedKeys = func() map[string]Key {
	m := make(map[string]Key, len(keyNames)+2)
	for k, name := range keyNames {
		m[name] = k
	}
	m["esc"] = KeyEscape
	m["return"] = KeyEnter
	return m
}()

// String returns the key's name.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyRune:
		return "rune"
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// KeyFromName returns the special key with the given name, or KeyNone.
func KeyFromName(name string) Key {
	if k, ok := namedKeys[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k
	}
	return KeyNone
}
