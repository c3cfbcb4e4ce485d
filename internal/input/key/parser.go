package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key name such as "a", "ctrl-s" or "page_down".
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	var mods Modifier
	// A trailing "-" is the minus key, so only split on hyphens that are
	// followed by something.
	for {
		i := strings.IndexByte(spec, '-')
		if i <= 0 || i == len(spec)-1 {
			break
		}
		mod := modifierFromName(strings.ToLower(spec[:i]))
		if mod == ModNone {
			break
		}
		mods |= mod
		spec = spec[i+1:]
	}

	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return Event{Key: KeyRune, Rune: r, Modifiers: mods}, nil
	}
	if strings.EqualFold(spec, "space") {
		return Event{Key: KeyRune, Rune: ' ', Modifiers: mods}, nil
	}
	if k := KeyFromName(spec); k != KeyNone {
		return Event{Key: k, Modifiers: mods}, nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// MustParse is like Parse but panics on error. It is meant for tests and
// fixed tables.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return e
}
