package key

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// Has returns true if m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// modifierFromName maps a name prefix to its modifier.
func modifierFromName(name string) Modifier {
	switch name {
	case "ctrl", "control", "c":
		return ModCtrl
	case "alt", "meta", "a", "m":
		return ModAlt
	case "shift", "s":
		return ModShift
	default:
		return ModNone
	}
}
