// Package key describes key presses and the names keymaps use for them.
//
// Names are lower case. Characters name themselves ("a", "A", "%"), special
// keys have word names ("enter", "backspace", "page_down") and modifiers
// prefix the key with a hyphen ("ctrl-a", "alt-enter"). The space bar is
// "space".
package key
