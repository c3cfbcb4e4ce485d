package app

import "github.com/atotto/clipboard"

// ClipboardContent is copied text. Block content holds whole lines and is
// pasted on its own line.
type ClipboardContent struct {
	Text  string
	Block bool
}

// Clipboard is the copy register. It mirrors the system clipboard when
// one is available and keeps an in-process copy otherwise.
type Clipboard struct {
	system bool
	last   ClipboardContent
}

// NewClipboard creates a clipboard. With system false it never touches
// the system clipboard.
func NewClipboard(system bool) *Clipboard {
	return &Clipboard{system: system && !clipboard.Unsupported}
}

// Set stores content. The in-process copy is kept even when writing the
// system clipboard fails.
func (c *Clipboard) Set(content ClipboardContent) error {
	c.last = content
	if !c.system {
		return nil
	}
	if err := clipboard.WriteAll(content.Text); err != nil {
		return WrapError(err, "writing system clipboard")
	}
	return nil
}

// Get returns the clipboard content. Text copied elsewhere is inline.
func (c *Clipboard) Get() ClipboardContent {
	if !c.system {
		return c.last
	}
	text, err := clipboard.ReadAll()
	if err != nil || text == c.last.Text {
		return c.last
	}
	return ClipboardContent{Text: text}
}
