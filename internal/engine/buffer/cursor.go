package buffer

// Cursor returns the cursor position.
func (b *Buffer) Cursor() Position {
	return b.cursor
}

// MoveTo moves the cursor to p. It returns false and leaves the cursor in
// place if p is not a valid position.
func (b *Buffer) MoveTo(p Position) bool {
	if !b.Valid(p) {
		return false
	}
	b.cursor = p
	b.sticky = p.Offset
	return true
}

// MoveUp moves the cursor up a line, keeping its preferred offset.
func (b *Buffer) MoveUp() {
	if b.cursor.Line > 0 {
		b.moveVertical(b.cursor.Line - 1)
	}
}

// MoveDown moves the cursor down a line, keeping its preferred offset.
func (b *Buffer) MoveDown() {
	if b.cursor.Line < len(b.lines)-1 {
		b.moveVertical(b.cursor.Line + 1)
	}
}

func (b *Buffer) moveVertical(line int) {
	b.cursor = Position{Line: line, Offset: min(b.sticky, b.LineLength(line))}
}

// MoveLeft moves the cursor one grapheme left within its line.
func (b *Buffer) MoveLeft() {
	if b.cursor.Offset > 0 {
		b.MoveTo(Position{Line: b.cursor.Line, Offset: b.cursor.Offset - 1})
	}
}

// MoveRight moves the cursor one grapheme right within its line.
func (b *Buffer) MoveRight() {
	b.MoveTo(Position{Line: b.cursor.Line, Offset: b.cursor.Offset + 1})
}

// MoveToStartOfLine moves the cursor to offset 0.
func (b *Buffer) MoveToStartOfLine() {
	b.MoveTo(Position{Line: b.cursor.Line})
}

// MoveToEndOfLine moves the cursor past the last grapheme of its line.
func (b *Buffer) MoveToEndOfLine() {
	b.MoveTo(Position{Line: b.cursor.Line, Offset: b.LineLength(b.cursor.Line)})
}

// MoveToFirstLine moves the cursor to the start of the buffer.
func (b *Buffer) MoveToFirstLine() {
	b.MoveTo(Position{})
}

// MoveToLastLine moves the cursor to the start of the last line.
func (b *Buffer) MoveToLastLine() {
	b.MoveTo(Position{Line: len(b.lines) - 1})
}

// clampCursor pulls the cursor back inside the buffer after an edit that
// removed text under it.
func (b *Buffer) clampCursor() {
	line := min(b.cursor.Line, len(b.lines)-1)
	b.cursor = Position{Line: line, Offset: min(b.cursor.Offset, b.LineLength(line))}
}
