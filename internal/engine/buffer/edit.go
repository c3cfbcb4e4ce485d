package buffer

// insertion is a recorded insert of text at a position.
type insertion struct {
	buf  *Buffer
	at   Position
	text string
}

func (e insertion) Apply() {
	e.buf.insertRaw(e.at, e.text)
}

func (e insertion) Revert() {
	e.buf.deleteRaw(Range{Start: e.at, End: endOf(e.at, e.text)})
	e.buf.cursor = e.at
}

// deletion is a recorded removal of a range.
type deletion struct {
	buf     *Buffer
	rng     Range
	removed string
}

func (e deletion) Apply() {
	e.buf.deleteRaw(e.rng)
}

func (e deletion) Revert() {
	e.buf.insertRaw(e.rng.Start, e.removed)
	e.buf.cursor = e.rng.Start
}

// replacement swaps the entire content.
type replacement struct {
	buf      *Buffer
	old, new []string
	// first line that differs between old and new
	from int
}

func (e replacement) Apply() {
	e.buf.setLines(e.new, e.from)
	e.buf.clampCursor()
}

func (e replacement) Revert() {
	e.buf.setLines(e.old, e.from)
	e.buf.clampCursor()
}
