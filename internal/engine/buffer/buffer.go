package buffer

import (
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dshills/vantage/internal/engine/history"
	"github.com/dshills/vantage/internal/renderer/highlight"
)

// Errors returned by buffer operations.
var (
	ErrPositionOutOfRange = errors.New("position out of range")
	ErrNoPath             = errors.New("buffer has no path")
)

// maxHistory bounds the number of undo steps kept per buffer.
const maxHistory = 1000

// Buffer is an editable document.
type Buffer struct {
	id     uuid.UUID
	lines  []string
	cursor Position
	// sticky is the offset vertical motion tries to return to.
	sticky int

	path   string
	syntax *highlight.Definition

	history       *history.History
	savedChecksum uint64

	onChange func(line int)
}

// New creates an empty, unnamed buffer with plain text syntax.
func New() *Buffer {
	return FromString("")
}

// FromString creates an unnamed buffer holding s.
func FromString(s string) *Buffer {
	b := &Buffer{
		id:      uuid.New(),
		lines:   splitLines(s),
		syntax:  highlight.PlainText(),
		history: history.New(maxHistory),
	}
	b.savedChecksum = b.checksum()
	return b
}

// Load reads a buffer from path and detects its syntax.
func Load(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	b := FromString(string(data))
	b.path = path
	b.syntax = highlight.Detect(path, data)
	return b, nil
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

// ID returns the buffer's unique identifier.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Data returns the full text.
func (b *Buffer) Data() string {
	return strings.Join(b.lines, "\n")
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of line n without its newline.
func (b *Buffer) Line(n int) (string, bool) {
	if n < 0 || n >= len(b.lines) {
		return "", false
	}
	return b.lines[n], true
}

// LineLength returns the grapheme count of line n, or 0 if it doesn't exist.
func (b *Buffer) LineLength(n int) int {
	line, _ := b.Line(n)
	return graphemeCount(line)
}

// Valid returns true if p addresses a grapheme boundary in the buffer.
func (b *Buffer) Valid(p Position) bool {
	if p.Line < 0 || p.Line >= len(b.lines) || p.Offset < 0 {
		return false
	}
	return p.Offset <= graphemeCount(b.lines[p.Line])
}

// Read returns the text in r.
func (b *Buffer) Read(r Range) (string, error) {
	r = b.clampEnd(r)
	if !b.Valid(r.Start) || !b.Valid(r.End) {
		return "", fmt.Errorf("read %s: %w", r, ErrPositionOutOfRange)
	}
	return b.text(r), nil
}

func (b *Buffer) text(r Range) string {
	first := b.lines[r.Start.Line]
	start := byteIndex(first, r.Start.Offset)
	if r.Start.Line == r.End.Line {
		return first[start:byteIndex(first, r.End.Offset)]
	}
	var sb strings.Builder
	sb.WriteString(first[start:])
	for l := r.Start.Line + 1; l < r.End.Line; l++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[l])
	}
	last := b.lines[r.End.Line]
	sb.WriteByte('\n')
	sb.WriteString(last[:byteIndex(last, r.End.Offset)])
	return sb.String()
}

// clampEnd moves an end position past the last line back to the end of the
// buffer.
func (b *Buffer) clampEnd(r Range) Range {
	if r.End.Line >= len(b.lines) {
		last := len(b.lines) - 1
		r.End = Position{Line: last, Offset: graphemeCount(b.lines[last])}
	}
	return r
}

// SetChangeCallback installs fn, called with the first line touched by
// every edit, undo and redo.
func (b *Buffer) SetChangeCallback(fn func(line int)) {
	b.onChange = fn
}

func (b *Buffer) changed(line int) {
	if b.onChange != nil {
		b.onChange(line)
	}
}

func (b *Buffer) insertRaw(at Position, text string) {
	line := b.lines[at.Line]
	i := byteIndex(line, at.Offset)
	parts := splitLines(line[:i] + text + line[i:])

	lines := make([]string, 0, len(b.lines)+len(parts)-1)
	lines = append(lines, b.lines[:at.Line]...)
	lines = append(lines, parts...)
	lines = append(lines, b.lines[at.Line+1:]...)
	b.lines = lines
	b.changed(at.Line)
}

func (b *Buffer) deleteRaw(r Range) {
	first, last := b.lines[r.Start.Line], b.lines[r.End.Line]
	joined := first[:byteIndex(first, r.Start.Offset)] + last[byteIndex(last, r.End.Offset):]

	b.lines = append(b.lines[:r.Start.Line+1], b.lines[r.End.Line+1:]...)
	b.lines[r.Start.Line] = joined
	b.changed(r.Start.Line)
}

func (b *Buffer) setLines(lines []string, from int) {
	b.lines = append([]string(nil), lines...)
	b.changed(from)
}

// Insert inserts text at the cursor. The cursor does not move.
func (b *Buffer) Insert(text string) {
	_ = b.InsertAt(b.cursor, text)
}

// InsertAt inserts text at p.
func (b *Buffer) InsertAt(p Position, text string) error {
	if !b.Valid(p) {
		return fmt.Errorf("insert at %s: %w", p, ErrPositionOutOfRange)
	}
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	edit := insertion{buf: b, at: p, text: text}
	edit.Apply()
	b.history.Push(edit)
	return nil
}

// Delete removes the grapheme at the cursor, joining the next line when the
// cursor is at the end of a line.
func (b *Buffer) Delete() {
	end := Position{Line: b.cursor.Line, Offset: b.cursor.Offset + 1}
	if !b.Valid(end) {
		end = Position{Line: b.cursor.Line + 1}
	}
	_ = b.DeleteRange(Range{Start: b.cursor, End: end})
}

// DeleteRange removes the text in r. An end past the last line is clamped
// to the end of the buffer.
func (b *Buffer) DeleteRange(r Range) error {
	r = b.clampEnd(r)
	if !b.Valid(r.Start) || !b.Valid(r.End) {
		return fmt.Errorf("delete %s: %w", r, ErrPositionOutOfRange)
	}
	if !r.Start.Before(r.End) {
		return nil
	}
	edit := deletion{buf: b, rng: r, removed: b.text(r)}
	edit.Apply()
	b.history.Push(edit)
	return nil
}

// DeleteLines removes whole lines along with one separating newline.
func (b *Buffer) DeleteLines(lr LineRange) error {
	if lr.Start < 0 || lr.End >= len(b.lines) {
		return fmt.Errorf("delete lines %d-%d: %w", lr.Start, lr.End, ErrPositionOutOfRange)
	}
	r := lr.Range()
	if lr.End == len(b.lines)-1 && lr.Start > 0 {
		// No trailing newline on the last line; take the preceding one.
		r.Start = Position{Line: lr.Start - 1, Offset: graphemeCount(b.lines[lr.Start-1])}
	}
	return b.DeleteRange(r)
}

// Replace swaps the whole content for s as a single undo step. Change
// notification starts at the first line that differs.
func (b *Buffer) Replace(s string) {
	next := splitLines(s)
	if strings.Join(next, "\n") == b.Data() {
		return
	}
	edit := replacement{
		buf:  b,
		old:  append([]string(nil), b.lines...),
		new:  next,
		from: firstChangedLine(b.Data(), strings.Join(next, "\n")),
	}
	edit.Apply()
	b.history.Push(edit)
}

// firstChangedLine diffs a and b line by line and returns the index of the
// first line that differs.
func firstChangedLine(a, b string) int {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	if len(diffs) == 0 || diffs[0].Type != diffmatchpatch.DiffEqual {
		return 0
	}
	return strings.Count(diffs[0].Text, "\n")
}

// StartOperationGroup begins coalescing edits into one undo step.
func (b *Buffer) StartOperationGroup() {
	b.history.BeginGroup()
}

// EndOperationGroup closes the current undo step.
func (b *Buffer) EndOperationGroup() {
	b.history.EndGroup()
}

// Undo reverts the most recent undo step and moves the cursor to it.
func (b *Buffer) Undo() error {
	if _, err := b.history.Undo(); err != nil {
		return err
	}
	b.clampCursor()
	return nil
}

// Redo re-applies the most recently undone step.
func (b *Buffer) Redo() error {
	if _, err := b.history.Redo(); err != nil {
		return err
	}
	b.clampCursor()
	return nil
}

func (b *Buffer) checksum() uint64 {
	h := fnv.New64a()
	for i, l := range b.lines {
		if i > 0 {
			_, _ = h.Write([]byte{'\n'})
		}
		_, _ = h.Write([]byte(l))
	}
	return h.Sum64()
}

// Modified returns true if the content differs from the last save or load.
func (b *Buffer) Modified() bool {
	return b.checksum() != b.savedChecksum
}

// Path returns the file path, or "" for an unnamed buffer.
func (b *Buffer) Path() string {
	return b.path
}

// SetPath sets the file path used by Save and Reload.
func (b *Buffer) SetPath(path string) {
	b.path = path
}

// FileName returns the base name of the path.
func (b *Buffer) FileName() string {
	if b.path == "" {
		return ""
	}
	return filepath.Base(b.path)
}

// Save writes the content to the buffer's path.
func (b *Buffer) Save() error {
	if b.path == "" {
		return ErrNoPath
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(b.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(b.path, []byte(b.Data()), mode); err != nil {
		return fmt.Errorf("save %s: %w", b.path, err)
	}
	b.savedChecksum = b.checksum()
	return nil
}

// Reload replaces the content with the file on disk. The history is
// discarded.
func (b *Buffer) Reload() error {
	if b.path == "" {
		return ErrNoPath
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		return fmt.Errorf("reload %s: %w", b.path, err)
	}
	b.setLines(splitLines(string(data)), 0)
	b.history.Clear()
	b.savedChecksum = b.checksum()
	b.clampCursor()
	return nil
}

// Search returns the start of every literal, case-sensitive match of query
// in document order. Matches do not span lines.
func (b *Buffer) Search(query string) []Position {
	if query == "" {
		return nil
	}
	var results []Position
	for n, line := range b.lines {
		for from := 0; ; {
			i := strings.Index(line[from:], query)
			if i < 0 {
				break
			}
			results = append(results, Position{Line: n, Offset: graphemeCount(line[:from+i])})
			from += i + len(query)
		}
	}
	return results
}

// Syntax returns the definition used to highlight the buffer.
func (b *Buffer) Syntax() *highlight.Definition {
	return b.syntax
}

// SetSyntax changes the highlighting definition. The whole buffer is
// reported as changed so cached render state is rebuilt.
func (b *Buffer) SetSyntax(def *highlight.Definition) {
	b.syntax = def
	b.changed(0)
}
