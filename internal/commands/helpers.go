package commands

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/dshills/vantage/internal/app"
	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/engine/token"
	"github.com/dshills/vantage/internal/input/mode"
)

// withBuffer adapts a function of the current buffer to a command.
func withBuffer(fn func(*app.Application, *buffer.Buffer) error) app.Command {
	return func(a *app.Application) error {
		buf, err := a.CurrentBuffer()
		if err != nil {
			return err
		}
		return fn(a, buf)
	}
}

// motion runs move and then scrolls the cursor into view.
func motion(move func(*buffer.Buffer)) app.Command {
	return withBuffer(func(a *app.Application, buf *buffer.Buffer) error {
		move(buf)
		return scroll(a, buf)
	})
}

func scroll(a *app.Application, buf *buffer.Buffer) error {
	return a.ScrollToCursor(buf)
}

// clampCursor moves the cursor back inside the buffer after a bulk edit.
func clampCursor(buf *buffer.Buffer) {
	c := buf.Cursor()
	line := min(c.Line, buf.LineCount()-1)
	buf.MoveTo(buffer.Position{Line: line, Offset: min(c.Offset, buf.LineLength(line))})
}

// insertAndAdvance inserts text at the cursor and moves past it.
func insertAndAdvance(buf *buffer.Buffer, text string) error {
	at := buf.Cursor()
	if err := buf.InsertAt(at, text); err != nil {
		return err
	}
	buf.MoveTo(token.Advance(at, text))
	return nil
}

// indentation returns the leading whitespace of s.
func indentation(s string) string {
	return s[:len(s)-len(strings.TrimLeftFunc(s, unicode.IsSpace))]
}

func graphemes(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// popGrapheme removes the last grapheme cluster of s.
func popGrapheme(s string) string {
	end := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		end, _ = g.Positions()
	}
	return s[:end]
}

// targetLines returns the lines a line-oriented command acts on: the
// selected lines in a select mode, otherwise the cursor's line.
func targetLines(a *app.Application, buf *buffer.Buffer) buffer.LineRange {
	line := buf.Cursor().Line
	switch m := a.Mode().(type) {
	case *mode.SelectLine:
		return m.Lines(line)
	case *mode.Select:
		r := m.Range(buf.Cursor())
		return buffer.NewLineRange(r.Start.Line, r.End.Line)
	}
	return buffer.LineRange{Start: line, End: line}
}

// replaceLines swaps lines lr for the given lines as one undo step.
func replaceLines(buf *buffer.Buffer, lr buffer.LineRange, lines []string) {
	all := strings.Split(buf.Data(), "\n")
	next := make([]string, 0, len(all)-(lr.End-lr.Start+1)+len(lines))
	next = append(next, all[:lr.Start]...)
	next = append(next, lines...)
	next = append(next, all[lr.End+1:]...)
	buf.Replace(strings.Join(next, "\n"))
}

// lines returns the text of lr, one entry per line.
func lines(buf *buffer.Buffer, lr buffer.LineRange) []string {
	out := make([]string, 0, lr.End-lr.Start+1)
	for n := lr.Start; n <= lr.End; n++ {
		l, _ := buf.Line(n)
		out = append(out, l)
	}
	return out
}

func toNormal(a *app.Application) {
	a.SetMode(mode.Normal{})
}
