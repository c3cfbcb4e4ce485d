package commands

import (
	"bytes"
	"os/exec"
	"strings"
	"unicode"

	"github.com/muesli/reflow/wordwrap"

	"github.com/dshills/vantage/internal/app"
	"github.com/dshills/vantage/internal/engine/buffer"
	"github.com/dshills/vantage/internal/engine/token"
	"github.com/dshills/vantage/internal/input/mode"
)

// defaultReflowWidth is used when no line length guide is configured.
const defaultReflowWidth = 80

// commentPrefixes maps lower-cased syntax names to line comment markers.
var commentPrefixes = map[string]string{
	"bash":       "#",
	"c":          "//",
	"c#":         "//",
	"c++":        "//",
	"css":        "//",
	"dockerfile": "#",
	"elixir":     "#",
	"go":         "//",
	"haskell":    "--",
	"java":       "//",
	"javascript": "//",
	"kotlin":     "//",
	"lua":        "--",
	"makefile":   "#",
	"perl":       "#",
	"php":        "//",
	"python":     "#",
	"python 3":   "#",
	"r":          "#",
	"ruby":       "#",
	"rust":       "//",
	"scala":      "//",
	"sql":        "--",
	"swift":      "//",
	"toml":       "#",
	"typescript": "//",
	"yaml":       "#",
	"zig":        "//",
}

func bufferCommands() app.Registry {
	return app.Registry{
		"buffer::save":                       withBuffer(save),
		"buffer::reload":                     withBuffer(reload),
		"buffer::delete":                     withBuffer(deleteChar),
		"buffer::delete_token":               withBuffer(deleteToken),
		"buffer::delete_current_line":        withBuffer(deleteCurrentLine),
		"buffer::copy_current_line":          withBuffer(copyCurrentLine),
		"buffer::merge_next_line":            withBuffer(mergeNextLine),
		"buffer::close":                      withBuffer(closeBuffer),
		"buffer::backspace":                  withBuffer(backspace),
		"buffer::insert_char":                withBuffer(insertChar),
		"buffer::insert_newline":             withBuffer(insertNewline),
		"buffer::indent_line":                withBuffer(indentLine),
		"buffer::outdent_line":               withBuffer(outdentLine),
		"buffer::toggle_line_comment":        withBuffer(toggleLineComment),
		"buffer::change_token":               withBuffer(changeToken),
		"buffer::delete_rest_of_line":        withBuffer(deleteRestOfLine),
		"buffer::change_rest_of_line":        withBuffer(changeRestOfLine),
		"buffer::start_command_group":        withBuffer(startCommandGroup),
		"buffer::end_command_group":          withBuffer(endCommandGroup),
		"buffer::undo":                       withBuffer(undo),
		"buffer::redo":                       withBuffer(redo),
		"buffer::paste":                      withBuffer(paste),
		"buffer::paste_above":                withBuffer(pasteAbove),
		"buffer::remove_trailing_whitespace": withBuffer(removeTrailingWhitespace),
		"buffer::ensure_trailing_newline":    withBuffer(ensureTrailingNewline),
		"buffer::insert_tab":                 withBuffer(insertTab),
		"buffer::format":                     withBuffer(format),
		"buffer::reflow":                     withBuffer(reflowParagraph),
	}
}

// save writes the buffer. An unnamed buffer asks for a path first and is
// saved once one is accepted.
func save(a *app.Application, buf *buffer.Buffer) error {
	if buf.Path() == "" {
		a.SetMode(&mode.Path{Input: initialPath(a, buf), SaveOnAccept: true})
		return nil
	}
	if err := buf.Save(); err != nil {
		return app.NewOperationError("save", a.Workspace().Relative(buf.Path()), err)
	}
	return nil
}

func reload(a *app.Application, buf *buffer.Buffer) error {
	if err := buf.Reload(); err != nil {
		return app.NewOperationError("reload", a.Workspace().Relative(buf.Path()), err)
	}
	return scroll(a, buf)
}

// deleteChar removes the grapheme under the cursor, or the selection in
// the select modes.
func deleteChar(a *app.Application, buf *buffer.Buffer) error {
	switch a.Mode().(type) {
	case *mode.Select, *mode.SelectLine:
		return deleteSelection(a, buf)
	}
	buf.Delete()
	return scroll(a, buf)
}

// tokenEnd returns the position delete_token and change_token stop at:
// the next token start on the cursor's line, or the end of the line.
func tokenEnd(buf *buffer.Buffer, whitespace bool) buffer.Position {
	c := buf.Cursor()
	line, _ := buf.Line(c.Line)
	end := buffer.Position{Line: c.Line, Offset: buf.LineLength(c.Line)}
	if p, ok := token.AdjacentPosition(line, buffer.Position{Offset: c.Offset}, whitespace, token.Forward); ok {
		end.Offset = p.Offset
	}
	return end
}

func deleteToken(a *app.Application, buf *buffer.Buffer) error {
	c := buf.Cursor()
	end := tokenEnd(buf, false)
	if end == c {
		buf.Delete()
	} else if err := buf.DeleteRange(buffer.Range{Start: c, End: end}); err != nil {
		return err
	}
	return scroll(a, buf)
}

func changeToken(a *app.Application, buf *buffer.Buffer) error {
	return change(a, buf, tokenEnd(buf, true))
}

func deleteRestOfLine(a *app.Application, buf *buffer.Buffer) error {
	c := buf.Cursor()
	end := buffer.Position{Line: c.Line, Offset: buf.LineLength(c.Line)}
	if err := buf.DeleteRange(buffer.Range{Start: c, End: end}); err != nil {
		return err
	}
	return scroll(a, buf)
}

func changeRestOfLine(a *app.Application, buf *buffer.Buffer) error {
	c := buf.Cursor()
	return change(a, buf, buffer.Position{Line: c.Line, Offset: buf.LineLength(c.Line)})
}

// change deletes from the cursor to end and enters Insert. The deletion
// and the text typed afterwards undo together.
func change(a *app.Application, buf *buffer.Buffer, end buffer.Position) error {
	buf.StartOperationGroup()
	if err := buf.DeleteRange(buffer.Range{Start: buf.Cursor(), End: end}); err != nil {
		buf.EndOperationGroup()
		return err
	}
	a.SetMode(mode.Insert{})
	return scroll(a, buf)
}

func deleteCurrentLine(a *app.Application, buf *buffer.Buffer) error {
	line := buf.Cursor().Line
	if err := copyCurrentLine(a, buf); err != nil {
		return err
	}
	if err := buf.DeleteLines(buffer.LineRange{Start: line, End: line}); err != nil {
		return err
	}
	clampCursor(buf)
	return scroll(a, buf)
}

func copyCurrentLine(a *app.Application, buf *buffer.Buffer) error {
	line, _ := buf.Line(buf.Cursor().Line)
	return a.Clipboard().Set(app.ClipboardContent{Text: line + "\n", Block: true})
}

// mergeNextLine joins the following line onto the cursor's line with a
// single space, dropping the following line's indentation.
func mergeNextLine(a *app.Application, buf *buffer.Buffer) error {
	n := buf.Cursor().Line
	if n >= buf.LineCount()-1 {
		return nil
	}
	current, _ := buf.Line(n)
	next, _ := buf.Line(n + 1)
	next = strings.TrimLeftFunc(next, unicode.IsSpace)

	joined := current
	if current != "" && next != "" {
		joined += " "
	}
	joined += next
	replaceLines(buf, buffer.LineRange{Start: n, End: n + 1}, []string{joined})
	buf.MoveTo(buffer.Position{Line: n, Offset: graphemes(current)})
	return scroll(a, buf)
}

// closeBuffer closes the current buffer, asking first when it has unsaved
// changes.
func closeBuffer(a *app.Application, buf *buffer.Buffer) error {
	if _, confirmed := a.Mode().(*mode.Confirm); buf.Modified() && !confirmed {
		a.SetMode(&mode.Confirm{Command: "buffer::close"})
		return nil
	}
	if _, err := a.Workspace().CloseCurrent(); err != nil {
		return err
	}
	a.DropView(buf.ID())
	toNormal(a)
	return nil
}

func backspace(a *app.Application, buf *buffer.Buffer) error {
	c := buf.Cursor()
	var start buffer.Position
	switch {
	case c.Offset > 0:
		start = buffer.Position{Line: c.Line, Offset: c.Offset - 1}
	case c.Line > 0:
		start = buffer.Position{Line: c.Line - 1, Offset: buf.LineLength(c.Line - 1)}
	default:
		return nil
	}
	if err := buf.DeleteRange(buffer.Range{Start: start, End: c}); err != nil {
		return err
	}
	buf.MoveTo(start)
	return scroll(a, buf)
}

// insertChar inserts the character of the key press being handled.
func insertChar(a *app.Application, buf *buffer.Buffer) error {
	k := a.Key()
	if !k.IsChar() {
		return nil
	}
	if err := insertAndAdvance(buf, string(k.Rune)); err != nil {
		return err
	}
	return scroll(a, buf)
}

// insertNewline splits the line at the cursor, carrying the line's
// indentation onto the new line.
func insertNewline(a *app.Application, buf *buffer.Buffer) error {
	line, _ := buf.Line(buf.Cursor().Line)
	if err := insertAndAdvance(buf, "\n"+indentation(line)); err != nil {
		return err
	}
	return scroll(a, buf)
}

func insertTab(a *app.Application, buf *buffer.Buffer) error {
	if err := insertAndAdvance(buf, a.Preferences().TabContent(buf.Path())); err != nil {
		return err
	}
	return scroll(a, buf)
}

func indentLine(a *app.Application, buf *buffer.Buffer) error {
	tab := a.Preferences().TabContent(buf.Path())
	return mapLines(a, buf, func(line string) string {
		if line == "" {
			return line
		}
		return tab + line
	})
}

// outdentLine removes one level of indentation: a leading tab, or up to
// a tab width of leading spaces.
func outdentLine(a *app.Application, buf *buffer.Buffer) error {
	width := a.Preferences().TabWidthFor(buf.Path())
	return mapLines(a, buf, func(line string) string {
		if strings.HasPrefix(line, "\t") {
			return line[1:]
		}
		n := 0
		for n < width && n < len(line) && line[n] == ' ' {
			n++
		}
		return line[n:]
	})
}

// toggleLineComment comments out the target lines, or uncomments them
// when every non-blank line already carries the syntax's comment prefix.
func toggleLineComment(a *app.Application, buf *buffer.Buffer) error {
	var prefix string
	if def := buf.Syntax(); def != nil {
		prefix = commentPrefixes[strings.ToLower(def.Name())]
	}
	if prefix == "" {
		return ErrNoCommentPrefix
	}

	commented := true
	for _, line := range lines(buf, targetLines(a, buf)) {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if trimmed != "" && !strings.HasPrefix(trimmed, prefix) {
			commented = false
			break
		}
	}

	return mapLines(a, buf, func(line string) string {
		indent := indentation(line)
		body := line[len(indent):]
		switch {
		case body == "":
			return line
		case commented:
			body = strings.TrimPrefix(body, prefix)
			return indent + strings.TrimPrefix(body, " ")
		default:
			return indent + prefix + " " + body
		}
	})
}

// mapLines rewrites the target lines with fn as one undo step. The cursor
// keeps its distance from the end of its line.
func mapLines(a *app.Application, buf *buffer.Buffer, fn func(string) string) error {
	lr := targetLines(a, buf)
	c := buf.Cursor()
	fromEnd := buf.LineLength(c.Line) - c.Offset

	old := lines(buf, lr)
	next := make([]string, len(old))
	for i, line := range old {
		next[i] = fn(line)
	}
	replaceLines(buf, lr, next)

	buf.MoveTo(buffer.Position{Line: c.Line, Offset: max(buf.LineLength(c.Line)-fromEnd, 0)})
	return scroll(a, buf)
}

func startCommandGroup(_ *app.Application, buf *buffer.Buffer) error {
	buf.StartOperationGroup()
	return nil
}

func endCommandGroup(_ *app.Application, buf *buffer.Buffer) error {
	buf.EndOperationGroup()
	return nil
}

func undo(a *app.Application, buf *buffer.Buffer) error {
	if err := buf.Undo(); err != nil {
		return err
	}
	return scroll(a, buf)
}

func redo(a *app.Application, buf *buffer.Buffer) error {
	if err := buf.Redo(); err != nil {
		return err
	}
	return scroll(a, buf)
}

// paste inserts the clipboard at the cursor. Whole lines go below the
// cursor's line and the cursor moves to the first of them.
func paste(a *app.Application, buf *buffer.Buffer) error {
	content := a.Clipboard().Get()
	if content.Text == "" {
		return nil
	}
	if !content.Block {
		buf.Insert(content.Text)
		return scroll(a, buf)
	}

	line := buf.Cursor().Line
	target := buffer.Position{Line: line + 1}
	if line == buf.LineCount()-1 {
		end := buffer.Position{Line: line, Offset: buf.LineLength(line)}
		if err := buf.InsertAt(end, "\n"+strings.TrimSuffix(content.Text, "\n")); err != nil {
			return err
		}
	} else if err := buf.InsertAt(target, content.Text); err != nil {
		return err
	}
	buf.MoveTo(target)
	return scroll(a, buf)
}

// pasteAbove inserts whole lines above the cursor's line. Inline content
// is pasted at the cursor.
func pasteAbove(a *app.Application, buf *buffer.Buffer) error {
	content := a.Clipboard().Get()
	if !content.Block {
		return paste(a, buf)
	}
	target := buffer.Position{Line: buf.Cursor().Line}
	if err := buf.InsertAt(target, content.Text); err != nil {
		return err
	}
	buf.MoveTo(target)
	return scroll(a, buf)
}

func removeTrailingWhitespace(a *app.Application, buf *buffer.Buffer) error {
	all := strings.Split(buf.Data(), "\n")
	for i, line := range all {
		all[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	buf.Replace(strings.Join(all, "\n"))
	clampCursor(buf)
	return scroll(a, buf)
}

func ensureTrailingNewline(_ *app.Application, buf *buffer.Buffer) error {
	last := buf.LineCount() - 1
	if buf.LineLength(last) == 0 {
		return nil
	}
	return buf.InsertAt(buffer.Position{Line: last, Offset: buf.LineLength(last)}, "\n")
}

// format pipes the buffer through the formatter configured for its
// syntax and replaces the content with the result.
func format(a *app.Application, buf *buffer.Buffer) error {
	var syntax string
	if def := buf.Syntax(); def != nil {
		syntax = def.Name()
	}
	argv, ok := a.Preferences().FormatCommand(syntax)
	if !ok || len(argv) == 0 {
		return app.WrapError(ErrNoFormatter, "%s", syntax)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(a.Context(), argv[0], argv[1:]...)
	cmd.Dir = a.Workspace().Root()
	cmd.Stdin = strings.NewReader(buf.Data())
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		opErr := app.NewOperationError("format", a.Workspace().Relative(buf.Path()), err)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			opErr = opErr.WithContext(firstLine(msg))
		}
		return opErr
	}

	buf.Replace(stdout.String())
	clampCursor(buf)
	return scroll(a, buf)
}

// reflowParagraph rewraps the paragraph around the cursor to the first
// line length guide.
func reflowParagraph(a *app.Application, buf *buffer.Buffer) error {
	n := buf.Cursor().Line
	if blank(buf, n) {
		return nil
	}
	lr := buffer.LineRange{Start: n, End: n}
	for lr.Start > 0 && !blank(buf, lr.Start-1) {
		lr.Start--
	}
	for lr.End < buf.LineCount()-1 && !blank(buf, lr.End+1) {
		lr.End++
	}
	return reflowLines(a, buf, lr)
}

func blank(buf *buffer.Buffer, n int) bool {
	line, _ := buf.Line(n)
	return strings.TrimSpace(line) == ""
}

// reflowLines joins lr into one run of words and wraps it, keeping the
// first line's indentation.
func reflowLines(a *app.Application, buf *buffer.Buffer, lr buffer.LineRange) error {
	width := defaultReflowWidth
	if guides := a.Preferences().LineLengthGuides; len(guides) > 0 && guides[0] > 0 {
		width = guides[0]
	}

	old := lines(buf, lr)
	indent := indentation(old[0])
	words := strings.Fields(strings.Join(old, " "))
	wrapped := wordwrap.String(strings.Join(words, " "), max(width-graphemes(indent), 1))

	next := strings.Split(wrapped, "\n")
	for i, line := range next {
		next[i] = indent + strings.TrimRight(line, " ")
	}
	replaceLines(buf, lr, next)
	buf.MoveTo(buffer.Position{Line: lr.Start, Offset: graphemes(indent)})
	return scroll(a, buf)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
