// Package buffer provides the editable document behind every view.
//
// A Buffer holds its text as lines, a single cursor, an optional file path,
// the syntax definition used to highlight it and an undo history. Positions
// are 0-indexed; Offset counts grapheme clusters from the start of the line,
// which is how the renderer and the cursor commands walk a line.
//
// Basic usage:
//
//	buf := buffer.FromString("hello\nworld")
//	buf.MoveTo(buffer.Position{Line: 1, Offset: 0})
//	buf.Insert("brave ")    // "hello\nbrave world", cursor unchanged
//	buf.Undo()
//
// Edits do not move the cursor. Callers that type text advance the cursor
// themselves, which keeps cursor policy in the command layer.
//
// Every edit reports the first line it touched to the change callback
// installed with SetChangeCallback. Views use it to invalidate render state
// from that line on.
package buffer
