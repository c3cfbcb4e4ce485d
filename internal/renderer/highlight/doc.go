// Package highlight adapts chroma lexers and styles to the renderer.
//
// A Definition names the lexer used for a document. ParseState carries the
// lines preceding the one being parsed so that constructs spanning lines
// (block comments, raw strings) colour correctly when rendering resumes in
// the middle of a document. Theme maps token types to cell styles.
package highlight
