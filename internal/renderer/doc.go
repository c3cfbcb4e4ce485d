// Package renderer draws documents and mode chrome into a screen buffer.
//
// BufferRenderer paints the visible lines of a document with syntax
// highlighting, line numbers, selections and jump tags. It resumes
// highlighting from the nearest snapshot in a rendercache.Cache and records
// new snapshots as it goes. Presenter composes a full frame for the
// active mode on top of it: the buffer, the status line, prompts and
// result lists.
package renderer
