package commands

import (
	"maps"

	"github.com/dshills/vantage/internal/app"
)

// Registry returns every command keyed by name.
func Registry() app.Registry {
	r := app.Registry{}
	for _, group := range []app.Registry{
		applicationCommands(),
		bufferCommands(),
		cursorCommands(),
		viewCommands(),
		searchCommands(),
		searchSelectCommands(),
		selectionCommands(),
		workspaceCommands(),
		pathCommands(),
		jumpCommands(),
	} {
		maps.Copy(r, group)
	}
	return r
}
