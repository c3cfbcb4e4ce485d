// Package app is the editor's mode state machine and event loop.
//
// An Application owns the workspace, the current mode, the per-buffer view
// state and the presenter. Key presses are translated to command names
// through the keymap for the current mode and the commands run in order,
// stopping at the first failure. Every event is followed by one render.
//
// Commands are registered from outside the package:
//
//	application, err := app.New(app.Options{
//	    Backend:  terminal,
//	    Commands: commands.Registry(),
//	})
package app
