package commands

import "github.com/dshills/vantage/internal/app"

func workspaceCommands() app.Registry {
	return app.Registry{
		"workspace::new_buffer":      newBuffer,
		"workspace::next_buffer":     nextBuffer,
		"workspace::previous_buffer": previousBuffer,
	}
}

func newBuffer(a *app.Application) error {
	a.Workspace().NewBuffer()
	toNormal(a)
	return nil
}

func nextBuffer(a *app.Application) error {
	a.Workspace().Next()
	return nil
}

func previousBuffer(a *app.Application) error {
	a.Workspace().Previous()
	return nil
}
