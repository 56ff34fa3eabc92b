package ui

import (
	"context"
	"errors"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/tui"
)

// UI runs the terminal interface.
type UI struct {
	App *app.Service
	// Notifier must be the one whose Notify was given to the journal.
	Notifier *tui.Notifier
}

func (d *UI) Do(ctx context.Context) error {
	if d.App == nil {
		return errors.New("can not open the ui, no journal")
	}
	return tui.Run(ctx, d.App, d.Notifier)
}
