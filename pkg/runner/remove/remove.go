package remove

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/printers"
)

// Remove deletes one entry by id. The CLI exits right after, so the undo
// window ends with the process.
type Remove struct {
	App *app.Service
	ID  string
	Out io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not delete, no journal")
	}

	e, err := n.App.Delete(ctx, n.ID)
	if err != nil {
		return err
	}
	n.App.Dismiss()

	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Deleted(e)
	return nil
}
