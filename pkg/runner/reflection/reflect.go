package reflection

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/emotion"
	"tableflip.dev/haeuso/pkg/printers"
)

// Reflect asks for a reply to Content and records Emotion.
type Reflect struct {
	App     *app.Service
	Content string
	Emotion emotion.Emotion
	Format  string
	ShowID  bool
	Out     io.Writer
}

func (n *Reflect) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not reflect, no journal")
	}

	r, err := n.App.Reflect(ctx, n.Content, n.Emotion)
	if err != nil && r.Entry.ID == "" {
		return err
	}
	// From here err, if any, is a save failure; the reply is still shown.
	if err != nil {
		err = fmt.Errorf("entry could not be saved: %w", err)
	}

	if n.Format != "" && n.Format != printers.FormatTable {
		if perr := printers.Structured(n.out(), n.Format, r); perr != nil {
			return perr
		}
		return err
	}

	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}
	pp.NewLine()
	pp.Comfort(r.Response)
	pp.Recorded(r.Entry)
	return err
}

func (n *Reflect) out() io.Writer {
	if n.Out == nil {
		return color.Output
	}
	return n.Out
}
