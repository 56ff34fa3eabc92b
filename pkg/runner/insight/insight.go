package insight

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/printers"
)

// Insight summarizes the recorded emotions over PeriodDays.
type Insight struct {
	App        *app.Service
	PeriodDays int
	Format     string
	Out        io.Writer
}

func (n *Insight) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not summarize, no journal")
	}

	in, err := n.App.Insight(ctx, n.PeriodDays)
	if err != nil {
		return err
	}

	if n.Format != "" && n.Format != printers.FormatTable {
		out := n.Out
		if out == nil {
			out = color.Output
		}
		return printers.Structured(out, n.Format, in)
	}

	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Insight(in)
	return nil
}
