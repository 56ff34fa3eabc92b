package list

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/entry"
	"tableflip.dev/haeuso/pkg/printers"
)

// List prints the active entries.
type List struct {
	App    *app.Service
	ShowID bool
	Format string
	Out    io.Writer
}

// Listing is the structured form of List's output.
type Listing struct {
	Entries []entry.Entry `json:"entries" yaml:"entries"`
	Count   int           `json:"count" yaml:"count"`
}

func (n *List) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not list, no journal")
	}

	entries, err := n.App.Entries(ctx)
	if err != nil {
		return err
	}

	if n.Format != "" && n.Format != printers.FormatTable {
		out := n.Out
		if out == nil {
			out = color.Output
		}
		return printers.Structured(out, n.Format, Listing{Entries: entries, Count: len(entries)})
	}

	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}
	pp.NewLine()
	pp.TitleWithCount("Last 24 hours", len(entries))
	pp.Entries(n.App.Now(), entries)
	return nil
}
