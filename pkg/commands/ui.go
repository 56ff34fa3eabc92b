package commands

import (
	"io"
	"log"

	"github.com/spf13/cobra"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/runner/ui"
	"tableflip.dev/haeuso/pkg/tui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
haeuso ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			notifier := &tui.Notifier{}
			// Anything written to stderr would tear the screen.
			_, svc, err := openApp(app.LoadOptions{
				Logger:   log.New(io.Discard, "", 0),
				OnChange: notifier.Notify,
			})
			if err != nil {
				return oo.HandleError(err)
			}
			defer svc.Close()

			i := ui.UI{App: svc, Notifier: notifier}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
