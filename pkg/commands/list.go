package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/commands/options"
	"tableflip.dev/haeuso/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	po := &options.OutputOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "List the emotions recorded in the last 24 hours.",
		Example: `
haeuso list
haeuso list --show-id
haeuso list -o json
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return po.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			eh := &base.OutputOptions{JSON: po.JSON()}

			_, svc, err := openApp(app.LoadOptions{})
			if err != nil {
				return eh.HandleError(err)
			}
			defer svc.Close()

			s := list.List{
				App:    svc,
				ShowID: ido.ShowID,
				Format: po.Format,
				Out:    cmd.OutOrStdout(),
			}
			return eh.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, po)
	options.AddShowIDArgs(cmd, ido)

	topLevel.AddCommand(cmd)
}
