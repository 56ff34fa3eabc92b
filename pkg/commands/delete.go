package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	var id string

	cmd := &cobra.Command{
		Use:     "delete <entry id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry before it fades on its own.",
		Long: `Delete an entry by id. Use 'haeuso list --show-id' to find ids.

Deletes from the command line are final; the ui offers a few seconds to undo.`,
		Example: `
haeuso delete 3f1c9a52-7d0e-4d47-9a3e-0c1a5c7e2b11
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				return errors.New("requires one entry id")
			}
			id = strings.TrimSpace(args[0])
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return entryCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, svc, err := openApp(app.LoadOptions{})
			if err != nil {
				return oo.HandleError(err)
			}
			defer svc.Close()

			s := remove.Remove{
				App: svc,
				ID:  id,
				Out: cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
