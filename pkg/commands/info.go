package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/config"
	"tableflip.dev/haeuso/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where entries are stored.",
		Example: `
haeuso info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := config.Load()
			if err != nil {
				return oo.HandleError(err)
			}
			s := info.Info{Config: cfg, Out: cmd.OutOrStdout()}
			if svc, err := app.Load(cfg, app.LoadOptions{Logger: cliLogger()}); err != nil {
				s.OpenErr = err
			} else {
				defer svc.Close()
				s.App = svc
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
