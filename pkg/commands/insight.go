package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/commands/options"
	"tableflip.dev/haeuso/pkg/runner/insight"
)

func addInsight(topLevel *cobra.Command) {
	po := &options.OutputOptions{}
	pe := &options.PeriodOptions{}

	cmd := &cobra.Command{
		Use:     "insight",
		Aliases: []string{"report"},
		Short:   "Summarize the emotions you recorded.",
		Long: base.Wrap80("Counts the recorded emotions, names the one that came up most, " +
			"and adds a short comment. Entries fade after 24 hours, so only the last day " +
			"can ever be counted."),
		Example: `
haeuso insight
haeuso insight --period 30d -o yaml
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return po.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			eh := &base.OutputOptions{JSON: po.JSON()}

			days, err := pe.Days()
			if err != nil {
				return eh.HandleError(err)
			}

			_, svc, err := openApp(app.LoadOptions{})
			if err != nil {
				return eh.HandleError(err)
			}
			defer svc.Close()

			s := insight.Insight{
				App:        svc,
				PeriodDays: days,
				Format:     po.Format,
				Out:        cmd.OutOrStdout(),
			}
			return eh.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, po)
	options.AddPeriodArg(cmd, pe)

	topLevel.AddCommand(cmd)
}
