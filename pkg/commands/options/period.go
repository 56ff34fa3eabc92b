package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/haeuso/pkg/timeutil"
)

// PeriodOptions holds the --period flag.
type PeriodOptions struct {
	Period string
}

func AddPeriodArg(cmd *cobra.Command, o *PeriodOptions) {
	cmd.Flags().StringVarP(&o.Period, "period", "p", timeutil.DefaultPeriod,
		`Look back over this long, example: --period=30d. Only 7 and 30 days are summarized.`)
}

// Days converts the period to whole days.
func (o *PeriodOptions) Days() (int, error) {
	return timeutil.ParsePeriod(o.Period)
}
