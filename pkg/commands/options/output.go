package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/haeuso/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	Format string
}

func AddOutputArg(cmd *cobra.Command, o *OutputOptions) {
	cmd.Flags().StringVarP(&o.Format, "output", "o", printers.FormatTable,
		"Output format. One of 'table', 'json' or 'yaml'.")
	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{printers.FormatTable, printers.FormatJSON, printers.FormatYAML}, cobra.ShellCompDirectiveNoFileComp
	})
}

// Validate rejects unknown formats.
func (o *OutputOptions) Validate() error {
	switch o.Format {
	case "", printers.FormatTable, printers.FormatJSON, printers.FormatYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (expected table, json or yaml)", o.Format)
}

// JSON reports whether errors should be printed as JSON too.
func (o *OutputOptions) JSON() bool {
	return o.Format == printers.FormatJSON
}
