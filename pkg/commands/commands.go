package commands

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/config"
)

var (
	oo      = &base.OutputOptions{}
	verbose bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "haeuso",
		Short: base.Wrap80("A journal for how you feel that forgets everything after a day."),
		Long: base.Wrap80("Write a few lines about how you feel and get a short, kind reply. " +
			"Only the emotion is kept, and only for 24 hours."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log journal and comfort diagnostics to stderr.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addReflect(topLevel)
	addList(topLevel)
	addDelete(topLevel)
	addInsight(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// cliLogger logs to stderr with --verbose and nowhere otherwise.
func cliLogger() *log.Logger {
	if verbose {
		return log.New(os.Stderr, "haeuso: ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

// openApp loads the configuration and opens the journal. Callers close the
// returned service.
func openApp(opts app.LoadOptions) (*config.Config, *app.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if opts.Logger == nil {
		opts.Logger = cliLogger()
	}
	svc, err := app.Load(cfg, opts)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, svc, nil
}
