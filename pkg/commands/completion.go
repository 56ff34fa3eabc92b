package commands

import (
	"context"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/haeuso/pkg/app"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(haeuso completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(haeuso completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// entryCompletions lists active entry ids starting with toComplete.
func entryCompletions(toComplete string) []string {
	_, svc, err := openApp(app.LoadOptions{Logger: log.New(io.Discard, "", 0)})
	if err != nil {
		return nil
	}
	defer svc.Close()

	entries, err := svc.Entries(context.Background())
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.ID, toComplete) {
			ids = append(ids, e.ID+"\t"+string(e.Emotion))
		}
	}
	return ids
}
