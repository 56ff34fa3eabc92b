package commands

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/commands/options"
	"tableflip.dev/haeuso/pkg/prompt"
	"tableflip.dev/haeuso/pkg/runner/reflection"
)

func addReflect(topLevel *cobra.Command) {
	eo := &options.EmotionOptions{}
	po := &options.OutputOptions{}
	ido := &options.IDOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "reflect [text]",
		Aliases: []string{"write"},
		Short:   "Write how you feel and get a short reply.",
		Long: base.Wrap80("Sends a note about how you feel and prints a short reply. " +
			"The note itself is never stored; only the emotion is recorded, for 24 hours. " +
			"On a terminal you are prompted for whatever is missing. " +
			"Without text on the command line or a terminal, the note is read from stdin."),
		Example: `
haeuso reflect "the meeting ran long and I snapped at a friend" -e angry
haeuso reflect
echo "a quiet day" | haeuso reflect -e calm
`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return po.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			eh := &base.OutputOptions{JSON: po.JSON()}

			interactive := i.Interactive || prompt.Interactive(os.Stdin)
			content := strings.Join(args, " ")
			if strings.TrimSpace(content) == "" {
				var err error
				if interactive {
					content, err = prompt.Content(cmd.InOrStdin(), cmd.OutOrStdout())
				} else {
					content, err = readNote(cmd.InOrStdin())
				}
				if err != nil {
					return eh.HandleError(err)
				}
			}

			em := eo.Emotion
			if !eo.Given() && interactive {
				var err error
				if em, err = prompt.Emotion(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
					return eh.HandleError(err)
				}
			}

			_, svc, err := openApp(app.LoadOptions{})
			if err != nil {
				return eh.HandleError(err)
			}
			defer svc.Close()

			r := reflection.Reflect{
				App:     svc,
				Content: content,
				Emotion: em,
				Format:  po.Format,
				ShowID:  ido.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			return eh.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddEmotionArg(cmd, eo)
	options.AddOutputArg(cmd, po)
	options.AddShowIDArgs(cmd, ido)
	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}

func readNote(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", errors.New("requires a note, as arguments or on stdin")
	}
	return string(b), nil
}
