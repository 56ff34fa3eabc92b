package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/haeuso/pkg/emotion"
)

// EmotionOptions holds the --emotion flag. Emotion is Default until the flag
// is given.
type EmotionOptions struct {
	Emotion emotion.Emotion
	set     bool
}

var _ pflag.Value = (*EmotionOptions)(nil)

func (o *EmotionOptions) String() string {
	if o.Emotion == "" {
		return string(emotion.Default)
	}
	return string(o.Emotion)
}

func (o *EmotionOptions) Set(s string) error {
	em, err := emotion.Parse(s)
	if err != nil {
		return err
	}
	o.Emotion = em
	o.set = true
	return nil
}

func (o *EmotionOptions) Type() string { return "emotion" }

// Given reports whether the flag was on the command line.
func (o *EmotionOptions) Given() bool { return o.set }

func AddEmotionArg(cmd *cobra.Command, o *EmotionOptions) {
	o.Emotion = emotion.Default
	cmd.Flags().VarP(o, "emotion", "e",
		"How you feel. One of calm, happy, angry, anxious or sad.")
	_ = cmd.RegisterFlagCompletionFunc("emotion", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return emotion.Names(), cobra.ShellCompDirectiveNoFileComp
	})
}
