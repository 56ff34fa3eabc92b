package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/haeuso/pkg/app"
	"tableflip.dev/haeuso/pkg/config"
	"tableflip.dev/haeuso/pkg/printers"
	"tableflip.dev/haeuso/pkg/store"
	"tableflip.dev/haeuso/pkg/timeutil"
)

type Info struct {
	Config *config.Config
	App    *app.Service
	// OpenErr is why App could not be opened, if it could not.
	OpenErr error
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("HAEUSO_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "HAEUSO_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "HAEUSO_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}
	cfg := n.Config

	file := cfg.File
	if file == "" {
		file = "none"
	}
	_, _ = fmt.Fprintln(out, "Config file:", file)
	_, _ = fmt.Fprintln(out, "Store:", cfg.Mode())
	switch cfg.Mode() {
	case store.ModeDurable:
		_, _ = fmt.Fprintln(out, "Store path:", cfg.BasePath())
	case store.ModeRedis:
		_, _ = fmt.Fprintln(out, "Redis:", cfg.RedisURI())
	}

	key := "not set"
	if cfg.LLM.APIKey != "" {
		key = "set"
	}
	_, _ = fmt.Fprintf(out, "Comfort: %s (model %s, api key %s, fallback %t)\n", cfg.LLM.Mode, cfg.LLM.Model, key, cfg.LLM.Fallback)

	if n.App == nil {
		if n.OpenErr != nil {
			return n.OpenErr
		}
		return errors.New("failed to open the journal")
	}
	entries, err := n.App.Entries(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: out}
	pp.NewLine()
	pp.TitleWithCount("Journal", len(entries))
	if len(entries) > 0 {
		oldest := entries[len(entries)-1]
		_, _ = fmt.Fprintf(out, "  next to fade: %s in %s\n",
			printers.Emotion(oldest.Emotion), timeutil.Remaining(oldest.Remaining(n.App.Now())))
	}
	return nil
}
