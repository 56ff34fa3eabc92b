package app

import (
	"errors"
	"fmt"
	"log"

	"tableflip.dev/haeuso/pkg/clock"
	"tableflip.dev/haeuso/pkg/comfort"
	"tableflip.dev/haeuso/pkg/config"
	"tableflip.dev/haeuso/pkg/journal"
	"tableflip.dev/haeuso/pkg/store"
)

// LoadOptions configures Load.
type LoadOptions struct {
	// Logger is shared by the journal and the comfort provider. Nil logs to
	// stderr with per-component prefixes.
	Logger *log.Logger
	// OnChange is handed to the journal.
	OnChange func()
	Clock    clock.Clock
	// Completer replaces the LLM client built from cfg.
	Completer comfort.Completer
}

// Load builds a Service from cfg: the selected store backend, the journal on
// top of it and the comfort provider. Close releases both.
func Load(cfg *config.Config, opts LoadOptions) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("app: no config")
	}

	backend, err := store.Load(cfg)
	if err != nil {
		return nil, fmt.Errorf("app: opening %s store: %w", cfg.Mode(), err)
	}

	adapter := journal.NewAdapter(backend)
	j, err := journal.Open(journal.Options{
		Adapter:  adapter,
		Clock:    opts.Clock,
		Logger:   opts.Logger,
		OnChange: opts.OnChange,
	})
	if err != nil {
		_ = store.Close(backend)
		return nil, err
	}

	completer := opts.Completer
	if completer == nil {
		completer = comfort.NewClient(cfg.LLM.APIKey,
			comfort.WithModel(cfg.LLM.Model),
			comfort.WithBaseURL(cfg.LLM.BaseURL),
			comfort.WithTimeout(cfg.LLM.Timeout),
		)
	}

	return &Service{
		Journal: j,
		Store:   backend,
		Comfort: comfort.New(comfort.Options{
			Mode:     comfort.Mode(cfg.LLM.Mode),
			LLM:      completer,
			Fallback: cfg.LLM.Fallback,
			Logger:   opts.Logger,
		}),
	}, nil
}

// Close stops the journal's timers and releases the backend.
func (s *Service) Close() error {
	if s.Journal != nil {
		s.Journal.Close()
	}
	if s.Store != nil {
		return store.Close(s.Store)
	}
	return nil
}
