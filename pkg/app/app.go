package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/haeuso/pkg/comfort"
	"tableflip.dev/haeuso/pkg/emotion"
	"tableflip.dev/haeuso/pkg/entry"
	"tableflip.dev/haeuso/pkg/journal"
	"tableflip.dev/haeuso/pkg/store"
)

// Comforter produces replies and period summaries.
type Comforter interface {
	Comfort(ctx context.Context, req comfort.Request) (comfort.Response, error)
	Insight(ctx context.Context, periodDays int, ems []emotion.Emotion) (comfort.Insight, error)
}

// Service provides the operations shared by the CLI, the TUI and the MCP
// server. It wraps the journal and the comfort provider.
type Service struct {
	Journal *journal.Journal
	Comfort Comforter
	// Store is the journal's backend; it is only used for Watch.
	Store store.Backend
}

var (
	// ErrComfortUnavailable wraps comfort failures. Nothing is recorded when
	// it is returned.
	ErrComfortUnavailable = errors.New("app: comfort unavailable")
	// ErrNotFound is returned for ids that are not in the active set.
	ErrNotFound = errors.New("app: entry not found")

	errNoJournal = errors.New("app: no journal configured")
	errNoComfort = errors.New("app: no comfort provider configured")
)

// Reflection is the outcome of Reflect.
type Reflection struct {
	Response comfort.Response `json:"response" yaml:"response"`
	Entry    entry.Entry      `json:"entry" yaml:"entry"`
}

// Reflect asks for a reply to content and, once one arrives, records an
// entry for em. Invalid content is rejected before anything else happens.
// When the entry was recorded but could not be saved, the reflection is
// returned together with the save error.
func (s *Service) Reflect(ctx context.Context, content string, em emotion.Emotion) (Reflection, error) {
	if s.Journal == nil {
		return Reflection{}, errNoJournal
	}
	if s.Comfort == nil {
		return Reflection{}, errNoComfort
	}
	req, err := comfort.Validate(comfort.Request{Content: content, Emotion: em})
	if err != nil {
		return Reflection{}, err
	}
	resp, err := s.Comfort.Comfort(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Reflection{}, ctxErr
		}
		return Reflection{}, fmt.Errorf("%w: %w", ErrComfortUnavailable, err)
	}
	e, err := s.Journal.Add(req.Emotion)
	return Reflection{Response: resp, Entry: e}, err
}

// Entries lists the active entries, most recent first.
func (s *Service) Entries(ctx context.Context) ([]entry.Entry, error) {
	if s.Journal == nil {
		return nil, errNoJournal
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Journal.Entries(), nil
}

// Delete removes the entry id. It stays restorable with Undo for the undo
// window.
func (s *Service) Delete(ctx context.Context, id string) (entry.Entry, error) {
	if s.Journal == nil {
		return entry.Entry{}, errNoJournal
	}
	if err := ctx.Err(); err != nil {
		return entry.Entry{}, err
	}
	e, ok, err := s.Journal.Delete(id)
	if !ok && err == nil {
		return entry.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, err
}

// Undo restores the most recently deleted entry, reporting false when there
// is nothing to restore.
func (s *Service) Undo(ctx context.Context) (entry.Entry, bool, error) {
	if s.Journal == nil {
		return entry.Entry{}, false, errNoJournal
	}
	if err := ctx.Err(); err != nil {
		return entry.Entry{}, false, err
	}
	return s.Journal.Undo()
}

// Pending returns the entry awaiting undo and when its window closes.
func (s *Service) Pending() (entry.Entry, time.Time, bool) {
	if s.Journal == nil {
		return entry.Entry{}, time.Time{}, false
	}
	return s.Journal.Pending()
}

// Dismiss gives up on restoring the pending entry.
func (s *Service) Dismiss() {
	if s.Journal != nil {
		s.Journal.Dismiss()
	}
}

// Now reads the journal's clock.
func (s *Service) Now() time.Time {
	if s.Journal == nil {
		return time.Now()
	}
	return s.Journal.Now()
}

// Watch subscribes to changes other processes make to the store.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Store == nil {
		return nil, store.ErrWatchUnsupported
	}
	return store.Watch(ctx, s.Store)
}

// Follow reloads the journal whenever the store reports a change to it. It
// returns when ctx is done or the watch ends, and returns
// store.ErrWatchUnsupported right away for backends that cannot be watched.
func (s *Service) Follow(ctx context.Context) error {
	if s.Journal == nil {
		return errNoJournal
	}
	events, err := s.Watch(ctx)
	if err != nil {
		return err
	}
	key := s.Journal.Key()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Key != "" && ev.Key != key {
				continue
			}
			if err := s.Journal.Reload(); err != nil {
				return err
			}
		}
	}
}
