package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/haeuso/pkg/entry"
	"tableflip.dev/haeuso/pkg/store"
)

// DefaultKey is the backing-store key holding the journal.
const DefaultKey = "haeuso.journal"

// Adapter loads and saves the active set against a store.Backend.
type Adapter struct {
	Backend store.Backend
	Key     string
	NewID   func() string
	Logger  *log.Logger
}

// NewAdapter returns an Adapter using the default key and uuid ids.
func NewAdapter(b store.Backend) *Adapter {
	return &Adapter{Backend: b}
}

func (a *Adapter) key() string {
	if a.Key == "" {
		return DefaultKey
	}
	return a.Key
}

func (a *Adapter) newID() string {
	if a.NewID != nil {
		return a.NewID()
	}
	return uuid.NewString()
}

func (a *Adapter) logger() *log.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return log.New(os.Stderr, "journal: ", 0)
}

// Load reads the journal as of now. It never fails: missing, unreadable or
// malformed data yields an empty set. When normalization or expiry drops
// records, the pruned set is written back immediately.
func (a *Adapter) Load(now time.Time) []entry.Entry {
	if a.Backend == nil {
		return []entry.Entry{}
	}
	raw, ok, err := a.Backend.Get(a.key())
	if err != nil {
		a.logger().Printf("load %s: %v", a.key(), err)
		return []entry.Entry{}
	}
	if !ok {
		return []entry.Entry{}
	}

	decoded, ok := entry.DecodeList([]byte(raw), now, a.newID)
	if !ok {
		a.logger().Printf("load %s: stored value is not a list, ignoring it", a.key())
		return []entry.Entry{}
	}

	active := entry.Dedupe(entry.Active(decoded, now))
	if len(active) != len(decoded) {
		if err := a.Save(active, now); err != nil {
			a.logger().Printf("compact %s: %v", a.key(), err)
		}
	}
	return active
}

// Save writes the entries still active at now. Expired entries are never
// persisted. Errors from the backing store are returned.
func (a *Adapter) Save(entries []entry.Entry, now time.Time) error {
	if a.Backend == nil {
		return errors.New("journal: no backing store configured")
	}
	active := entry.Active(entries, now)
	data, err := json.Marshal(active)
	if err != nil {
		return fmt.Errorf("journal: encode: %w", err)
	}
	if err := a.Backend.Set(a.key(), string(data)); err != nil {
		return fmt.Errorf("journal: save: %w", err)
	}
	return nil
}

// discardLogger is handed to components running under a full-screen UI.
var discardLogger = log.New(io.Discard, "", 0)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *log.Logger {
	return discardLogger
}
