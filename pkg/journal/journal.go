// Package journal holds the working set of journal entries: it loads and
// saves through an Adapter, prunes entries as they expire, and keeps the most
// recently deleted entry restorable for a short grace period.
package journal

import (
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/haeuso/pkg/clock"
	"tableflip.dev/haeuso/pkg/emotion"
	"tableflip.dev/haeuso/pkg/entry"
)

const (
	// DefaultUndoWindow is how long a deleted entry can be restored.
	DefaultUndoWindow = 5 * time.Second
	// DefaultExpirySkew is added to expiry wake-ups so the filter never runs
	// at the exact boundary.
	DefaultExpirySkew = 50 * time.Millisecond
)

var (
	// ErrClosed is returned by mutations after Close.
	ErrClosed = errors.New("journal: closed")
	// ErrNoAdapter is returned by Open without an Adapter.
	ErrNoAdapter = errors.New("journal: no adapter configured")
)

// Options configures Open.
type Options struct {
	Adapter    *Adapter
	Clock      clock.Clock
	UndoWindow time.Duration
	ExpirySkew time.Duration
	NewID      func() string
	Logger     *log.Logger
	// OnChange is called, outside any lock, after the working set or the
	// pending undo changes. Timer-driven changes call it from the timer's
	// goroutine.
	OnChange func()
}

// Journal is the in-memory working set. All methods are safe for concurrent
// use; every transition is serialized.
type Journal struct {
	mu sync.Mutex

	adapter    *Adapter
	clock      clock.Clock
	undoWindow time.Duration
	skew       time.Duration
	newID      func() string
	logger     *log.Logger
	onChange   func()

	entries []entry.Entry
	closed  bool

	expiryTimer clock.Timer
	expiryGen   uint64

	undo undoBuffer
}

// Open loads the journal and arms the expiry timer.
func Open(opts Options) (*Journal, error) {
	if opts.Adapter == nil {
		return nil, ErrNoAdapter
	}
	j := &Journal{
		adapter:    opts.Adapter,
		clock:      opts.Clock,
		undoWindow: opts.UndoWindow,
		skew:       opts.ExpirySkew,
		newID:      opts.NewID,
		logger:     opts.Logger,
		onChange:   opts.OnChange,
	}
	if j.clock == nil {
		j.clock = clock.New()
	}
	if j.undoWindow <= 0 {
		j.undoWindow = DefaultUndoWindow
	}
	if j.skew <= 0 {
		j.skew = DefaultExpirySkew
	}
	if j.newID == nil {
		j.newID = uuid.NewString
	}
	if j.logger == nil {
		j.logger = log.New(os.Stderr, "journal: ", 0)
	}
	if j.adapter.Logger == nil {
		j.adapter.Logger = j.logger
	}

	j.mu.Lock()
	now := j.clock.Now()
	j.entries = j.adapter.Load(now)
	entry.SortNewestFirst(j.entries)
	j.scheduleExpiryLocked(now)
	j.mu.Unlock()

	return j, nil
}

// Now reads the journal's clock.
func (j *Journal) Now() time.Time {
	return j.clock.Now()
}

// Key is the backing-store key the journal lives under.
func (j *Journal) Key() string {
	return j.adapter.key()
}

// Entries returns the active set, most recent first.
func (j *Journal) Entries() []entry.Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return entry.Active(j.entries, j.clock.Now())
}

// Get returns the active entry with id.
func (j *Journal) Get(id string) (entry.Entry, bool) {
	for _, e := range j.Entries() {
		if e.ID == id {
			return e, true
		}
	}
	return entry.Entry{}, false
}

// Add records a new entry for em at the front of the working set. The entry
// is kept in memory even when persisting fails; the error is returned.
func (j *Journal) Add(em emotion.Emotion) (entry.Entry, error) {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return entry.Entry{}, ErrClosed
	}
	now := j.clock.Now()
	id := j.newID()
	for entry.IndexOf(j.entries, id) >= 0 {
		id = j.newID()
	}
	e := entry.New(em, now, id)

	next := make([]entry.Entry, 0, len(j.entries)+1)
	next = append(next, e)
	next = append(next, j.entries...)
	err := j.commitLocked(next, now)
	j.mu.Unlock()

	j.notify()
	return e, err
}

// Delete removes the entry with id and holds it for Undo. It reports false
// when no such entry exists, in which case nothing changes.
func (j *Journal) Delete(id string) (entry.Entry, bool, error) {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return entry.Entry{}, false, ErrClosed
	}
	i := entry.IndexOf(j.entries, id)
	if i < 0 {
		j.mu.Unlock()
		return entry.Entry{}, false, nil
	}
	now := j.clock.Now()
	removed := j.entries[i]

	next := make([]entry.Entry, 0, len(j.entries)-1)
	next = append(next, j.entries[:i]...)
	next = append(next, j.entries[i+1:]...)

	j.armUndoLocked(removed, now)
	err := j.commitLocked(next, now)
	j.mu.Unlock()

	j.notify()
	return removed, true, err
}

// Reload replaces the working set with what the backing store holds. It is
// used when another process changed the store.
func (j *Journal) Reload() error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return ErrClosed
	}
	now := j.clock.Now()
	loaded := j.adapter.Load(now)
	entry.SortNewestFirst(loaded)
	j.entries = loaded
	j.scheduleExpiryLocked(now)
	j.mu.Unlock()

	j.notify()
	return nil
}

// Close cancels both timers. Pending undo state is dropped and later timer
// callbacks do nothing.
func (j *Journal) Close() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return
	}
	j.closed = true
	if j.expiryTimer != nil {
		j.expiryTimer.Stop()
		j.expiryTimer = nil
	}
	j.expiryGen++
	j.undo.clear()
}

// commitLocked makes next the working set, re-arms expiry and persists.
func (j *Journal) commitLocked(next []entry.Entry, now time.Time) error {
	j.entries = entry.Active(next, now)
	j.scheduleExpiryLocked(now)
	return j.adapter.Save(j.entries, now)
}

func (j *Journal) notify() {
	if j.onChange != nil {
		j.onChange()
	}
}
