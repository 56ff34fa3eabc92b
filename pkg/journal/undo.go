package journal

import (
	"time"

	"tableflip.dev/haeuso/pkg/clock"
	"tableflip.dev/haeuso/pkg/entry"
)

// undoBuffer holds the single most recently deleted entry.
type undoBuffer struct {
	entry    entry.Entry
	deadline time.Time
	pending  bool
	timer    clock.Timer
	gen      uint64
}

func (u *undoBuffer) clear() {
	if u.timer != nil {
		u.timer.Stop()
		u.timer = nil
	}
	u.entry = entry.Entry{}
	u.deadline = time.Time{}
	u.pending = false
	u.gen++
}

// armUndoLocked replaces any pending entry with e and restarts the window.
func (j *Journal) armUndoLocked(e entry.Entry, now time.Time) {
	j.undo.clear()
	gen := j.undo.gen
	j.undo.entry = e
	j.undo.pending = true
	j.undo.deadline = now.Add(j.undoWindow)
	j.undo.timer = j.clock.AfterFunc(j.undoWindow, func() {
		j.onUndoWindowElapsed(gen)
	})
}

func (j *Journal) onUndoWindowElapsed(gen uint64) {
	j.mu.Lock()
	if j.closed || !j.undo.pending || j.undo.gen != gen {
		j.mu.Unlock()
		return
	}
	j.undo.timer = nil
	j.undo.clear()
	j.mu.Unlock()

	j.notify()
}

// Pending returns the entry awaiting undo and the time its window closes.
func (j *Journal) Pending() (entry.Entry, time.Time, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.undo.pending {
		return entry.Entry{}, time.Time{}, false
	}
	return j.undo.entry, j.undo.deadline, true
}

// Undo restores the most recently deleted entry. It reports false, without
// error, when nothing is pending, when the entry has expired meanwhile, or
// when an entry with the same id is already present.
func (j *Journal) Undo() (entry.Entry, bool, error) {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return entry.Entry{}, false, ErrClosed
	}
	if !j.undo.pending {
		j.mu.Unlock()
		return entry.Entry{}, false, nil
	}
	e := j.undo.entry
	j.undo.clear()

	now := j.clock.Now()
	if !e.Live(now) || entry.IndexOf(j.entries, e.ID) >= 0 {
		j.mu.Unlock()
		j.notify()
		return e, false, nil
	}

	next := make([]entry.Entry, 0, len(j.entries)+1)
	next = append(next, j.entries...)
	next = append(next, e)
	entry.SortNewestFirst(next)
	err := j.commitLocked(next, now)
	j.mu.Unlock()

	j.notify()
	return e, true, err
}

// Dismiss drops the pending entry so it can no longer be restored.
func (j *Journal) Dismiss() {
	j.mu.Lock()
	was := j.undo.pending
	j.undo.clear()
	j.mu.Unlock()

	if was {
		j.notify()
	}
}
