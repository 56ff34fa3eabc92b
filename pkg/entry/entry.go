// Package entry defines the journal record kept after a reflection, the
// normalizer that reads persisted records of any vintage, and the active-set
// filter that enforces the time-to-live.
package entry

import (
	"sort"
	"time"

	"tableflip.dev/haeuso/pkg/emotion"
)

// TTL is how long an entry stays in the journal after it is created.
const TTL = 24 * time.Hour

// Entry is the metadata of one reflection. The reflection text is never kept.
type Entry struct {
	ID        string          `json:"id" yaml:"id"`
	Date      string          `json:"date" yaml:"date"`
	Emotion   emotion.Emotion `json:"emotion" yaml:"emotion"`
	CreatedAt Timestamp       `json:"createdAt" yaml:"createdAt"`
	ExpiresAt Timestamp       `json:"expiresAt" yaml:"expiresAt"`
}

// New creates an entry for a reflection submitted at now. Times are kept at
// the millisecond precision they are persisted with.
func New(e emotion.Emotion, now time.Time, id string) Entry {
	if !e.Valid() {
		e = emotion.Default
	}
	now = now.Truncate(time.Millisecond)
	return Entry{
		ID:        id,
		Date:      dayOf(now),
		Emotion:   e,
		CreatedAt: Timestamp{Time: now},
		ExpiresAt: Timestamp{Time: now.Add(TTL)},
	}
}

// Live reports whether the entry is still inside its lifetime at now. A zero
// expiry never counts as live.
func (e Entry) Live(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && e.ExpiresAt.After(now)
}

// Remaining is the time left before the entry expires, never negative.
func (e Entry) Remaining(now time.Time) time.Duration {
	d := e.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Active returns, in order, the entries still live at now.
func Active(entries []Entry, now time.Time) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Live(now) {
			out = append(out, e)
		}
	}
	return out
}

// SortNewestFirst orders entries by creation time, most recent first.
func SortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		lt := entries[i].CreatedAt.Time
		rt := entries[j].CreatedAt.Time
		if lt.Equal(rt) {
			return entries[i].ID < entries[j].ID
		}
		return lt.After(rt)
	})
}

// IndexOf returns the position of id in entries or -1.
func IndexOf(entries []Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// EarliestExpiry returns the soonest expiry among entries.
func EarliestExpiry(entries []Entry) (time.Time, bool) {
	var min time.Time
	for _, e := range entries {
		if e.ExpiresAt.IsZero() {
			continue
		}
		if min.IsZero() || e.ExpiresAt.Before(min) {
			min = e.ExpiresAt.Time
		}
	}
	return min, !min.IsZero()
}

func dayOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
