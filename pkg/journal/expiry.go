package journal

import (
	"time"

	"tableflip.dev/haeuso/pkg/entry"
)

// scheduleExpiryLocked replaces the outstanding prune timer with one that
// fires just after the earliest expiry in the working set.
func (j *Journal) scheduleExpiryLocked(now time.Time) {
	if j.expiryTimer != nil {
		j.expiryTimer.Stop()
		j.expiryTimer = nil
	}
	j.expiryGen++

	earliest, ok := entry.EarliestExpiry(j.entries)
	if !ok || j.closed {
		return
	}
	delay := earliest.Sub(now)
	if delay < 0 {
		delay = 0
	}
	gen := j.expiryGen
	j.expiryTimer = j.clock.AfterFunc(delay+j.skew, func() {
		j.onExpiry(gen)
	})
}

func (j *Journal) onExpiry(gen uint64) {
	j.mu.Lock()
	if j.closed || gen != j.expiryGen {
		// Superseded by a newer schedule.
		j.mu.Unlock()
		return
	}
	j.expiryTimer = nil
	now := j.clock.Now()
	pruned := entry.Active(j.entries, now)
	if len(pruned) == len(j.entries) {
		j.scheduleExpiryLocked(now)
		j.mu.Unlock()
		return
	}
	if err := j.commitLocked(pruned, now); err != nil {
		j.logger.Printf("prune: %v", err)
	}
	j.mu.Unlock()

	j.notify()
}
