package app

import (
	"context"
	"time"

	"tableflip.dev/haeuso/pkg/comfort"
	"tableflip.dev/haeuso/pkg/emotion"
	"tableflip.dev/haeuso/pkg/entry"
)

// Insight summarizes the active entries created within the last periodDays
// days. The period is normalized to 7 or 30 first.
func (s *Service) Insight(ctx context.Context, periodDays int) (comfort.Insight, error) {
	if s.Comfort == nil {
		return comfort.Insight{}, errNoComfort
	}
	all, err := s.Entries(ctx)
	if err != nil {
		return comfort.Insight{}, err
	}
	days := comfort.NormalizePeriod(periodDays)
	until := s.Now()
	since := until.Add(-time.Duration(days) * 24 * time.Hour)
	return s.Comfort.Insight(ctx, days, emotionsBetween(all, since, until))
}

func emotionsBetween(all []entry.Entry, since, until time.Time) []emotion.Emotion {
	out := make([]emotion.Emotion, 0, len(all))
	for _, e := range all {
		if e.CreatedAt.Before(since) || e.CreatedAt.After(until) {
			continue
		}
		out = append(out, e.Emotion)
	}
	return out
}
