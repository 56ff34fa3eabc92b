// Package timeutil parses and renders the short durations shown by haeuso:
// insight periods ("7d", "1w", "30") and time left before an entry expires.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day

	// DefaultPeriod is the insight period used when none is given.
	DefaultPeriod = "7d"
)

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*(\p{L}*)`)
	units          = map[string]time.Duration{
		"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
		"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
		"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
		"d": day, "day": day, "days": day, "일": day,
		"w": week, "wk": week, "wks": week, "week": week, "weeks": week,
	}
)

// ParseWindow parses a compact duration such as "1w", "3d" or "1d6h". A bare
// number counts days. It returns the duration and its canonical spelling.
func ParseWindow(input string) (time.Duration, string, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		rest = DefaultPeriod
	}

	var total time.Duration
	for rest != "" {
		m := segmentPattern.FindStringSubmatch(rest)
		if m == nil {
			return 0, "", fmt.Errorf("invalid duration segment %q", strings.TrimSpace(rest))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid duration value %q: %w", m[1], err)
		}
		unit := day
		if m[2] != "" {
			var ok bool
			if unit, ok = units[m[2]]; !ok {
				return 0, "", fmt.Errorf("unsupported duration unit %q", m[2])
			}
		}
		total += time.Duration(n) * unit
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("duration must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// ParsePeriod parses an insight period and returns it in whole days,
// rounding partial days up.
func ParsePeriod(input string) (int, error) {
	d, _, err := ParseWindow(input)
	if err != nil {
		return 0, err
	}
	return int((d + day - 1) / day), nil
}

// FormatWindow renders d with w, d, h, m and s tokens, largest first.
func FormatWindow(d time.Duration) string {
	return format(d, []time.Duration{week, day, time.Hour, time.Minute, time.Second})
}

// Remaining renders the time left until an entry expires. Seconds are only
// shown in the last minute.
func Remaining(d time.Duration) string {
	switch {
	case d <= 0:
		return "expired"
	case d < time.Minute:
		return format(d, []time.Duration{time.Second})
	}
	return format(d.Truncate(time.Minute), []time.Duration{time.Hour, time.Minute})
}

var labels = map[time.Duration]string{
	week: "w", day: "d", time.Hour: "h", time.Minute: "m", time.Second: "s",
}

func format(d time.Duration, steps []time.Duration) string {
	var b strings.Builder
	for _, step := range steps {
		if d < step {
			continue
		}
		n := d / step
		d -= n * step
		fmt.Fprintf(&b, "%d%s", n, labels[step])
	}
	if b.Len() == 0 {
		return "0" + labels[steps[len(steps)-1]]
	}
	return b.String()
}
