package entry

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ISOLayout is the persisted timestamp format: UTC with millisecond precision.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// DateLayout is the calendar-day format of Entry.Date.
const DateLayout = "2006-01-02"

var errEmptyTime = errors.New("entry: empty timestamp")

// zoned layouts carry an offset; the remaining layouts are read in local time.
var (
	zonedLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04Z07:00", "2006-01-02 15:04:05Z07:00"}
	localLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05"}
)

// ParseTime parses an ISO-8601 style timestamp. Values without an offset are
// read in local time, except date-only values which are read as UTC midnight.
func ParseTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errEmptyTime
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(DateLayout, v); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("entry: unrecognized timestamp %q", v)
}

// ParseDay reads a YYYY-MM-DD day as local midnight.
func ParseDay(v string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(v), time.Local)
}

// coerceTime accepts a timestamp string or epoch milliseconds.
func coerceTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case string:
		t, err := ParseTime(x)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(x)), true
	case json.Number:
		ms, err := x.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms), true
	default:
		return time.Time{}, false
	}
}

type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) MarshalYAML() (any, error) {
	return t.String(), nil
}

func (t Timestamp) String() string {
	return FormatTime(t.Time)
}

// FormatTime renders v in the persisted ISO layout.
func FormatTime(v time.Time) string {
	return v.UTC().Format(ISOLayout)
}
