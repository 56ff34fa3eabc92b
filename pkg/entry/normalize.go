package entry

import (
	"encoding/json"
	"time"

	"tableflip.dev/haeuso/pkg/emotion"
)

// Normalize turns a loosely typed persisted record into a complete Entry.
// It never fails: missing or malformed fields are derived or defaulted.
// Values that are not JSON objects are treated as empty records.
func Normalize(raw any, now time.Time, newID func() string) Entry {
	rec, _ := raw.(map[string]any)

	created, ok := coerceTime(rec["createdAt"])
	if !ok {
		created = now
		if day, isString := rec["date"].(string); isString {
			if t, err := ParseDay(day); err == nil {
				created = t
			}
		}
	}

	expires, ok := coerceTime(rec["expiresAt"])
	if !ok {
		expires = created.Add(TTL)
	}

	date, ok := rec["date"].(string)
	if !ok {
		date = dayOf(created)
	}

	id, _ := rec["id"].(string)
	if id == "" {
		id = newID()
	}

	return Entry{
		ID:        id,
		Date:      date,
		Emotion:   emotion.Coerce(rec["emotion"]),
		CreatedAt: Timestamp{Time: created.Truncate(time.Millisecond)},
		ExpiresAt: Timestamp{Time: expires.Truncate(time.Millisecond)},
	}
}

// DecodeList parses persisted data as a JSON array and normalizes each
// element. ok is false when the data is not an array.
func DecodeList(data []byte, now time.Time, newID func() string) (entries []Entry, ok bool) {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, false
	}
	entries = make([]Entry, 0, len(raw))
	for _, r := range raw {
		entries = append(entries, Normalize(r, now, newID))
	}
	return entries, true
}

// Dedupe drops entries whose id was already seen, keeping the first.
func Dedupe(entries []Entry) []Entry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}
