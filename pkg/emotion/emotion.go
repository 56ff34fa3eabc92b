// Package emotion defines the closed set of emotions a reflection can carry.
package emotion

import (
	"fmt"
	"strings"
)

// Emotion is one of the five supported reflection moods.
type Emotion string

const (
	Calm    Emotion = "calm"
	Happy   Emotion = "happy"
	Angry   Emotion = "angry"
	Anxious Emotion = "anxious"
	Sad     Emotion = "sad"
)

// Default is used whenever a value cannot be mapped to a known emotion.
const Default = Calm

// Glyph describes how an emotion is shown to the user.
type Glyph struct {
	Emotion Emotion
	Symbol  string
	Label   string
	Color   string
}

var glyphs = map[Emotion]Glyph{
	Calm:    {Emotion: Calm, Symbol: "◌", Label: "괜찮음", Color: "110"},
	Happy:   {Emotion: Happy, Symbol: "☀", Label: "기쁨", Color: "221"},
	Angry:   {Emotion: Angry, Symbol: "✷", Label: "화남", Color: "203"},
	Anxious: {Emotion: Anxious, Symbol: "≈", Label: "불안", Color: "141"},
	Sad:     {Emotion: Sad, Symbol: "☂", Label: "슬픔", Color: "75"},
}

// legacy labels written by older clients and the emotion they fold into.
// Changing these would reclassify historical records.
var legacy = map[string]Emotion{
	"tired":    Sad,
	"grateful": Calm,
	"relieved": Calm,
}

// All returns every emotion in the order used for counting and tie breaks.
func All() []Emotion {
	return []Emotion{Calm, Sad, Angry, Anxious, Happy}
}

// Valid reports whether e belongs to the closed set.
func (e Emotion) Valid() bool {
	_, ok := glyphs[e]
	return ok
}

func (e Emotion) String() string {
	return string(e)
}

// Glyph returns the display attributes for e, falling back to Default.
func (e Emotion) Glyph() Glyph {
	if g, ok := glyphs[e]; ok {
		return g
	}
	return glyphs[Default]
}

// Label is the short Korean label used in prompts.
func (e Emotion) Label() string {
	return e.Glyph().Label
}

// Parse strictly parses a user supplied emotion. Legacy labels are accepted.
func Parse(s string) (Emotion, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if e := Emotion(key); e.Valid() {
		return e, nil
	}
	if e, ok := legacy[key]; ok {
		return e, nil
	}
	for _, g := range glyphs {
		if g.Label == strings.TrimSpace(s) {
			return g.Emotion, nil
		}
	}
	return "", fmt.Errorf("unknown emotion %q (expected one of %s)", s, strings.Join(Names(), ", "))
}

// Coerce maps any value to a member of the closed set. Unknown values,
// including non-strings, become Default.
func Coerce(v any) Emotion {
	s, ok := v.(string)
	if !ok {
		return Default
	}
	key := strings.ToLower(strings.TrimSpace(s))
	if e := Emotion(key); e.Valid() {
		return e
	}
	if e, ok := legacy[key]; ok {
		return e
	}
	return Default
}

// Names lists the canonical emotion names.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, e := range all {
		names[i] = string(e)
	}
	return names
}
