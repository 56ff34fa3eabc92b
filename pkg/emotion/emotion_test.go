package emotion

import "testing"

func TestCoerceLegacyLabels(t *testing.T) {
	cases := map[any]Emotion{
		"calm":      Calm,
		"happy":     Happy,
		"angry":     Angry,
		"anxious":   Anxious,
		"sad":       Sad,
		"tired":     Sad,
		"grateful":  Calm,
		"relieved":  Calm,
		" Anxious ": Anxious,
		"furious":   Calm,
		"":          Calm,
		42:          Calm,
		nil:         Calm,
		true:        Calm,
	}
	for in, want := range cases {
		if got := Coerce(in); got != want {
			t.Fatalf("Coerce(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("Happy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Happy {
		t.Fatalf("expected happy, got %s", got)
	}

	got, err = Parse("슬픔")
	if err != nil || got != Sad {
		t.Fatalf("expected korean label to parse as sad, got %q (%v)", got, err)
	}

	if _, err := Parse("furious"); err == nil {
		t.Fatalf("expected error for unknown emotion")
	}
}

func TestAllIsClosedSet(t *testing.T) {
	all := All()
	if len(all) != 5 {
		t.Fatalf("expected 5 emotions, got %d", len(all))
	}
	for _, e := range all {
		if !e.Valid() {
			t.Fatalf("%s should be valid", e)
		}
		if e.Glyph().Emotion != e {
			t.Fatalf("glyph mismatch for %s", e)
		}
	}
}
