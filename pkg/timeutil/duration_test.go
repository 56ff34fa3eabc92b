package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowDefault(t *testing.T) {
	dur, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != 7*24*time.Hour {
		t.Fatalf("expected a week, got %v", dur)
	}
	if label != "1w" {
		t.Fatalf("expected label 1w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	dur, label, err := ParseWindow("1w2d6h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (7*24+2*24+6)*time.Hour + 30*time.Minute
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1w2d6h30m" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3 fortnights", "0d"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	tests := map[string]int{
		"":    7,
		"7":   7,
		"30":  30,
		"30d": 30,
		"1w":  7,
		"30일": 30,
		"36h": 2,
	}
	for in, want := range tests {
		got, err := ParsePeriod(in)
		if err != nil {
			t.Fatalf("ParsePeriod(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParsePeriod(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestRemaining(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "expired"},
		{-time.Second, "expired"},
		{42 * time.Second, "42s"},
		{90 * time.Second, "1m"},
		{23*time.Hour + 59*time.Minute + 59*time.Second, "23h59m"},
		{2 * time.Hour, "2h"},
	}
	for _, tt := range tests {
		if got := Remaining(tt.in); got != tt.want {
			t.Fatalf("Remaining(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
