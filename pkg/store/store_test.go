package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":          ModeDurable,
		"durable":   ModeDurable,
		" Volatile": ModeVolatile,
		"memory":    ModeVolatile,
		"redis":     ModeRedis,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMode(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseMode("floppy"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestDiskRoundTrip(t *testing.T) {
	base := filepath.Join(t.TempDir(), "db")
	b, err := Load(testConfig{mode: ModeDurable, path: base})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, ok, err := b.Get("journal"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := b.Set("journal", `[{"id":"a"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, err := NewDisk(base)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok, err := reopened.Get("journal")
	if err != nil || !ok {
		t.Fatalf("expected stored value, got ok=%v err=%v", ok, err)
	}
	if got != `[{"id":"a"}]` {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestDiskSeesExternalWrites(t *testing.T) {
	base := t.TempDir()
	b, err := NewDisk(base)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := b.Set("journal", "first"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, _, err := b.Get("journal"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := os.WriteFile(filepath.Join(base, "journal"), []byte("second"), 0o600); err != nil {
		t.Fatalf("external write: %v", err)
	}
	got, _, err := b.Get("journal")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "second" {
		t.Fatalf("expected external write to be visible, got %q", got)
	}
}

func TestDiskRejectsPathKeys(t *testing.T) {
	b, err := NewDisk(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := b.Set("../escape", "x"); err == nil {
		t.Fatalf("expected error for key with separator")
	}
}

func TestMemoryBackend(t *testing.T) {
	b, err := Load(testConfig{mode: ModeVolatile})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := b.Set("k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, _ := b.Get("k"); !ok || v != "v" {
		t.Fatalf("unexpected value %q ok=%v", v, ok)
	}
	if b.Name() != "memory" {
		t.Fatalf("unexpected name %q", b.Name())
	}
}
