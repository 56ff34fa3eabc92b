package prompt

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestInteractiveFalseForFiles(t *testing.T) {
	if Interactive(nil) {
		t.Fatalf("nil file is not a terminal")
	}
	f, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if Interactive(f) {
		t.Fatalf("regular file reported as a terminal")
	}
}

func TestNopCloser(t *testing.T) {
	var buf bytes.Buffer
	w := NopCloser(&buf)
	_, _ = w.Write([]byte("hi"))
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := w.Write([]byte("!")); err != nil {
		t.Fatalf("write after close: %v", err)
	}
	if buf.String() != "hi!" {
		t.Fatalf("got %q", buf.String())
	}
}
