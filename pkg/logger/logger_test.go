package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud", Format: "json", Output: "stderr"})
	if err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestLoggerWritesStructuredFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := New(&Config{Level: "debug", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	l.Info("compute done", String("operation", "price"), Int("paths", 500))
	l.Error("compute failed", Error(errors.New("bad vol")))
	l.Warn("cache miss", Bool("retry", true))

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(b)

	for _, want := range []string{
		`"operation":"price"`,
		`"paths":500`,
		`"error":"bad vol"`,
		`"retry":true`,
		"compute done",
		"compute failed",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}
