package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug suppressed, got %q", buf.String())
	}
	New(&buf, true).Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}
}

func TestErrorLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.log")

	for _, msg := range []string{"first", "second"} {
		el, err := OpenErrorLog(path)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		el.Record(errors.New(msg))
		el.Record(nil)
		if err := el.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), data)
	}
	if !strings.Contains(lines[0], "first") || !strings.Contains(lines[1], "second") {
		t.Fatalf("expected entries in order, got %q", lines)
	}
}

func TestErrorLogClosed(t *testing.T) {
	el, err := OpenErrorLog(filepath.Join(t.TempDir(), "errors.log"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	el.Close()
	el.Record(errors.New("after close"))
	if err := el.Close(); err != nil {
		t.Fatalf("expected second close to be a no-op, got %v", err)
	}
	var nilLog *ErrorLog
	nilLog.Record(errors.New("x"))
}
