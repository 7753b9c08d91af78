package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewWithDirWritesRotatedFile(t *testing.T) {
	dir := t.TempDir()
	lg := New("debug", dir)
	if lg.LogFile != filepath.Join(dir, "airport.slog") {
		t.Fatalf("log file = %q", lg.LogFile)
	}
	lg.Info("startup", "port", 4000)

	data, err := os.ReadFile(lg.LogFile)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("log file empty after write")
	}
}

func TestNewWithoutDirGoesToStdout(t *testing.T) {
	lg := New("info", "")
	if lg.LogFile != "" {
		t.Fatalf("unexpected log file %q", lg.LogFile)
	}
	lg.Info("no-op")
}

func TestDiscard(t *testing.T) {
	lg := Discard()
	lg.Error("dropped", "err", "nothing")
	if lg.Logger == nil {
		t.Fatalf("discard logger is nil")
	}
}
