package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/krau/fexp/logger"
)

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	l, closer, err := logger.New(&buf, "warn", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer.Close()

	l.Info("hidden")
	l.Warn("shown", "key", "value")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fexp.log")
	l, closer, err := logger.New(nil, "debug", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug("to file", "n", 1)
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `msg="to file"`) || !strings.Contains(string(data), "n=1") {
		t.Errorf("unexpected log file content: %q", data)
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, _, err := logger.New(nil, "loud", ""); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
