package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Debug("hidden")
	logger.Info("shown", "engine", "basic")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug output must be suppressed without verbose: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "engine=basic") {
		t.Fatalf("unexpected output %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("non-terminal writers must not receive colour codes")
	}

	buf.Reset()
	New(&buf, true).Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("debug output expected with verbose")
	}
}

func TestInstallSetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := Install(&buf, false)
	if slog.Default() != logger {
		t.Fatal("expected Install to replace the default logger")
	}
	slog.Info("via default")
	if !strings.Contains(buf.String(), "via default") {
		t.Fatalf("default logger did not write to the writer: %q", buf.String())
	}
}
