package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	if err != nil || lvl != DefaultLevel {
		t.Fatalf("empty level: got %v, %v", lvl, err)
	}
	lvl, err = ParseLevel(" Debug ")
	if err != nil || lvl != zerolog.DebugLevel {
		t.Fatalf("debug level: got %v, %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestConsoleRespectsLevel(t *testing.T) {
	restoreLogger(t)
	var buf bytes.Buffer
	Console(&buf, zerolog.WarnLevel)

	log.Info().Msg("hidden")
	log.Warn().Str("key", "fallback").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "fallback") {
		t.Fatalf("expected warn message, got %q", out)
	}
}

func TestFileSink(t *testing.T) {
	restoreLogger(t)
	path := filepath.Join(t.TempDir(), "nested", "reflex.log")
	closer, err := File(path, zerolog.DebugLevel)
	if err != nil {
		t.Fatalf("open log file: %v", err)
	}
	log.Debug().Int("ms", 180).Msg("attempt recorded")
	if err := closer.Close(); err != nil {
		t.Fatalf("close log: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"ms":180`) || !strings.Contains(string(data), "attempt recorded") {
		t.Fatalf("unexpected log content: %s", data)
	}
}
