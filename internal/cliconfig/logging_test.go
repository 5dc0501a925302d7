package cliconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_ConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := newLogger(Config{LogLevel: "warn"}, &buf)
	defer closer.Close()

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestLogger_WritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tiltapp.log")
	var buf bytes.Buffer
	logger, closer := newLogger(Config{LogLevel: "debug", LogFile: path}, &buf)

	logger.Debug().Str("component", "test").Msg("to disk")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), `"message":"to disk"`) {
		t.Errorf("log file = %q, want JSON line", b)
	}
	if !strings.Contains(buf.String(), "to disk") {
		t.Errorf("console output = %q", buf.String())
	}
}

func TestLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := newLogger(Config{LogLevel: "loud"}, &buf)
	defer closer.Close()

	logger.Debug().Msg("debug")
	logger.Info().Msg("info")
	if strings.Contains(buf.String(), "debug") {
		t.Errorf("debug written at fallback level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "info") {
		t.Errorf("info missing: %q", buf.String())
	}
}
