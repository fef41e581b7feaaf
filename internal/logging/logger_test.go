package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("line %q is not JSON: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNew_FileSink(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(Options{Dir: dir, Level: LevelDebug})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Debug("debug message", "k", "v")
	logger.Info("info message")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	lines := readLines(t, filepath.Join(dir, LogFileName))
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0]["msg"] != "debug message" || lines[0]["k"] != "v" {
		t.Errorf("first line = %v, want debug message with k=v", lines[0])
	}
}

func TestNew_ConsolePrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Console: &buf, Level: LevelInfo})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("one")
	logger.Info("two")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d console lines, want 2: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, ConsolePrefix+"{") {
			t.Errorf("console line %q lacks %q prefix", line, ConsolePrefix)
		}
	}
}

func TestNew_BothSinks(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger, err := New(Options{Dir: dir, Console: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer logger.Close()

	logger.Warn("shared")
	if !strings.Contains(buf.String(), `"msg":"shared"`) {
		t.Errorf("console missing record: %q", buf.String())
	}
	if lines := readLines(t, filepath.Join(dir, LogFileName)); len(lines) != 1 {
		t.Errorf("file has %d lines, want 1", len(lines))
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := New(Options{Console: &buf, Level: "warn"})

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown")

	if got := strings.Count(buf.String(), "shown"); got != 2 {
		t.Errorf("got %d records at WARN and above, want 2", got)
	}
	if strings.Contains(buf.String(), "hidden") {
		t.Error("records below WARN were written")
	}
}

func TestChildLoggers(t *testing.T) {
	var buf bytes.Buffer
	root, _ := New(Options{Console: &buf})

	child := root.WithSession("sess-1").WithComponent("processor").With("event_id", "mac", 42, "skipped")
	child.Info("event")
	root.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(strings.TrimPrefix(lines[0], ConsolePrefix)), &rec); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for k, want := range map[string]string{"session_id": "sess-1", "component": "processor", "event_id": "mac"} {
		if rec[k] != want {
			t.Errorf("%s = %v, want %q", k, rec[k], want)
		}
	}
	if strings.Contains(lines[1], "session_id") {
		t.Error("child attributes leaked into the root logger")
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("creates app.log in directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested")
		logger, err := NewLogger(dir, LevelInfo)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(filepath.Join(dir, LogFileName)); err != nil {
			t.Errorf("log file not created: %v", err)
		}
	})

	t.Run("no directory means no file", func(t *testing.T) {
		logger, err := NewLogger("", LevelInfo)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		if logger.closer != nil {
			t.Error("expected no file closer when dir is empty")
		}
	})
}

func TestClose_Twice(t *testing.T) {
	logger, err := New(Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Info("discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if len(ValidLevels()) != 4 {
		t.Errorf("len(ValidLevels()) = %d, want 4", len(ValidLevels()))
	}
}
