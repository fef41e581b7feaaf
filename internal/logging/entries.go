package logging

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry is one parsed record from app.log.
type Entry struct {
	Timestamp time.Time      `json:"time"`
	Level     string         `json:"level"`
	Message   string         `json:"msg"`
	SessionID string         `json:"session_id,omitempty"`
	Component string         `json:"component,omitempty"`
	Attrs     map[string]any `json:"attrs,omitempty"`
}

// Filter narrows a list of entries. Zero fields match everything; set fields
// combine with AND.
type Filter struct {
	Level           string // minimum level
	SessionID       string
	Component       string
	MessageContains string
	Since           time.Time
}

var levelOrder = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ReadEntries loads app.log and its uncompressed backups from dir, sorted by
// timestamp. Lines that are not JSON records are skipped, so a console
// prefix or a torn final line does not stop the read.
func ReadEntries(dir string) ([]Entry, error) {
	paths, err := filepath.Glob(filepath.Join(dir, LogFileName+".*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list log backups: %w", err)
	}
	paths = append(paths, filepath.Join(dir, LogFileName))

	var entries []Entry
	found := false
	for _, p := range paths {
		if strings.HasSuffix(p, ".gz") {
			continue
		}
		f, err := os.Open(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		found = true
		parsed, err := parseEntries(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", p, err)
		}
		entries = append(entries, parsed...)
	}
	if !found {
		return nil, fmt.Errorf("no log file found in %s: %w", dir, os.ErrNotExist)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries, nil
}

func parseEntries(r io.Reader) ([]Entry, error) {
	var out []Entry
	scanner := bufio.NewScanner(r)
	const maxLine = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxLine)

	for scanner.Scan() {
		line := strings.TrimPrefix(strings.TrimSpace(scanner.Text()), strings.TrimSpace(ConsolePrefix))
		if line == "" {
			continue
		}
		e, err := parseEntry(line)
		if err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, scanner.Err()
}

var standardKeys = map[string]bool{
	"time": true, "level": true, "msg": true, "session_id": true, "component": true,
}

func parseEntry(line string) (Entry, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, fmt.Errorf("invalid JSON: %w", err)
	}

	var e Entry
	if s, ok := raw["time"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			e.Timestamp = t
		}
	}
	e.Level, _ = raw["level"].(string)
	e.Message, _ = raw["msg"].(string)
	e.SessionID, _ = raw["session_id"].(string)
	e.Component, _ = raw["component"].(string)

	for k, v := range raw {
		if standardKeys[k] {
			continue
		}
		if e.Attrs == nil {
			e.Attrs = make(map[string]any)
		}
		e.Attrs[k] = v
	}
	return e, nil
}

// FilterEntries returns the entries matching f.
func FilterEntries(entries []Entry, f Filter) []Entry {
	var out []Entry
	for _, e := range entries {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

func (f Filter) matches(e Entry) bool {
	if f.Level != "" {
		floor, ok1 := levelOrder[strings.ToUpper(f.Level)]
		have, ok2 := levelOrder[e.Level]
		if ok1 && ok2 && have < floor {
			return false
		}
	}
	if f.SessionID != "" && e.SessionID != f.SessionID {
		return false
	}
	if f.Component != "" && e.Component != f.Component {
		return false
	}
	if f.MessageContains != "" && !strings.Contains(e.Message, f.MessageContains) {
		return false
	}
	if !f.Since.IsZero() && e.Timestamp.Before(f.Since) {
		return false
	}
	return true
}

// WriteText prints entries one per line in a human-readable form.
func WriteText(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		var b strings.Builder
		fmt.Fprintf(&b, "%s [%-5s] %s", e.Timestamp.Format("2006-01-02 15:04:05.000"), e.Level, e.Message)
		if e.Component != "" {
			fmt.Fprintf(&b, " component=%s", e.Component)
		}
		keys := make([]string, 0, len(e.Attrs))
		for k := range e.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, e.Attrs[k])
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
