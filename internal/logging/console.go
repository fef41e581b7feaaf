package logging

import (
	"io"
	"sync"
)

// ConsolePrefix marks plugin output on a console shared with the host.
const ConsolePrefix = "[Plugin] "

// PrefixWriter writes a fixed prefix before every Write call. slog issues one
// Write per record, so each record gets exactly one prefix.
type PrefixWriter struct {
	mu     sync.Mutex
	w      io.Writer
	prefix []byte
}

// NewPrefixWriter wraps w.
func NewPrefixWriter(w io.Writer, prefix string) *PrefixWriter {
	return &PrefixWriter{w: w, prefix: []byte(prefix)}
}

// Write emits the prefix and then p. The returned count covers p only.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if _, err := pw.w.Write(pw.prefix); err != nil {
		return 0, err
	}
	return pw.w.Write(p)
}
