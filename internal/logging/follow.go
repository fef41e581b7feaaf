package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Follow calls fn for every record matching f that is appended to app.log in
// dir, until ctx is done. Records already in the file are skipped. When the
// file is recreated or shrinks (rotation), reading restarts at its beginning.
func Follow(ctx context.Context, dir string, f Filter, fn func(Entry)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory; rotation replaces the file itself
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch log directory: %w", err)
	}

	t := &tailer{path: filepath.Join(dir, LogFileName)}
	if info, err := os.Stat(t.path); err == nil {
		t.offset = info.Size()
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != LogFileName || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				t.offset = 0
			}
			entries, err := t.read()
			if err != nil {
				return err
			}
			for _, e := range FilterEntries(entries, f) {
				fn(e)
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Dropped events are recovered on the next write
		}
	}
}

// tailer reads complete lines appended to a file since the last read.
type tailer struct {
	path   string
	offset int64
}

func (t *tailer) read() ([]Entry, error) {
	file, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}
	if info.Size() < t.offset {
		t.offset = 0
	}
	if _, err := file.Seek(t.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek log file: %w", err)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	// A torn final line stays unread until its newline arrives
	end := bytes.LastIndexByte(data, '\n')
	if end < 0 {
		return nil, nil
	}
	t.offset += int64(end + 1)
	return parseEntries(bytes.NewReader(data[:end+1]))
}
