// internal/errorlog/errorlog.go
//
// Persisted record of validation failures. Unlike the session log this
// is structured data: an ordered JSON array of entries, loaded wholesale
// at startup and rewritten in full after every append. Entries are never
// mutated or removed.

package errorlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var codec = jsoniter.ConfigFastest

// Entry is one recorded failure.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Error     string `json:"error"`
}

// Log owns the error file and its in-memory entries.
type Log struct {
	path    string
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

// Open loads the error log at path. A missing, unreadable or unparseable
// file starts the log empty; the log itself must never keep an operation
// from running.
func Open(path string) *Log {
	l := &Log{path: path, now: time.Now}
	data, err := os.ReadFile(path)
	if err != nil {
		return l
	}
	if err := codec.Unmarshal(data, &l.entries); err != nil {
		l.entries = nil
	}
	return l
}

// Path returns the file backing this log.
func (l *Log) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Record appends a timestamped entry and rewrites the file. Persistence
// failures are swallowed: the error log must never block an operation
// from reporting its own error.
func (l *Log) Record(format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{
		Timestamp: l.now().Format(time.RFC3339),
		Error:     fmt.Sprintf(format, args...),
	})
	_ = l.flushLocked()
}

func (l *Log) flushLocked() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}
	data, err := codec.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.path, data, 0o644)
}

// Entries returns a copy of all recorded entries in order.
func (l *Log) Entries() []Entry {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Tail returns up to maxLines of the most recent entries rendered as
// display lines.
func (l *Log) Tail(maxLines int) []string {
	if l == nil || maxLines <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	start := 0
	if len(l.entries) > maxLines {
		start = len(l.entries) - maxLines
	}
	var lines []string
	for _, e := range l.entries[start:] {
		lines = append(lines, fmt.Sprintf("%s %s", e.Timestamp, e.Error))
	}
	return lines
}
