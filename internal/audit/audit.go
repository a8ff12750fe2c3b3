package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/brightfold/studio-backend/pkg/logger"
	"go.uber.org/zap"
)

// Entry is one recorded admin mutation.
type Entry struct {
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"` // e.g. "article.create", "user.role"
	Resource  string    `json:"resource"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// maxSegmentSize triggers rotation; old segments are kept alongside
// the active one with a timestamp suffix.
const maxSegmentSize = 8 << 20 // 8 MB

// Log is an append-only JSONL audit trail of admin mutations.
// Writes are fsync'd; rotation is size-based.
type Log struct {
	dir    string
	file   *os.File
	size   int64
	mu     sync.Mutex
	closed bool
}

// Open creates the audit directory if needed and opens the active segment.
func Open(dir string) (*Log, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, "audit.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	return &Log{
		dir:  dir,
		file: file,
		size: info.Size(),
	}, nil
}

// Record appends one entry and syncs it to disk. Callers treat failures
// as best-effort: an audit failure never fails the request.
func (l *Log) Record(entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return os.ErrClosed
	}

	data, err := json.Marshal(entry)
	if err != nil {
		logger.Log.Error("Audit: failed to marshal entry",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
		return err
	}

	n, err := l.file.WriteString(string(data) + "\n")
	if err != nil {
		logger.Log.Error("Audit: failed to write entry",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
		return err
	}
	l.size += int64(n)

	if err := l.file.Sync(); err != nil {
		logger.Log.Error("Audit: failed to sync to disk",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
		return err
	}

	if l.size >= maxSegmentSize {
		return l.rotateLocked()
	}
	return nil
}

// ReadAll returns every entry in the active segment, oldest first.
func (l *Log) ReadAll() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(filepath.Join(l.dir, "audit.log"))
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	// A single entry can exceed Scanner's default 64 KB token limit.
	scanner.Buffer(make([]byte, 0, 64<<10), maxSegmentSize)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

// rotateLocked renames the active segment aside and starts a fresh one.
func (l *Log) rotateLocked() error {
	if err := l.file.Close(); err != nil {
		return err
	}

	active := filepath.Join(l.dir, "audit.log")
	rotated := filepath.Join(l.dir, fmt.Sprintf("audit-%s.log", time.Now().Format("20060102T150405")))
	if err := os.Rename(active, rotated); err != nil {
		return err
	}

	file, err := os.OpenFile(active, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	l.file = file
	l.size = 0

	logger.Log.Info("Audit: segment rotated",
		zap.String("rotated", rotated),
	)
	return nil
}

// Close closes the active segment.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.file.Close()
}
