// Package memory implements the digital being's activity log.
package memory

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dittowallet/digital-being/pkg/types"
)

const activityLogFile = "activity_log.jsonl"

// Store is an append-only log of activity runs, one JSON record per line.
// Records are immutable once appended; readers see them newest-first.
type Store struct {
	mu sync.RWMutex

	dataPath string
	records  []types.ActivityRecord // oldest-first, append order
}

// NewStore creates a store rooted at dataPath and loads any existing log.
func NewStore(dataPath string) (*Store, error) {
	s := &Store{dataPath: dataPath}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// RecordActivity appends one activity run to the log. A missing ID or
// timestamp is filled in before the record is written.
func (s *Store) RecordActivity(rec types.ActivityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	if err := os.MkdirAll(s.dataPath, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal activity record: %w", err)
	}

	f, err := os.OpenFile(s.logPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open activity log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append activity record: %w", err)
	}

	s.records = append(s.records, rec)
	return nil
}

// GetRecent returns up to limit records newest-first, skipping offset
// newest records. A non-positive limit returns everything after the offset.
func (s *Store) GetRecent(limit, offset int) []types.ActivityRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	if offset < 0 {
		offset = 0
	}
	if offset >= n {
		return nil
	}

	avail := n - offset
	if limit <= 0 || limit > avail {
		limit = avail
	}

	out := make([]types.ActivityRecord, 0, limit)
	for i := n - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[i])
	}
	return out
}

// Count returns the number of records in the log.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) logPath() string {
	return filepath.Join(s.dataPath, activityLogFile)
}

// load reads the existing log, skipping lines that fail to parse.
func (s *Store) load() error {
	f, err := os.Open(s.logPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open activity log: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec types.ActivityRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		s.records = append(s.records, rec)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read activity log: %w", err)
	}
	return nil
}
