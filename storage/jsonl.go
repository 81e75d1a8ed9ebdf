package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/surveyline/intake/model"
)

// FileStore appends records to a JSONL file, one self-contained line per
// record. A process-wide mutex serializes writers and each record goes out in
// a single O_APPEND write, so concurrent submissions never interleave
// mid-line. Lines already written are never touched again.
type FileStore struct {
	path string
	mu   sync.Mutex
	f    *os.File
}

// Open creates or opens the log file at path, creating parent directories as
// needed. The file stays open for the life of the store.
func Open(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("storage: empty log path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("storage: create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("storage: open log: %w", err)
	}
	return &FileStore{path: path, f: f}, nil
}

// Append serializes rec and writes it as one newline-terminated line. On
// return the line is fully handed to the kernel; a failure means nothing of
// the record should be trusted to have landed.
func (s *FileStore) Append(ctx context.Context, rec model.StoredSurveyRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("storage: marshal record: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return fmt.Errorf("storage: log is closed")
	}
	if _, err := s.f.Write(data); err != nil {
		return fmt.Errorf("storage: append record: %w", err)
	}
	return nil
}

// ReadAll decodes every line of the log. Tests and offline tooling use it;
// the service itself never reads the log back.
func (s *FileStore) ReadAll() ([]model.StoredSurveyRecord, error) {
	s.mu.Lock()
	if s.f != nil {
		_ = s.f.Sync()
	}
	s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: read log: %w", err)
	}

	var out []model.StoredSurveyRecord
	for i, line := range bytes.Split(data, []byte{'\n'}) {
		if len(line) == 0 {
			continue
		}
		var rec model.StoredSurveyRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("storage: bad record at line %d: %w", i+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
