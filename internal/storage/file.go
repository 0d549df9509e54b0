package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FileStore keeps each key as a human-readable JSON file in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage error creating directories: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file backing key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Dir returns the directory holding the documents.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get reads key. A missing file is reported as not found. A file that is not
// valid JSON is moved aside to <file>.corrupt and ErrCorrupt is returned.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	path := s.Path(key)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	if len(data) > 0 && !json.Valid(data) {
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		slog.Error("corrupt JSON file backed up", "path", path, "backup", backupPath)
		return nil, false, fmt.Errorf("%w: %s (backed up to %s)", ErrCorrupt, path, backupPath)
	}
	return data, true, nil
}

// Set atomically replaces key: write to a temp file, then rename.
func (s *FileStore) Set(key string, value []byte) error {
	path := s.Path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, value, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }
