package storage

import (
	"context"
	"fmt"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the Store for backend rooted at dir, plus the path a file
// watcher should observe (empty for the memory backend).
func Open(ctx context.Context, backend, dir string) (Store, string, error) {
	switch backend {
	case BackendFile, "":
		fs, err := NewFileStore(dir)
		if err != nil {
			return nil, "", err
		}
		return fs, fs.Dir(), nil
	case BackendSQLite:
		path := filepath.Join(dir, SQLiteFile)
		db, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, "", err
		}
		return db, path, nil
	case BackendMemory:
		return NewMemoryStore(), "", nil
	}
	return nil, "", fmt.Errorf("unknown storage backend %q (want file, sqlite or memory)", backend)
}
