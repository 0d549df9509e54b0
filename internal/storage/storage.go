package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Tiliavir/timetags/internal/model"
)

// Keys of the two collections kept in a Store.
const (
	KeyTimeEntries = "time_entries"
	KeyTags        = "tags"
)

// HomeEnvVar overrides the data directory.
const HomeEnvVar = "TIMETAGS_HOME"

// ErrCorrupt is returned when a stored document is not valid JSON.
var ErrCorrupt = errors.New("corrupt document")

// Store is a key-value backend. Set fully replaces the previous value.
type Store interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Close() error
}

// BaseDir returns the root data directory ($TIMETAGS_HOME or ~/.timetags).
func BaseDir() (string, error) {
	if env := os.Getenv(HomeEnvVar); env != "" {
		return filepath.Clean(env), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".timetags"), nil
}

// GenerateID returns a new random entry or tag id.
func GenerateID() string {
	return uuid.NewString()
}

// Repository reads and writes the entry and tag collections as JSON
// documents in a Store. Every save overwrites the whole collection.
type Repository struct {
	store Store
}

// NewRepository wraps store.
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// Entries loads all time entries. A missing collection is empty.
func (r *Repository) Entries() ([]model.TimeEntry, error) {
	entries := []model.TimeEntry{}
	if err := r.load(KeyTimeEntries, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveEntries overwrites the entry collection.
func (r *Repository) SaveEntries(entries []model.TimeEntry) error {
	if entries == nil {
		entries = []model.TimeEntry{}
	}
	return r.save(KeyTimeEntries, entries)
}

// Tags loads all tags. A missing collection is empty.
func (r *Repository) Tags() ([]model.Tag, error) {
	tags := []model.Tag{}
	if err := r.load(KeyTags, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// SaveTags overwrites the tag collection.
func (r *Repository) SaveTags(tags []model.Tag) error {
	if tags == nil {
		tags = []model.Tag{}
	}
	return r.save(KeyTags, tags)
}

func (r *Repository) load(key string, v any) error {
	data, ok, err := r.store.Get(key)
	if err != nil {
		return fmt.Errorf("storage error reading %s: %w", key, err)
	}
	if !ok || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		slog.Error("corrupt collection", "key", key, "error", err)
		return fmt.Errorf("%w in %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

func (r *Repository) save(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling %s: %w", key, err)
	}
	if err := r.store.Set(key, data); err != nil {
		return fmt.Errorf("storage error writing %s: %w", key, err)
	}
	slog.Debug("collection saved", "key", key, "bytes", len(data))
	return nil
}
