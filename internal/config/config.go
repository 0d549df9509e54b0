package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/timetags/internal/model"
	"github.com/Tiliavir/timetags/internal/storage"
)

// FileName is the config file inside the data directory.
const FileName = "config.yaml"

// Config is the root configuration for timetags.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	View    ViewConfig    `yaml:"view"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	// Backend is one of file, sqlite or memory.
	Backend string `yaml:"backend"`
	// Path is the data directory. Empty means the directory holding the
	// config file.
	Path string `yaml:"path"`
}

// ViewConfig holds defaults for list/report/export.
type ViewConfig struct {
	DefaultMode string `yaml:"default_mode"`
	WeekStart   string `yaml:"week_start"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `yaml:"level"`
}

const (
	DefaultBackend   = storage.BackendFile
	DefaultMode      = string(model.ViewWeek)
	DefaultWeekStart = "sunday"
	DefaultLogLevel  = "info"
)

// Default returns a Config pre-filled with defaults.
func Default() Config {
	return Config{
		Storage: StorageConfig{Backend: DefaultBackend},
		View:    ViewConfig{DefaultMode: DefaultMode, WeekStart: DefaultWeekStart},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

// configTemplate is the annotated config written on first run.
const configTemplate = `# timetags configuration
#
# All settings are optional; the defaults below work out of the box.

storage:
  # Key-value backend for entries and tags:
  #   file    one JSON document per collection (default)
  #   sqlite  a single timetags.db file
  #   memory  nothing is persisted (useful for demos)
  backend: file
  # Data directory. Empty means the directory containing this file.
  path: ""

view:
  # Default view for list, report and export: day, week or month.
  default_mode: week
  # First day of a calendar week: sunday or monday.
  week_start: sunday

log:
  # debug, info, warn or error. Logs go to <data dir>/logs/timetags.log.
  level: info
`

// Path returns the config file location for the given data directory.
func Path(baseDir string) string {
	return filepath.Join(baseDir, FileName)
}

// Load reads path, creating it with the annotated template on first run.
// Missing fields are filled with defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if writeErr := writeDefault(path); writeErr != nil {
			slog.Warn("could not create config file", "path", path, "error", writeErr)
		}
		cfg := Default()
		return cfg, cfg.Validate()
	}
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	if c.View.DefaultMode == "" {
		c.View.DefaultMode = d.View.DefaultMode
	}
	if c.View.WeekStart == "" {
		c.View.WeekStart = d.View.WeekStart
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case storage.BackendFile, storage.BackendSQLite, storage.BackendMemory:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend)
	}
	if _, err := model.ParseViewMode(c.View.DefaultMode); err != nil {
		return fmt.Errorf("view.default_mode: %w", err)
	}
	if _, err := c.WeekStart(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// WeekStart returns the configured first weekday.
func (c Config) WeekStart() (time.Weekday, error) {
	switch strings.ToLower(c.View.WeekStart) {
	case "sunday", "":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	}
	return time.Sunday, fmt.Errorf("view.week_start: want sunday or monday, got %q", c.View.WeekStart)
}

// LogLevel maps the configured level name onto slog.
func (c Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// DataDir returns the storage path, defaulting to baseDir.
func (c Config) DataDir(baseDir string) string {
	if c.Storage.Path == "" {
		return baseDir
	}
	return c.Storage.Path
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
