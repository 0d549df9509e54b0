package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// FileName is the log file inside the logs directory.
const FileName = "timetags.log"

// Init writes logs to <dataDir>/logs/timetags.log in slog text format and
// installs the logger as the slog default. The returned closer releases the
// file.
func Init(dataDir string, level slog.Level) (io.Closer, error) {
	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filepath.Join(logDir, FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	// The sqlite driver and fsnotify report through the standard log package.
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags)

	return file, nil
}

// Discard silences slog and the standard log package. Used when no data
// directory is available and before the log file is closed.
func Discard() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
}
