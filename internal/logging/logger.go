package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a timestamped logger writing to w at the given level.
// Unknown or empty levels fall back to info.
func New(level string, w io.Writer) *zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return &logger
}

// Nop returns a logger that discards everything
func Nop() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

// OpenFile returns a logger appending to path, creating parent directories.
// An empty path yields a no-op logger; the terminal belongs to the UI.
func OpenFile(level, path string) (*zerolog.Logger, io.Closer, error) {
	if path == "" {
		return Nop(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return New(level, f), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
