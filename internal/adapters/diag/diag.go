package diag

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// Options configure the diagnostic channel. It never writes to the
// terminal: an empty Path discards every record.
type Options struct {
	Path    string
	Level   string
	Verbose bool
}

func ParseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse diagnostics level: %w", err)
	}
	return level, nil
}

// Open returns a logger appending to the diagnostics file and the closer
// that releases it.
func Open(opts Options) (*slog.Logger, io.Closer, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return Discard(), nopCloser{}, nil
	}

	level := slog.LevelDebug
	if !opts.Verbose {
		parsed, err := ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, err
		}
		level = parsed
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), dirMode); err != nil {
		return nil, nil, fmt.Errorf("create diagnostics directory: %w", err)
	}
	file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, fileMode)
	if err != nil {
		return nil, nil, fmt.Errorf("open diagnostics file: %w", err)
	}

	return New(file, level), file, nil
}

func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
