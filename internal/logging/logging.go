// Package logging builds the structured JSON logger used across dexdash.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Setup returns a JSON slog.Logger writing to w.
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// OpenFile opens path for appending, creating its directory if needed, and
// returns a logger writing to it. The dashboard owns the terminal, so logs
// never go to stdout while it runs. Callers close the returned file.
func OpenFile(path string) (*slog.Logger, *os.File, error) {
	if path == "" {
		return Setup(io.Discard), nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return Setup(f), f, nil
}
