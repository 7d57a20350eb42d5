// Package logging sets up the file logger. The terminal belongs to the UI, so
// diagnostics go to a file under the data directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger pairs the logger with the file it writes to.
type Logger struct {
	*log.Logger
	file *os.File
	path string
}

// Open creates the log file's directory if needed and appends to path.
func Open(path string, level log.Level) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{
		Logger: New(file, level),
		file:   file,
		path:   path,
	}, nil
}

// New returns a logger writing to w with timestamps.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, log.FatalLevel)
}

// Path is the file being written.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close flushes nothing (writes are unbuffered) and closes the file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
