package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Level names, matched case-insensitively.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// FileName is the log file created inside the log directory.
const FileName = "calgrid.log"

var levels = []struct {
	name  string
	level slog.Level
}{
	{LevelDebug, slog.LevelDebug},
	{LevelInfo, slog.LevelInfo},
	{LevelWarn, slog.LevelWarn},
	{LevelError, slog.LevelError},
}

// ValidLevels returns the level names from most to least verbose.
func ValidLevels() []string {
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.name
	}
	return names
}

// slogLevel maps a level name to slog; unknown names mean INFO.
func slogLevel(name string) slog.Level {
	for _, l := range levels {
		if strings.EqualFold(l.name, name) {
			return l.level
		}
	}
	return slog.LevelInfo
}

// Logger writes JSON log lines. Loggers derived through With, WithComponent
// and WithView share their parent's output, and closing any of them closes it.
type Logger struct {
	slog *slog.Logger
	out  *output
}

type output struct {
	mu     sync.Mutex
	closer io.Closer
}

func (o *output) close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closer == nil {
		return nil
	}
	if f, ok := o.closer.(*os.File); ok {
		if err := f.Sync(); err != nil {
			return fmt.Errorf("failed to sync log file: %w", err)
		}
	}
	err := o.closer.Close()
	o.closer = nil
	if err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

// NewLogger appends to {dir}/calgrid.log, creating dir as needed. An empty
// dir logs to stderr.
func NewLogger(dir string, level string) (*Logger, error) {
	if dir == "" {
		return newLogger(os.Stderr, nil, level), nil
	}
	path, err := logPath(dir)
	if err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return newLogger(file, file, level), nil
}

// NewLoggerWithRotation is NewLogger with the file rotated by size.
func NewLoggerWithRotation(dir string, level string, config RotationConfig) (*Logger, error) {
	if dir == "" {
		return NewLogger(dir, level)
	}
	path, err := logPath(dir)
	if err != nil {
		return nil, err
	}
	w := newRotatingWriter(path, config)
	return newLogger(w, w, level), nil
}

// NewWriterLogger logs to w, which Close leaves open.
func NewWriterLogger(w io.Writer, level string) *Logger {
	return newLogger(w, nil, level)
}

// NopLogger discards everything.
func NopLogger() *Logger {
	return newLogger(io.Discard, nil, LevelError)
}

func logPath(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	return filepath.Join(dir, FileName), nil
}

func newLogger(w io.Writer, closer io.Closer, level string) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel(level)})
	return &Logger{slog: slog.New(handler), out: &output{closer: closer}}
}

// WithComponent tags entries with the subsystem that wrote them
// ("layout", "agenda", "daywatch", "tui", ...).
func (l *Logger) WithComponent(component string) *Logger {
	return l.With("component", component)
}

// WithView tags entries with a month view's anchor, formatted YYYY-MM.
func (l *Logger) WithView(anchor string) *Logger {
	return l.With("view", anchor)
}

// With adds alternating key-value attributes. Pairs whose key is not a
// string are dropped.
func (l *Logger) With(args ...any) *Logger {
	attrs := make([]any, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			attrs = append(attrs, slog.Any(key, args[i+1]))
		}
	}
	if len(attrs) == 0 {
		return l
	}
	return &Logger{slog: l.slog.With(attrs...), out: l.out}
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// Enabled reports whether entries at the named level are written.
func (l *Logger) Enabled(level string) bool {
	return l.slog.Enabled(context.Background(), slogLevel(level))
}

// Close syncs and closes the log file. It is a no-op for stderr and
// caller-owned writers.
func (l *Logger) Close() error {
	return l.out.close()
}
