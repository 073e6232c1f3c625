// Package log provides structured file logging for dropsearch.
// Logging is off unless --debug or DROPSEARCH_DEBUG is set. Entries go to a
// file, a bounded in-memory buffer for the log overlay, and a pubsub broker.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/zjrosen/dropsearch/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatUI      Category = "ui"      // Widget and app updates
	CatConfig  Category = "config"  // Configuration loading/saving
	CatSearch  Category = "search"  // Filtering and matching
	CatCache   Category = "cache"   // Filter result cache
	CatWatcher Category = "watcher" // Config file watcher
)

// DefaultBufferSize is how many recent entries are kept in memory.
const DefaultBufferSize = 500

// Logger writes formatted entries to a writer and a ring buffer.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	enabled  bool
	minLevel Level
	buffer   []string
	next     int
	full     bool
	broker   *pubsub.Broker[string]
}

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// New creates a logger writing to w. w may be nil to keep entries in memory only.
func New(w io.Writer, bufferSize int) *Logger {
	if bufferSize < 1 {
		bufferSize = DefaultBufferSize
	}
	return &Logger{
		writer:   w,
		enabled:  true,
		minLevel: LevelDebug,
		buffer:   make([]string, bufferSize),
		broker:   pubsub.NewBroker[string](),
	}
}

// Init opens path for appending and installs it as the package logger.
// The returned func closes the file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: user-chosen debug log path
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	l := New(f, DefaultBufferSize)
	SetDefault(l)

	return func() {
		l.broker.Close()
		_ = f.Close()
	}, nil
}

// SetDefault installs l as the package logger. Passing nil disables logging.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

func current() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	current().log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	current().log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	current().log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	current().log(LevelError, cat, msg, fields...)
}

// ErrorErr logs err under the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	current().log(LevelError, cat, msg, fields...)
}

func (l *Logger) log(level Level, cat Category, msg string, fields ...any) {
	if l == nil {
		return
	}

	l.mu.Lock()
	if !l.enabled || level < l.minLevel {
		l.mu.Unlock()
		return
	}

	entry := format(time.Now(), level, cat, msg, fields...)
	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry+"\n")
	}
	l.buffer[l.next] = entry
	l.next = (l.next + 1) % len(l.buffer)
	if l.next == 0 {
		l.full = true
	}
	l.mu.Unlock()

	l.broker.Publish(pubsub.AppendedEvent, entry)
}

// format renders: 2026-01-02T10:45:00 [ERROR] [ui] message key=value key2=value2
func format(ts time.Time, level Level, cat Category, msg string, fields ...any) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&sb, " %v=<missing>", fields[len(fields)-1])
	}
	return sb.String()
}

// Recent returns up to n of the most recent entries, oldest first.
func (l *Logger) Recent(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var ordered []string
	if l.full {
		ordered = append(ordered, l.buffer[l.next:]...)
	}
	ordered = append(ordered, l.buffer[:l.next]...)

	if n >= 0 && len(ordered) > n {
		ordered = ordered[len(ordered)-n:]
	}
	return ordered
}

// Clear drops all buffered entries.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.buffer {
		l.buffer[i] = ""
	}
	l.next = 0
	l.full = false
}

// GetRecentLogs returns up to n recent entries from the package logger.
func GetRecentLogs(n int) []string {
	l := current()
	if l == nil {
		return nil
	}
	return l.Recent(n)
}

// ClearBuffer clears the package logger's in-memory buffer.
func ClearBuffer() {
	if l := current(); l != nil {
		l.Clear()
	}
}

// LogEvent is a pubsub event carrying one formatted entry.
type LogEvent = pubsub.Event[string]

// LogListener receives log events inside the Bubble Tea loop.
type LogListener = pubsub.Listener[string]

// NewListener subscribes to the package logger for the lifetime of ctx.
// Returns nil when logging is not initialized.
func NewListener(ctx context.Context) *LogListener {
	l := current()
	if l == nil {
		return nil
	}
	return pubsub.NewListener[string](ctx, l.broker)
}
