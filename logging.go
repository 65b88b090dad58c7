// logging.go - structured logging interface for conc.
//
// Usage:
//
//	sched, _ := conc.NewScheduler(conc.WithLogger(conc.NewDefaultLogger(conc.LevelInfo)))
package conc

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// LogLevel represents the severity of a log message.
type LogLevel int32

const (
	// LevelDebug for detailed diagnostic information.
	LevelDebug LogLevel = iota
	// LevelInfo for general informational messages.
	LevelInfo
	// LevelWarn for warning conditions.
	LevelWarn
	// LevelError for error conditions.
	LevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
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
		return fmt.Sprintf("UNKNOWN(%d)", l)
	}
}

// LogEntry is a structured log record.
type LogEntry struct {
	Level     LogLevel
	Category  string // "scheduler", "arena", "tcp", "http", "router"
	FiberID   int
	ConnFD    int
	Context   map[string]interface{}
	Message   string
	Err       error
	Timestamp time.Time
}

// Logger is the structured logging interface. Any type satisfying it
// can be supplied via WithLogger, including a logiface.Logger[Event]
// adapter — see logging_interop_test.go.
type Logger interface {
	Log(entry LogEntry)
	IsEnabled(level LogLevel) bool
}

// DefaultLogger implements Logger by writing line-oriented text to an
// io.Writer, guarded by a mutex, with an atomically stored minimum
// level so IsEnabled can be checked without locking.
type DefaultLogger struct {
	level atomic.Int32
	mu    sync.Mutex
	Out   io.Writer // exported for tests
}

// NewDefaultLogger creates a logger writing to os.Stderr at the given
// minimum level.
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	l := &DefaultLogger{Out: os.Stderr}
	l.level.Store(int32(level))
	return l
}

// NewFileLogger creates a logger appending to the named file.
func NewFileLogger(level LogLevel, filename string) (*DefaultLogger, error) {
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	l := &DefaultLogger{Out: file}
	l.level.Store(int32(level))
	return l, nil
}

// SetLevel dynamically changes the minimum log level.
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.level.Store(int32(level))
}

// IsEnabled reports whether the given level would be logged.
func (l *DefaultLogger) IsEnabled(level LogLevel) bool {
	return level >= LogLevel(l.level.Load())
}

// Log writes entry as a single line of the form
// "LEVEL 15:04:05.000 [category] message fiber=N conn=N err=...".
func (l *DefaultLogger) Log(entry LogEntry) {
	if !l.IsEnabled(entry.Level) {
		return
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.Out, "%s %s [%-9s] %s",
		entry.Level.String(),
		entry.Timestamp.Format("15:04:05.000"),
		entry.Category,
		entry.Message,
	)
	if entry.FiberID != 0 {
		fmt.Fprintf(l.Out, " fiber=%d", entry.FiberID)
	}
	if entry.ConnFD != 0 {
		fmt.Fprintf(l.Out, " conn=%d", entry.ConnFD)
	}
	for k, v := range entry.Context {
		fmt.Fprintf(l.Out, " %s=%v", k, v)
	}
	if entry.Err != nil {
		fmt.Fprintf(l.Out, " err=%v\n", entry.Err)
	} else {
		fmt.Fprintln(l.Out)
	}
}

// NoOpLogger discards everything. Used as the default when no logger is
// configured via WithLogger.
type NoOpLogger struct{}

// NewNoOpLogger returns a Logger that discards all entries.
func NewNoOpLogger() *NoOpLogger { return &NoOpLogger{} }

func (l *NoOpLogger) Log(LogEntry) {}

func (l *NoOpLogger) IsEnabled(LogLevel) bool { return false }

// logDebug, logWarn, logError are the internal call sites used by
// scheduler.go, tcp.go, and router.go; they perform the IsEnabled
// check before building the entry so a disabled logger costs one branch.

func logDebug(l Logger, category, message string, fiberID int) {
	if !l.IsEnabled(LevelDebug) {
		return
	}
	l.Log(LogEntry{Level: LevelDebug, Category: category, Message: message, FiberID: fiberID})
}

func logWarn(l Logger, category, message string, err error) {
	if !l.IsEnabled(LevelWarn) {
		return
	}
	l.Log(LogEntry{Level: LevelWarn, Category: category, Message: message, Err: err})
}

func logError(l Logger, category, message string, err error) {
	if !l.IsEnabled(LevelError) {
		return
	}
	l.Log(LogEntry{Level: LevelError, Category: category, Message: message, Err: err})
}
