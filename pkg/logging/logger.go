package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is the minimum severity a Logger writes.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the tag written in front of each entry.
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
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel maps debug, info, warn and error to a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// sink is the destination shared by a logger and every logger derived from it.
type sink struct {
	mu        sync.Mutex
	out       *log.Logger
	file      *os.File
	path      string
	closeOnce sync.Once
}

func (s *sink) println(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out.Println(line)
}

func (s *sink) close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.file != nil {
			err = s.file.Close()
		}
	})
	return err
}

// Logger writes component-tagged entries for one probe run. Loggers derived
// with ForSession share the parent's destination and also tag each entry
// with the browser session they describe.
type Logger struct {
	sink      *sink
	runID     string
	component string
	sessionID string
	level     Level
}

var (
	// Run ID shared by every logger of this process
	runID     string
	runIDOnce sync.Once

	logDir   string
	initOnce sync.Once
	initErr  error
)

func getRunID() string {
	runIDOnce.Do(func() {
		runID = uuid.New().String()
	})
	return runID
}

func initLogDirectory() error {
	initOnce.Do(func() {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			initErr = fmt.Errorf("failed to get home directory: %w", err)
			return
		}

		logDir = filepath.Join(homeDir, ".probe", "logs")
		if err := os.MkdirAll(logDir, 0750); err != nil {
			initErr = fmt.Errorf("failed to create log directory: %w", err)
		}
	})
	return initErr
}

// NewLogger creates a logger writing to ~/.probe/logs/<run-id>-probe.log.
// On failure it returns the error together with a logger that writes to
// stderr, so callers may keep logging either way.
func NewLogger(component string) (*Logger, error) {
	if err := initLogDirectory(); err != nil {
		return newFallbackLogger(component, err), err
	}

	id := getRunID()
	path := filepath.Join(logDir, id+"-probe.log")

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		err = fmt.Errorf("failed to open log file: %w", err)
		return newFallbackLogger(component, err), err
	}

	return &Logger{
		sink:      &sink{out: log.New(file, "", 0), file: file, path: path},
		runID:     id,
		component: component,
		level:     LevelInfo,
	}, nil
}

// NewWriterLogger creates a logger that writes to w instead of the run's
// log file. Close is a no-op for it.
func NewWriterLogger(component string, w io.Writer) *Logger {
	return &Logger{
		sink:      &sink{out: log.New(w, "", 0)},
		runID:     getRunID(),
		component: component,
		level:     LevelDebug,
	}
}

func newFallbackLogger(component string, err error) *Logger {
	l := NewWriterLogger(component, os.Stderr)
	l.level = LevelInfo
	l.Warnf("file logging unavailable, writing to stderr: %v", err)
	return l
}

// ForSession returns a logger that tags every entry with sessionID. It
// shares the receiver's destination and level.
func (l *Logger) ForSession(sessionID string) *Logger {
	child := *l
	child.sessionID = sessionID
	return &child
}

// SetLevel drops entries below level. It applies to this logger only, not
// to loggers already derived from it.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// Level returns the minimum level written.
func (l *Logger) Level() Level {
	return l.level
}

// formatEntry renders "<time> [component] [LEVEL] [session=<id>] message";
// the session tag is omitted when no session is set.
func (l *Logger) formatEntry(level Level, message string) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	b.WriteString("] [")
	b.WriteString(l.component)
	b.WriteString("] [")
	b.WriteString(level.String())
	b.WriteString("] ")
	if l.sessionID != "" {
		b.WriteString("[session=")
		b.WriteString(l.sessionID)
		b.WriteString("] ")
	}
	b.WriteString(message)
	return b.String()
}

func (l *Logger) write(level Level, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	l.sink.println(l.formatEntry(level, fmt.Sprintf(format, v...)))
}

// Debugf logs a debug-level message
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.write(LevelDebug, format, v...)
}

// Infof logs an info-level message
func (l *Logger) Infof(format string, v ...interface{}) {
	l.write(LevelInfo, format, v...)
}

// Warnf logs a warning-level message
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.write(LevelWarn, format, v...)
}

// Errorf logs an error-level message
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.write(LevelError, format, v...)
}

// RunID returns the run ID this logger tags its file with
func (l *Logger) RunID() string {
	return l.runID
}

// SessionID returns the session tag, or "" for a run-level logger
func (l *Logger) SessionID() string {
	return l.sessionID
}

// LogPath returns the path to the log file, or "" when not file-backed
func (l *Logger) LogPath() string {
	return l.sink.path
}

// Close closes the log file shared with every derived logger. Safe to call
// multiple times.
func (l *Logger) Close() error {
	return l.sink.close()
}

// GetRunID returns the current global run ID
func GetRunID() string {
	return getRunID()
}

// GetLogDirectory returns the directory where logs are stored
func GetLogDirectory() (string, error) {
	if err := initLogDirectory(); err != nil {
		return "", err
	}
	return logDir, nil
}
