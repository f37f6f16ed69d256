package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/entrhq/probe/pkg/suite"
)

// LogLevel represents the console verbosity level
type LogLevel int

const (
	// LogLevelQuiet shows only errors, warnings and the final summary
	LogLevelQuiet LogLevel = iota
	// LogLevelNormal shows per-case progress (default)
	LogLevelNormal
	// LogLevelVerbose adds case errors and page snapshots
	LogLevelVerbose
	// LogLevelDebug shows all internal details for debugging
	LogLevelDebug
)

// String returns the name used in configuration files.
func (l LogLevel) String() string {
	switch l {
	case LogLevelQuiet:
		return "quiet"
	case LogLevelNormal:
		return "normal"
	case LogLevelVerbose:
		return "verbose"
	case LogLevelDebug:
		return "debug"
	default:
		return fmt.Sprintf("LogLevel(%d)", int(l))
	}
}

// ParseLogLevel converts a verbosity name to a LogLevel.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "quiet":
		return LogLevelQuiet, nil
	case "", "normal":
		return LogLevelNormal, nil
	case "verbose":
		return LogLevelVerbose, nil
	case "debug":
		return LogLevelDebug, nil
	default:
		return LogLevelNormal, fmt.Errorf("invalid verbosity: %s (must be quiet, normal, verbose or debug)", level)
	}
}

const ruleWidth = 70

// Logger prints run progress for humans
type Logger struct {
	level  LogLevel
	writer io.Writer
	styles styles
}

// NewLogger creates a logger writing to stdout
func NewLogger(level LogLevel) *Logger {
	return NewWriterLogger(level, os.Stdout)
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(level LogLevel, w io.Writer) *Logger {
	return &Logger{
		level:  level,
		writer: w,
		styles: newStyles(w),
	}
}

// Level returns the configured verbosity
func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) println(style func(...string) string, text string) {
	fmt.Fprintln(l.writer, style(text))
}

// Header prints a prominent header message
func (l *Logger) Header(message string) {
	if l.level < LogLevelNormal {
		return
	}
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(l.writer)
	l.println(l.styles.header.Render, rule)
	l.println(l.styles.header.Render, "  "+message)
	l.println(l.styles.header.Render, rule)
}

// Section prints a section divider
func (l *Logger) Section(title string) {
	if l.level < LogLevelNormal {
		return
	}
	fmt.Fprintln(l.writer)
	l.println(l.styles.section.Render, "▶ "+title)
	l.println(l.styles.muted.Render, strings.Repeat("─", 50))
}

// Successf prints a success message with checkmark
func (l *Logger) Successf(format string, args ...interface{}) {
	if l.level >= LogLevelNormal {
		l.println(l.styles.success.Render, "✓ "+fmt.Sprintf(format, args...))
	}
}

// Infof prints an informational message
func (l *Logger) Infof(format string, args ...interface{}) {
	if l.level >= LogLevelNormal {
		l.println(l.styles.info.Render, fmt.Sprintf(format, args...))
	}
}

// Warningf prints a warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.println(l.styles.warning.Render, "⚠ Warning: "+fmt.Sprintf(format, args...))
}

// Errorf prints an error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.println(l.styles.failure.Render, "✗ Error: "+fmt.Sprintf(format, args...))
}

// Verbosef prints detailed information (only in verbose mode)
func (l *Logger) Verbosef(format string, args ...interface{}) {
	if l.level >= LogLevelVerbose {
		l.println(l.styles.muted.Render, "→ "+fmt.Sprintf(format, args...))
	}
}

// Debugf prints debug information (only in debug mode)
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		l.println(l.styles.muted.Render, "[DEBUG] "+fmt.Sprintf(format, args...))
	}
}

// Result prints one finished case. Quiet mode prints nothing. Errors of
// failed and errored cases are printed from normal mode up, the reason a
// case was skipped only from verbose mode, and the page snapshot only in
// debug mode.
func (l *Logger) Result(result suite.Result) {
	if l.level < LogLevelNormal {
		return
	}

	line := fmt.Sprintf("%s %s (%s)", outcomeMark(result.Outcome), result.Name, result.Duration.Round(time.Millisecond))
	l.println(l.outcomeStyle(result.Outcome), "  "+line)

	if result.Error != "" {
		if l.level >= LogLevelVerbose || result.Outcome != suite.OutcomeSkipped {
			l.println(l.styles.muted.Render, "    "+result.Error)
		}
	}
	if result.PageText != "" && l.level >= LogLevelDebug {
		l.println(l.styles.muted.Render, "    page:")
		for _, line := range strings.Split(result.PageText, "\n") {
			l.println(l.styles.muted.Render, "      "+line)
		}
	}
}

// Summary prints the final run summary. It is printed at every level.
func (l *Logger) Summary(report *suite.Report) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(l.writer)
	l.println(l.styles.header.Render, rule)
	l.println(l.styles.header.Render, "  RUN SUMMARY")
	l.println(l.styles.header.Render, rule)

	fmt.Fprint(l.writer, "  Status: ")
	switch {
	case report.Aborted():
		l.println(l.styles.failure.Render, "✗ ABORTED")
	case report.Passed():
		l.println(l.styles.success.Render, "✓ PASSED")
	default:
		l.println(l.styles.failure.Render, "✗ FAILED")
	}

	fmt.Fprintf(l.writer, "  Suite: %s\n", report.Suite)
	fmt.Fprintf(l.writer, "  Duration: %s\n", report.Duration.Round(time.Millisecond))
	s := report.Summary
	fmt.Fprintf(l.writer, "  Cases: %d total, %d passed, %d failed, %d errored, %d skipped\n",
		s.Total, s.Passed, s.Failed, s.Errored, s.Skipped)

	if l.level >= LogLevelVerbose {
		fmt.Fprintf(l.writer, "  Run ID: %s\n", report.RunID)
		if report.SessionID != "" {
			fmt.Fprintf(l.writer, "  Session ID: %s\n", report.SessionID)
		}
	}

	if report.SetupError != "" {
		fmt.Fprintln(l.writer)
		l.println(l.styles.failure.Render, "  Setup Error:")
		l.println(l.styles.failure.Render, "    "+report.SetupError)
	}
	if report.TeardownError != "" {
		fmt.Fprintln(l.writer)
		l.println(l.styles.warning.Render, "  Teardown Warning:")
		l.println(l.styles.warning.Render, "    "+report.TeardownError)
	}

	l.println(l.styles.header.Render, rule)
	fmt.Fprintln(l.writer)
}

func (l *Logger) outcomeStyle(outcome suite.Outcome) func(...string) string {
	switch outcome {
	case suite.OutcomePassed:
		return l.styles.success.Render
	case suite.OutcomeSkipped:
		return l.styles.warning.Render
	default:
		return l.styles.failure.Render
	}
}

func outcomeMark(outcome suite.Outcome) string {
	switch outcome {
	case suite.OutcomePassed:
		return "✓"
	case suite.OutcomeSkipped:
		return "○"
	default:
		return "✗"
	}
}
