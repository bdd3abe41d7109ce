// Package logger provides logging implementations for fseq runs.
//
// The logger package reports the actions of a move plan, failures, and a
// per-target summary. Implementations are thread-safe and support various
// output destinations (console, file, etc.).
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/fseq/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs run progress to a writer with timestamps and thread safety.
// Leveled messages are prefixed with [HH:MM:SS] timestamps. Actions are printed
// bare as "source -> destination" so the output can be read back as a plan.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// logLevel determines the minimum log level for messages to be output.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		mutex:       sync.Mutex{},
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// Returns true for os.Stdout and os.Stderr when they are TTYs.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}

	if w == os.Stdout || w == os.Stderr {
		// color.NoColor is false only on a TTY without NO_COLOR set
		return !color.NoColor
	}

	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[normalized] {
		return normalized
	}

	return "info"
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
// Format: "[HH:MM:SS] [ERROR] <message>"
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

func colorLevel(level string) string {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}

// LogAction prints one action of a plan.
// Format: "<source> -> <destination>"
func (cl *ConsoleLogger) LogAction(action models.RenameAction) {
	if cl.writer == nil {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	arrow := "->"
	if cl.colorOutput {
		arrow = color.New(color.FgCyan).Sprint(arrow)
	}

	fmt.Fprintf(cl.writer, "%s %s %s\n", action.Src, arrow, action.Dest)
}

// LogSummary logs the result of one target at INFO level, or at ERROR level
// when anything failed.
// Format: "[HH:MM:SS] <operation> <target>: <n> actions, <n> applied, <n> failed (<d>)"
func (cl *ConsoleLogger) LogSummary(summary models.RunSummary) {
	if cl.writer == nil {
		return
	}

	level := "info"
	if !summary.Succeeded() {
		level = "error"
	}
	if !cl.shouldLog(level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	target := summary.Target
	failed := fmt.Sprintf("%d failed", summary.Failed)
	if cl.colorOutput {
		target = color.New(color.Bold).Sprint(target)
		if summary.Failed > 0 {
			failed = color.New(color.FgRed).Sprint(failed)
		} else {
			failed = color.New(color.FgGreen).Sprint(failed)
		}
	}

	var output string
	if summary.Err != nil && summary.Actions == 0 {
		// Failed before anything was scheduled
		output = fmt.Sprintf("[%s] %s %s: %v\n", ts, summary.Operation, target, summary.Err)
	} else {
		applied := fmt.Sprintf("%d applied", summary.Applied)
		if summary.DryRun {
			applied = "dry run"
		}
		output = fmt.Sprintf("[%s] %s %s: %d actions (%d temporary), %s, %s (%s)\n",
			ts, summary.Operation, target, summary.Actions, summary.Temporaries,
			applied, failed, formatDuration(summary.Duration))
		if summary.Interrupted {
			output += fmt.Sprintf("[%s] %s %s: interrupted, directory may be partially renamed\n",
				ts, summary.Operation, summary.Target)
		}
		if summary.Err != nil && summary.Failed > 0 {
			output += fmt.Sprintf("[%s] %s %s: %v\n", ts, summary.Operation, summary.Target, summary.Err)
		}
	}

	cl.writer.Write([]byte(output))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "12ms", "5s", "1m30s"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

// NoOpLogger is a Logger implementation that discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(message string)              {}
func (n *NoOpLogger) LogDebug(message string)              {}
func (n *NoOpLogger) LogInfo(message string)               {}
func (n *NoOpLogger) LogWarn(message string)               {}
func (n *NoOpLogger) LogError(message string)              {}
func (n *NoOpLogger) LogAction(action models.RenameAction) {}
func (n *NoOpLogger) LogSummary(summary models.RunSummary) {}
