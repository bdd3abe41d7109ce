package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/fseq/internal/models"
)

// LatestLink is the name of the symlink pointing at the newest run log.
const LatestLink = "latest.log"

// FileLogger logs run events to a timestamped file in a log directory and
// maintains a latest.log symlink pointing to the most recent run.
// It is thread-safe and implements the executor.Logger interface.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger in logDir at the given level.
// It creates the log directory if it doesn't exist, opens a timestamped
// run log file, and creates/updates the latest.log symlink.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// run-YYYYMMDD-HHMMSS.log; a numeric suffix keeps runs in the same second apart
	stamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", stamp))
	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	for n := 1; err != nil && os.IsExist(err); n++ {
		runFile = filepath.Join(logDir, fmt.Sprintf("run-%s-%d.log", stamp, n))
		file, err = os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, LatestLink)
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	logger.writeRunLog("=== fseq run log ===\n")
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// Path returns the run log file path.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}

	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogAction records one action of a plan. Actions are always recorded so the
// file can be used to finish an interrupted plan by hand.
func (fl *FileLogger) LogAction(action models.RenameAction) {
	fl.writeRunLog(fmt.Sprintf("[%s] %s\n", timestamp(), action.String()))
}

// LogSummary writes the per-target summary block.
func (fl *FileLogger) LogSummary(summary models.RunSummary) {
	ts := timestamp()

	status := "SUCCESS"
	switch {
	case summary.Interrupted:
		status = "INTERRUPTED"
	case summary.Err != nil && summary.Actions == 0:
		status = "ERROR: " + summary.Err.Error()
	case summary.Failed > 0:
		status = "FAILED"
	case summary.DryRun:
		status = "DRY RUN"
	}

	message := fmt.Sprintf(
		"\n[%s] === %s %s ===\n"+
			"[%s] Run:          %s\n"+
			"[%s] Actions:      %d (%d temporary)\n"+
			"[%s] Applied:      %d\n"+
			"[%s] Failed:       %d\n"+
			"[%s] Duration:     %s\n"+
			"[%s] Status:       %s\n",
		ts, summary.Operation, summary.Target,
		ts, summary.RunID,
		ts, summary.Actions, summary.Temporaries,
		ts, summary.Applied,
		ts, summary.Failed,
		ts, formatDuration(summary.Duration),
		ts, status,
	)

	if summary.Err != nil && summary.Failed > 0 {
		message += fmt.Sprintf("[%s] Errors:       %v\n", ts, summary.Err)
	}

	fl.writeRunLog(message)
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
