package logger

import "github.com/harrison/fseq/internal/models"

// Logger is the full logging surface used by the runner.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogAction(action models.RenameAction)
	LogSummary(summary models.RunSummary)
}

// MultiLogger fans every call out to each wrapped logger in order.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger wraps loggers; nil entries are dropped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) LogTrace(message string) {
	for _, l := range m.loggers {
		l.LogTrace(message)
	}
}

func (m *MultiLogger) LogDebug(message string) {
	for _, l := range m.loggers {
		l.LogDebug(message)
	}
}

func (m *MultiLogger) LogInfo(message string) {
	for _, l := range m.loggers {
		l.LogInfo(message)
	}
}

func (m *MultiLogger) LogWarn(message string) {
	for _, l := range m.loggers {
		l.LogWarn(message)
	}
}

func (m *MultiLogger) LogError(message string) {
	for _, l := range m.loggers {
		l.LogError(message)
	}
}

func (m *MultiLogger) LogAction(action models.RenameAction) {
	for _, l := range m.loggers {
		l.LogAction(action)
	}
}

func (m *MultiLogger) LogSummary(summary models.RunSummary) {
	for _, l := range m.loggers {
		l.LogSummary(summary)
	}
}

var (
	_ Logger = (*ConsoleLogger)(nil)
	_ Logger = (*FileLogger)(nil)
	_ Logger = (*NoOpLogger)(nil)
	_ Logger = (*MultiLogger)(nil)
)
