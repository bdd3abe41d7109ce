package logger

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/harrison/fseq/internal/models"
)

func TestNewConsoleLogger(t *testing.T) {
	t.Run("with valid writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewConsoleLogger(buf, "info")

		if logger.writer != buf {
			t.Error("writer not set correctly")
		}
		if logger.logLevel != "info" {
			t.Errorf("expected log level %q, got %q", "info", logger.logLevel)
		}
		if logger.colorOutput {
			t.Error("color should be off for a non-terminal writer")
		}
	})

	t.Run("with nil writer", func(t *testing.T) {
		logger := NewConsoleLogger(nil, "info")
		logger.LogInfo("discarded")
		logger.LogAction(models.RenameAction{Src: "a", Dest: "b"})
		logger.LogSummary(models.RunSummary{})
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		logger := NewConsoleLogger(&bytes.Buffer{}, "LOUD")
		if logger.logLevel != "info" {
			t.Errorf("expected info, got %q", logger.logLevel)
		}
	})
}

func TestConsoleLevelFiltering(t *testing.T) {
	tests := []struct {
		level   string
		logged  []string
		dropped []string
	}{
		{"trace", []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}, nil},
		{"debug", []string{"DEBUG", "INFO", "WARN", "ERROR"}, []string{"TRACE"}},
		{"info", []string{"INFO", "WARN", "ERROR"}, []string{"TRACE", "DEBUG"}},
		{"WARN", []string{"WARN", "ERROR"}, []string{"TRACE", "DEBUG", "INFO"}},
		{"error", []string{"ERROR"}, []string{"TRACE", "DEBUG", "INFO", "WARN"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.level)

			logger.LogTrace("msg")
			logger.LogDebug("msg")
			logger.LogInfo("msg")
			logger.LogWarn("msg")
			logger.LogError("msg")

			out := buf.String()
			for _, want := range tt.logged {
				if !strings.Contains(out, "["+want+"] msg") {
					t.Errorf("expected %s message in output:\n%s", want, out)
				}
			}
			for _, skip := range tt.dropped {
				if strings.Contains(out, "["+skip+"]") {
					t.Errorf("did not expect %s message in output:\n%s", skip, out)
				}
			}
		})
	}
}

func TestConsoleMessageFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	logger.LogWarn("lock busy")

	line := buf.String()
	// [HH:MM:SS] [WARN] lock busy
	if len(line) < 11 || line[0] != '[' || line[9] != ']' {
		t.Fatalf("expected timestamp prefix, got %q", line)
	}
	if _, err := time.Parse("15:04:05", line[1:9]); err != nil {
		t.Errorf("timestamp %q does not parse: %v", line[1:9], err)
	}
	if !strings.HasSuffix(line, " [WARN] lock busy\n") {
		t.Errorf("unexpected line %q", line)
	}
}

func TestConsoleLogAction(t *testing.T) {
	buf := &bytes.Buffer{}
	// Actions print regardless of level
	logger := NewConsoleLogger(buf, "error")

	logger.LogAction(models.RenameAction{Src: "d/a.0005.jpg", Dest: "d/a.0004.jpg"})
	logger.LogAction(models.RenameAction{Src: "d/x.jpg", Dest: "d/a.0005.jpg"})

	want := "d/a.0005.jpg -> d/a.0004.jpg\nd/x.jpg -> d/a.0005.jpg\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestConsoleLogSummary(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		summary  models.RunSummary
		contains []string
		empty    bool
	}{
		{
			name:  "applied",
			level: "info",
			summary: models.RunSummary{
				Operation: "consolidate", Target: "photos",
				Actions: 3, Temporaries: 1, Applied: 3, Duration: 12 * time.Millisecond,
			},
			contains: []string{"consolidate photos: 3 actions (1 temporary), 3 applied, 0 failed (12ms)"},
		},
		{
			name:  "dry run",
			level: "info",
			summary: models.RunSummary{
				Operation: "num-by-age", Target: "photos", DryRun: true, Actions: 2,
			},
			contains: []string{"2 actions (0 temporary), dry run, 0 failed"},
		},
		{
			name:  "interrupted",
			level: "info",
			summary: models.RunSummary{
				Operation: "consolidate", Target: "photos", Actions: 4, Applied: 1, Interrupted: true,
			},
			contains: []string{"1 applied", "interrupted, directory may be partially renamed"},
		},
		{
			name:  "target error",
			level: "info",
			summary: models.RunSummary{
				Operation: "consolidate", Target: "missing", Err: errors.New("no such directory"),
			},
			contains: []string{"consolidate missing: no such directory"},
		},
		{
			name:  "failed actions listed",
			level: "info",
			summary: models.RunSummary{
				Operation: "consolidate", Target: "photos", Actions: 2, Applied: 1, Failed: 1,
				Err: errors.New("1/2 actions failed:\n  - action 1 (a -> b): collision"),
			},
			contains: []string{
				"consolidate photos: 2 actions (0 temporary), 1 applied, 1 failed",
				"consolidate photos: 1/2 actions failed:",
				"action 1 (a -> b): collision",
			},
		},
		{
			name:    "success hidden at error level",
			level:   "error",
			summary: models.RunSummary{Operation: "consolidate", Target: "photos"},
			empty:   true,
		},
		{
			name:     "failure shown at error level",
			level:    "error",
			summary:  models.RunSummary{Operation: "consolidate", Target: "photos", Actions: 1, Failed: 1},
			contains: []string{"1 failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			NewConsoleLogger(buf, tt.level).LogSummary(tt.summary)

			out := buf.String()
			if tt.empty {
				if out != "" {
					t.Errorf("expected no output, got %q", out)
				}
				return
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output %q", want, out)
				}
			}
		})
	}
}

func TestConsoleConcurrentWrites(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.LogInfo("message")
			logger.LogAction(models.RenameAction{Src: "a", Dest: "b"})
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 40 {
		t.Errorf("expected 40 lines, got %d", len(lines))
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{5 * time.Second, "5s"},
		{90 * time.Second, "1m30s"},
		{2 * time.Minute, "2m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
