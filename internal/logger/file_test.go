package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/fseq/internal/models"
)

func readRunLog(t *testing.T, fl *FileLogger) string {
	t.Helper()
	require.NoError(t, fl.Close())
	data, err := os.ReadFile(fl.Path())
	require.NoError(t, err)
	return string(data)
}

func TestNewFileLogger(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	fl, err := NewFileLogger(logDir, "info")
	require.NoError(t, err)
	defer fl.Close()

	assert.FileExists(t, fl.Path())
	assert.True(t, strings.HasPrefix(filepath.Base(fl.Path()), "run-"))

	target, err := os.Readlink(filepath.Join(logDir, LatestLink))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(fl.Path()), target)
}

func TestFileLoggerLatestLinkMovesToNewestRun(t *testing.T) {
	logDir := t.TempDir()

	first, err := NewFileLogger(logDir, "info")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewFileLogger(logDir, "info")
	require.NoError(t, err)
	defer second.Close()

	assert.NotEqual(t, first.Path(), second.Path())

	target, err := os.Readlink(filepath.Join(logDir, LatestLink))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(second.Path()), target)
}

func TestFileLoggerContent(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "warn")
	require.NoError(t, err)

	fl.LogInfo("filtered out")
	fl.LogWarn("kept warning")
	fl.LogAction(models.RenameAction{Src: "d/a.jpg", Dest: "d/b.0001.jpg"})
	fl.LogSummary(models.RunSummary{
		RunID: "abc", Operation: "consolidate", Target: "d", Actions: 1, Applied: 1,
	})

	out := readRunLog(t, fl)
	assert.Contains(t, out, "=== fseq run log ===")
	assert.NotContains(t, out, "filtered out")
	assert.Contains(t, out, "[WARN] kept warning")
	assert.Contains(t, out, "d/a.jpg -> d/b.0001.jpg")
	assert.Contains(t, out, "=== consolidate d ===")
	assert.Contains(t, out, "Run:          abc")
	assert.Contains(t, out, "Status:       SUCCESS")
}

func TestFileLoggerSummaryStatus(t *testing.T) {
	tests := []struct {
		name    string
		summary models.RunSummary
		want    []string
	}{
		{
			name:    "target error",
			summary: models.RunSummary{Operation: "consolidate", Target: "d", Err: errors.New("lock busy")},
			want:    []string{"Status:       ERROR: lock busy"},
		},
		{
			name: "failed actions",
			summary: models.RunSummary{
				Operation: "consolidate", Target: "d", Actions: 2, Failed: 1,
				Err: errors.New("1/2 actions failed"),
			},
			want: []string{"Status:       FAILED", "Errors:       1/2 actions failed"},
		},
		{
			name: "interrupted",
			summary: models.RunSummary{
				Operation: "consolidate", Target: "d", Actions: 3, Interrupted: true,
				Err: errors.New("0/3 actions failed (interrupted)"),
			},
			want: []string{"Status:       INTERRUPTED"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fl, err := NewFileLogger(t.TempDir(), "info")
			require.NoError(t, err)

			fl.LogSummary(tt.summary)

			out := readRunLog(t, fl)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestFileLoggerWritesAfterCloseAreDropped(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "info")
	require.NoError(t, err)
	require.NoError(t, fl.Close())

	fl.LogInfo("late")
	require.NoError(t, fl.Close())

	data, err := os.ReadFile(fl.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "late")
}

func TestMultiLogger(t *testing.T) {
	a := &bytes.Buffer{}
	b := &bytes.Buffer{}
	m := NewMultiLogger(NewConsoleLogger(a, "info"), nil, NewConsoleLogger(b, "error"))

	m.LogInfo("hello")
	m.LogAction(models.RenameAction{Src: "x", Dest: "y"})

	assert.Contains(t, a.String(), "[INFO] hello")
	assert.Contains(t, a.String(), "x -> y")
	assert.NotContains(t, b.String(), "hello")
	assert.Contains(t, b.String(), "x -> y")
}
