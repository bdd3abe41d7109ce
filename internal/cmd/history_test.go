package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/fseq/internal/journal"
	"github.com/harrison/fseq/internal/models"
)

func TestHistoryEmpty(t *testing.T) {
	isolateHome(t)

	output, err := executeCommand(t, "history")
	require.NoError(t, err)
	assert.Contains(t, output, "No runs recorded")
}

func TestHistoryListsRuns(t *testing.T) {
	isolateHome(t)
	first := fixtureDir(t, "first", "first.0002.jpg")
	second := fixtureDir(t, "second", "second.0002.jpg")

	_, err := executeCommand(t, "dir", "consolidate", first, second)
	require.NoError(t, err)

	output, err := executeCommand(t, "history")
	require.NoError(t, err)
	assert.Contains(t, output, "OPERATION")
	assert.Contains(t, output, first)
	assert.Contains(t, output, second)
	assert.Contains(t, output, "applied")

	output, err = executeCommand(t, "history", "--dir", first)
	require.NoError(t, err)
	assert.Contains(t, output, first)
	assert.NotContains(t, output, second)

	output, err = executeCommand(t, "history", "--limit", "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Len(t, lines, 2) // header + one run
}

func TestHistoryShow(t *testing.T) {
	home := isolateHome(t)
	dir := fixtureDir(t, "d", "d.0003.jpg")

	_, err := executeCommand(t, "dir", "consolidate", dir)
	require.NoError(t, err)

	store, err := journal.NewStore(filepath.Join(home, "journal.db"))
	require.NoError(t, err)
	runs, err := store.ListRuns(context.Background(), journal.ListFilter{})
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.Len(t, runs, 1)

	output, err := executeCommand(t, "history", "show", runs[0].ID[:8])
	require.NoError(t, err)
	assert.Contains(t, output, "=== Run "+runs[0].ID+" ===")
	assert.Contains(t, output, "Operation: consolidate")
	assert.Contains(t, output, models.OutcomeApplied)
	assert.Contains(t, output, filepath.Join(dir, "d.0003.jpg")+" -> "+filepath.Join(dir, "d.0001.jpg"))
	assert.NotContains(t, output, "never attempted")
}

func TestHistoryShowPendingSteps(t *testing.T) {
	home := isolateHome(t)

	store, err := journal.NewStore(filepath.Join(home, "journal.db"))
	require.NoError(t, err)
	run := journal.NewRun("num-by-age", "/photos", false)
	run.SetPlan([]models.RenameAction{
		{Src: "/photos/photos.0002.jpg", Dest: "/photos/_photos.0001.jpg"},
		{Src: "/photos/photos.0001.jpg", Dest: "/photos/photos.0002.jpg"},
		{Src: "/photos/_photos.0001.jpg", Dest: "/photos/photos.0001.jpg"},
	}, 1)
	run.SetOutcomes([]models.Outcome{{Seq: 1, Status: models.OutcomeApplied}})
	run.Interrupted = true
	require.NoError(t, store.RecordRun(context.Background(), run))
	require.NoError(t, store.Close())

	output, err := executeCommand(t, "history", "show", run.ID)
	require.NoError(t, err)
	assert.Contains(t, output, "interrupted")
	assert.Contains(t, output, "2 renames were never attempted")
	assert.Contains(t, output, `mv -n -- "/photos/photos.0001.jpg" "/photos/photos.0002.jpg"`)
}

func TestHistoryShowUnknownRun(t *testing.T) {
	isolateHome(t)
	dir := fixtureDir(t, "d", "d.0003.jpg")
	_, err := executeCommand(t, "dir", "consolidate", dir)
	require.NoError(t, err)

	_, err = executeCommand(t, "history", "show", "does-not-exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, journal.ErrRunNotFound)
}

func TestPaletteStatus(t *testing.T) {
	p := newPalette(true)

	tests := []struct {
		status string
		want   *color.Color
	}{
		{runStatus(&journal.Run{}), p.green},
		{runStatus(&journal.Run{Failures: 1}), p.red},
		{runStatus(&journal.Run{Interrupted: true}), p.yellow},
		{runStatus(&journal.Run{DryRun: true}), p.gray},
		{models.OutcomeCollision, p.red},
		{models.OutcomeIOError, p.red},
		{journal.StatusPending, p.yellow},
		{models.OutcomeDryRun, p.gray},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Same(t, tt.want, p.status(tt.status))
		})
	}
}
