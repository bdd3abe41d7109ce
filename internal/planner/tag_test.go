package planner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/fseq/internal/models"
	"github.com/harrison/fseq/internal/scan"
)

func classifyFixture(t *testing.T, extra ...string) (string, *scan.DirFiles) {
	t.Helper()
	dir := someDir(t, append(append([]string(nil), fixtureNames...), extra...)...)
	files, err := scan.Classify(dir, "tag")
	require.NoError(t, err)
	return dir, files
}

func TestSetTag(t *testing.T) {
	dir, files := classifyFixture(t, "whatever.JPG")

	tests := []struct {
		file string
		want []models.RenameAction
	}{
		{"some.dir.0001.jpg", []models.RenameAction{move(dir, "some.dir.0001.jpg", "some.dir.tag.0001.jpg")}},
		{"some.dir.0005.jpg", []models.RenameAction{move(dir, "some.dir.0005.jpg", "some.dir.tag.0001.jpg")}},
		{"whatever.JPG", []models.RenameAction{move(dir, "whatever.JPG", "some.dir.tag.0001.JPG")}},
		{"some.dir.tag.0002.jpg", nil},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, SetTag(files, filepath.Join(dir, tt.file)))
		})
	}
}

func TestUnsetTag(t *testing.T) {
	dir, files := classifyFixture(t, "whatever.tag.55.JPG")

	tests := []struct {
		file string
		want []models.RenameAction
	}{
		{"some.dir.tag.0004.jpg", []models.RenameAction{move(dir, "some.dir.tag.0004.jpg", "some.dir.0004.jpg")}},
		{"whatever.tag.55.JPG", []models.RenameAction{move(dir, "whatever.tag.55.JPG", "some.dir.0004.JPG")}},
		{"some.dir.0001.jpg", nil},
		{"random_name.jpg", nil},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, UnsetTag(files, filepath.Join(dir, tt.file)))
		})
	}
}

func TestFlipTag(t *testing.T) {
	dir, files := classifyFixture(t)

	assert.Equal(t,
		[]models.RenameAction{move(dir, "some.dir.0002.jpg", "some.dir.tag.0001.jpg")},
		FlipTag(files, filepath.Join(dir, "some.dir.0002.jpg")))
	assert.Equal(t,
		[]models.RenameAction{move(dir, "some.dir.tag.1234.jpg", "some.dir.0004.jpg")},
		FlipTag(files, filepath.Join(dir, "some.dir.tag.1234.jpg")))
	assert.Equal(t,
		[]models.RenameAction{move(dir, "random_name.tag.1234.jpg", "some.dir.0004.jpg")},
		FlipTag(files, filepath.Join(dir, "random_name.tag.1234.jpg")))
}

func TestSetTagEmptyTaggedSequence(t *testing.T) {
	dir := someDir(t, "some.dir.0001.jpg", "some.dir.0002.jpg")
	files, err := scan.Classify(dir, "sel")
	require.NoError(t, err)

	actions := SetTag(files, filepath.Join(dir, "some.dir.0002.jpg"))
	assert.Equal(t, []models.RenameAction{move(dir, "some.dir.0002.jpg", "some.dir.sel.0001.jpg")}, actions)

	// The destination is a vacant slot, so the plan applies as is.
	require.NoError(t, os.Rename(actions[0].Src, actions[0].Dest))
	_, err = os.Stat(filepath.Join(dir, "some.dir.sel.0001.jpg"))
	assert.NoError(t, err)
}
