package planner

import (
	"github.com/harrison/fseq/internal/models"
	"github.com/harrison/fseq/internal/naming"
	"github.com/harrison/fseq/internal/scan"
)

// FlipTag tags an untagged file and untags a tagged one.
func FlipTag(files *scan.DirFiles, path string) []models.RenameAction {
	if naming.IsTagged(path, files.Tag) {
		return UnsetTag(files, path)
	}
	return SetTag(files, path)
}

// SetTag moves an untagged file into the first free slot of the tagged
// sequence. Tagged files are left alone.
func SetTag(files *scan.DirFiles, path string) []models.RenameAction {
	if naming.IsTagged(path, files.Tag) {
		return nil
	}
	return moveToFirstSlot(files.Tagged, path)
}

// UnsetTag moves a tagged file into the first free slot of the untagged
// sequence. Untagged files are left alone.
func UnsetTag(files *scan.DirFiles, path string) []models.RenameAction {
	if !naming.IsTagged(path, files.Tag) {
		return nil
	}
	return moveToFirstSlot(files.Untagged, path)
}

func moveToFirstSlot(b *scan.Bucket, path string) []models.RenameAction {
	return []models.RenameAction{{
		Src:  path,
		Dest: b.PathFor(path, b.FirstSlot()),
	}}
}
