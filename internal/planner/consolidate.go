package planner

import (
	"sort"

	"github.com/harrison/fseq/internal/models"
	"github.com/harrison/fseq/internal/scan"
)

// ConsolidateDir classifies dir and consolidates both tag subtypes, untagged
// first.
func ConsolidateDir(c *scan.Classifier, dir, tag string) ([]models.RenameAction, error) {
	files, err := c.Classify(dir, tag)
	if err != nil {
		return nil, err
	}

	actions := Consolidate(files.Untagged)
	return append(actions, Consolidate(files.Tagged)...), nil
}

// Consolidate pulls the highest-numbered files of b down into its lowest
// holes, then numbers the rogue files after the consolidated range. Holes are
// vacant and rogue indices start past the last numbered file, so no two
// actions share a destination. A rogue target may still be a slot that a
// numbered file is leaving; the scheduler orders those.
func Consolidate(b *scan.Bucket) []models.RenameAction {
	type numbered struct {
		path  string
		index int
	}

	files := make([]numbered, 0, len(b.NumberedFiles))
	for _, path := range b.NumberedFiles {
		if index, ok := b.IndexOf(path); ok {
			files = append(files, numbered{path: path, index: index})
		}
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].index < files[j].index
	})

	holes := b.HoleList()
	actions := make([]models.RenameAction, 0, len(files)+len(b.RogueFiles))

	pairs := min(len(files), len(holes))
	for i := 0; i < pairs; i++ {
		file := files[len(files)-1-i]
		hole := holes[i]
		if file.index > hole {
			actions = append(actions, models.RenameAction{
				Src:  file.path,
				Dest: b.PathFor(file.path, hole),
			})
		}
	}

	next := len(files) + 1
	for i, rogue := range b.RogueFiles {
		actions = append(actions, models.RenameAction{
			Src:  rogue,
			Dest: b.PathFor(rogue, next+i),
		})
	}

	return actions
}
