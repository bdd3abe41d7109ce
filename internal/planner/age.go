package planner

import (
	"sort"

	"github.com/harrison/fseq/internal/models"
	"github.com/harrison/fseq/internal/scan"
)

// ReorderDirByAge renumbers both tag subtypes of dir by modification time,
// untagged first. dir is expected to be consolidated already.
func ReorderDirByAge(c *scan.Classifier, dir, tag string) ([]models.RenameAction, error) {
	tokens, err := c.TokenMap(dir, tag)
	if err != nil {
		return nil, err
	}

	actions := ReorderByAge(tokens.Untagged)
	return append(actions, ReorderByAge(tokens.Tagged)...), nil
}

// ReorderByAge assigns 1, 2, 3, ... to the indexed files of one subtype in
// modification time order and returns a move for every file whose index
// changes. Files without an index are left alone and do not consume a number.
// The result is a permutation over the occupied slots and usually contains
// cycles.
func ReorderByAge(tokens map[string]*models.FileToken) []models.RenameAction {
	paths := make([]string, 0, len(tokens))
	for path := range tokens {
		paths = append(paths, path)
	}
	sort.Slice(paths, func(i, j int) bool {
		ti, tj := tokens[paths[i]].ModTime, tokens[paths[j]].ModTime
		if ti.Equal(tj) {
			return paths[i] < paths[j]
		}
		return ti.Before(tj)
	})

	var actions []models.RenameAction
	expected := 1
	for _, path := range paths {
		token := tokens[path]
		if !token.HasIndex() {
			continue
		}
		if *token.Index != expected {
			actions = append(actions, models.RenameAction{
				Src:  path,
				Dest: token.WithIndex(expected),
			})
		}
		expected++
	}
	return actions
}
