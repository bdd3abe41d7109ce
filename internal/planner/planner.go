package planner

import (
	"fmt"
	"strings"

	"github.com/harrison/fseq/internal/models"
	"github.com/harrison/fseq/internal/scan"
)

// Kind selects the operation a run performs.
type Kind int

const (
	// KindConsolidate closes numbering holes and absorbs rogue files.
	KindConsolidate Kind = iota
	// KindNumByAge renumbers files in modification time order.
	KindNumByAge
	// KindFlipTag toggles the tag of single files.
	KindFlipTag
	// KindSetTag tags single files.
	KindSetTag
	// KindUnsetTag removes the tag from single files.
	KindUnsetTag
)

// String returns the command name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConsolidate:
		return "consolidate"
	case KindNumByAge:
		return "num-by-age"
	case KindFlipTag:
		return "flip"
	case KindSetTag:
		return "set"
	case KindUnsetTag:
		return "unset"
	default:
		return "unknown"
	}
}

// IsDirOperation reports whether the kind operates on whole directories.
func (k Kind) IsDirOperation() bool {
	return k == KindConsolidate || k == KindNumByAge
}

// ParseKind maps a command name (or its -tag alias) to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "consolidate":
		return KindConsolidate, nil
	case "num-by-age", "reorder-by-age":
		return KindNumByAge, nil
	case "flip", "flip-tag":
		return KindFlipTag, nil
	case "set", "set-tag":
		return KindSetTag, nil
	case "unset", "unset-tag":
		return KindUnsetTag, nil
	default:
		return 0, fmt.Errorf("unknown operation %q", name)
	}
}

// DirFunc plans the renames for a whole directory.
type DirFunc func(c *scan.Classifier, dir, tag string) ([]models.RenameAction, error)

// FileFunc plans the renames for one file in an already classified directory.
type FileFunc func(files *scan.DirFiles, path string) []models.RenameAction

// DirPlanner returns the directory planner for kind.
func DirPlanner(kind Kind) (DirFunc, error) {
	switch kind {
	case KindConsolidate:
		return ConsolidateDir, nil
	case KindNumByAge:
		return ReorderDirByAge, nil
	default:
		return nil, fmt.Errorf("%s is not a directory operation", kind)
	}
}

// FilePlanner returns the single-file planner for kind.
func FilePlanner(kind Kind) (FileFunc, error) {
	switch kind {
	case KindFlipTag:
		return FlipTag, nil
	case KindSetTag:
		return SetTag, nil
	case KindUnsetTag:
		return UnsetTag, nil
	default:
		return nil, fmt.Errorf("%s is not a file operation", kind)
	}
}
