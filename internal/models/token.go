package models

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// FileToken is the parsed view of one file name:
// <stem>[.<tag>].<index>.<suffix>
type FileToken struct {
	Dir     string    // Directory holding the file
	Stem    string    // Everything before the tag and index segments
	Tag     string    // Tag literal the file was parsed against
	Tagged  bool      // Third-from-last segment equals Tag
	Index   *int      // Parsed sequence number, nil when not numbered
	Suffix  string    // Final segment (extension)
	ModTime time.Time // Modification time, zero unless read from disk
}

// HasIndex reports whether the token carries a sequence number.
func (t *FileToken) HasIndex() bool {
	return t.Index != nil
}

// Name renders the canonical file name for the token.
func (t *FileToken) Name() string {
	return RenderName(t.Stem, t.Tag, t.Tagged, t.Index, t.Suffix)
}

// Path is Name joined to Dir.
func (t *FileToken) Path() string {
	return filepath.Join(t.Dir, t.Name())
}

// WithIndex returns the full path the file would have with a different
// sequence number, keeping stem, tag and suffix.
func (t *FileToken) WithIndex(index int) string {
	return filepath.Join(t.Dir, RenderName(t.Stem, t.Tag, t.Tagged, &index, t.Suffix))
}

// RenderName builds stem[.tag][.index].suffix. A nil index omits the index
// segment and an empty suffix omits the suffix segment. Indices are padded to
// four digits and never truncated.
func RenderName(stem, tag string, tagged bool, index *int, suffix string) string {
	bits := []string{stem}
	if tagged {
		bits = append(bits, tag)
	}
	if index != nil {
		bits = append(bits, PadIndex(*index))
	}
	if suffix != "" {
		bits = append(bits, suffix)
	}
	return strings.Join(bits, ".")
}

// PadIndex zero-pads n to at least four digits.
func PadIndex(n int) string {
	s := strconv.Itoa(n)
	if n < 0 || len(s) >= 4 {
		return s
	}
	return strings.Repeat("0", 4-len(s)) + s
}
