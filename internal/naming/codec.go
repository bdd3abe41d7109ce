package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/harrison/fseq/internal/models"
)

// minIndexDigits is the narrowest segment accepted as a sequence number.
const minIndexDigits = 4

// ErrTooFewSegments is returned when a name has fewer than three
// dot-separated segments and so cannot carry stem, index and suffix.
var ErrTooFewSegments = errors.New("filename does not contain enough information")

// Tokenize parses the base name of path against tag. The returned token has
// a nil Index when the second-to-last segment is not a run of four or more
// digits. ModTime is left zero.
func Tokenize(path, tag string) (*models.FileToken, error) {
	base := filepath.Base(path)
	segs := strings.Split(base, ".")
	n := len(segs)
	if n < 3 {
		return nil, fmt.Errorf("tokenize %s: %w", base, ErrTooFewSegments)
	}

	tagged := segs[n-3] == tag
	stemCount := n - 2
	if tagged {
		stemCount = n - 3
	}

	token := &models.FileToken{
		Dir:    filepath.Dir(path),
		Stem:   strings.Join(segs[:stemCount], "."),
		Tag:    tag,
		Tagged: tagged,
		Suffix: segs[n-1],
	}
	if index, ok := ParseIndex(segs[n-2]); ok {
		token.Index = &index
	}
	return token, nil
}

// Render is the inverse of Tokenize for the name part.
func Render(stem, tag string, tagged bool, index *int, suffix string) string {
	return models.RenderName(stem, tag, tagged, index, suffix)
}

// ParseIndex accepts a segment made only of digits, at least four long.
func ParseIndex(seg string) (int, bool) {
	if len(seg) < minIndexDigits {
		return 0, false
	}
	for _, ch := range seg {
		if ch < '0' || ch > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(seg)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsTagged applies the tag membership rule to the base name of path.
func IsTagged(path, tag string) bool {
	segs := strings.Split(filepath.Base(path), ".")
	if len(segs) < 3 {
		return false
	}
	return segs[len(segs)-3] == tag
}

// Extension returns the text after the last dot of the base name, or "" when
// there is none. A leading dot alone does not start an extension.
func Extension(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndex(base, ".")
	if i <= 0 {
		return ""
	}
	return base[i+1:]
}

// PadIndex zero-pads n to at least four digits.
func PadIndex(n int) string {
	return models.PadIndex(n)
}
