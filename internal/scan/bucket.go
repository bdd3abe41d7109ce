package scan

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/harrison/fseq/internal/models"
	"github.com/harrison/fseq/internal/naming"
)

// Bucket holds the files of one tag subtype of a directory.
type Bucket struct {
	Dirname       string   // Directory the files live in
	Basename      string   // Expected name prefix: B, or B.T for the tagged subtype
	RogueFiles    []string // Files not matching Basename.NNNN.ext, sorted
	NumberedFiles []string // Files matching the convention, sorted
	Numbers       []int    // Indices of NumberedFiles, ascending

	pattern *regexp.Regexp
}

// NewBucket creates an empty bucket for files named basename.NNNN.ext in dirname.
func NewBucket(dirname, basename string) *Bucket {
	return &Bucket{
		Dirname:  dirname,
		Basename: basename,
		pattern:  regexp.MustCompile(`^` + regexp.QuoteMeta(basename) + `\.(\d+)\.\w+$`),
	}
}

// BucketOf builds a bucket from a list of file paths already known to belong
// to it.
func BucketOf(dirname, basename string, files ...string) *Bucket {
	b := NewBucket(dirname, basename)
	for _, f := range files {
		b.add(f)
	}
	b.sort()
	return b
}

// IndexOf returns the sequence number of path when its base name follows the
// bucket's naming convention.
func (b *Bucket) IndexOf(path string) (int, bool) {
	m := b.pattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// add files path as numbered or rogue depending on its name.
func (b *Bucket) add(path string) {
	if n, ok := b.IndexOf(path); ok {
		b.NumberedFiles = append(b.NumberedFiles, path)
		b.Numbers = append(b.Numbers, n)
		return
	}
	b.RogueFiles = append(b.RogueFiles, path)
}

func (b *Bucket) sort() {
	sort.Strings(b.RogueFiles)
	sort.Strings(b.NumberedFiles)
	sort.Ints(b.Numbers)
}

// HoleList returns the unused indices below the highest one in use.
func (b *Bucket) HoleList() []int {
	return HoleList(b.Numbers)
}

// FirstSlot returns the lowest index a new file can take.
func (b *Bucket) FirstSlot() int {
	return FirstSlot(b.Numbers)
}

// PathFor names file as member index of this bucket, keeping its extension.
func (b *Bucket) PathFor(file string, index int) string {
	name := models.RenderName(b.Basename, "", false, &index, naming.Extension(file))
	return filepath.Join(b.Dirname, name)
}

// HoleList returns, in ascending order, every integer in [1, max(numbers))
// that does not appear in numbers. numbers need not be sorted or unique.
func HoleList(numbers []int) []int {
	if len(numbers) == 0 {
		return nil
	}

	used := make(map[int]bool, len(numbers))
	highest := numbers[0]
	for _, n := range numbers {
		used[n] = true
		if n > highest {
			highest = n
		}
	}

	var holes []int
	for i := 1; i < highest; i++ {
		if !used[i] {
			holes = append(holes, i)
		}
	}
	return holes
}

// FirstSlot is the first hole, or one past the highest number when there
// are no holes, or 1 for an empty sequence.
func FirstSlot(numbers []int) int {
	if holes := HoleList(numbers); len(holes) > 0 {
		return holes[0]
	}
	if len(numbers) == 0 {
		return 1
	}
	highest := numbers[0]
	for _, n := range numbers {
		if n > highest {
			highest = n
		}
	}
	return highest + 1
}
