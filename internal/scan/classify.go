package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/harrison/fseq/internal/models"
	"github.com/harrison/fseq/internal/naming"
)

// DirFiles is the classification of one directory.
type DirFiles struct {
	Dirname  string
	Tag      string
	Tagged   *Bucket
	Untagged *Bucket
}

// BucketFor returns the bucket a file belongs to under the tag membership rule.
func (d *DirFiles) BucketFor(path string) *Bucket {
	if naming.IsTagged(path, d.Tag) {
		return d.Tagged
	}
	return d.Untagged
}

// TokenMap maps file paths to their parsed tokens, split by tag subtype.
type TokenMap struct {
	Tagged   map[string]*models.FileToken
	Untagged map[string]*models.FileToken
}

// ClassifyError reports a directory that could not be read.
type ClassifyError struct {
	Dir string
	Err error
}

// Error implements the error interface.
func (e *ClassifyError) Error() string {
	return fmt.Sprintf("classify %s: %v", e.Dir, e.Err)
}

// Unwrap returns the underlying error.
func (e *ClassifyError) Unwrap() error {
	return e.Err
}

// Classifier scans directories through an FS.
type Classifier struct {
	fs FS
}

// NewClassifier returns a Classifier reading through fsys. A nil fsys reads
// the real filesystem.
func NewClassifier(fsys FS) *Classifier {
	if fsys == nil {
		fsys = OSFS{}
	}
	return &Classifier{fs: fsys}
}

// Classify reads the real filesystem. See Classifier.Classify.
func Classify(dir, tag string) (*DirFiles, error) {
	return NewClassifier(nil).Classify(dir, tag)
}

// BuildTokenMap reads the real filesystem. See Classifier.TokenMap.
func BuildTokenMap(dir, tag string) (*TokenMap, error) {
	return NewClassifier(nil).TokenMap(dir, tag)
}

// Classify sorts the files of dir into tagged and untagged buckets. Paths are
// built by joining dir with each entry name, so callers get back paths in the
// same form they passed in.
func (c *Classifier) Classify(dir, tag string) (*DirFiles, error) {
	base, err := dirBasename(dir)
	if err != nil {
		return nil, &ClassifyError{Dir: dir, Err: err}
	}

	files, err := c.listFiles(dir)
	if err != nil {
		return nil, &ClassifyError{Dir: dir, Err: err}
	}

	result := &DirFiles{
		Dirname:  dir,
		Tag:      tag,
		Untagged: NewBucket(dir, base),
		Tagged:   NewBucket(dir, base+"."+tag),
	}

	for _, f := range files {
		result.BucketFor(f.path).add(f.path)
	}

	result.Untagged.sort()
	result.Tagged.sort()
	return result, nil
}

// TokenMap parses every file of dir into a token carrying its modification
// time. Files with fewer than three name segments are skipped.
func (c *Classifier) TokenMap(dir, tag string) (*TokenMap, error) {
	files, err := c.listFiles(dir)
	if err != nil {
		return nil, &ClassifyError{Dir: dir, Err: err}
	}

	result := &TokenMap{
		Tagged:   make(map[string]*models.FileToken),
		Untagged: make(map[string]*models.FileToken),
	}

	for _, f := range files {
		token, err := naming.Tokenize(f.path, tag)
		if err != nil {
			continue
		}
		token.ModTime = f.info.ModTime()

		if token.Tagged {
			result.Tagged[f.path] = token
		} else {
			result.Untagged[f.path] = token
		}
	}

	return result, nil
}

// Stat describes path through the classifier's FS, following symlinks.
func (c *Classifier) Stat(path string) (fs.FileInfo, error) {
	return c.fs.Stat(path)
}

// Files returns the paths of every non-directory entry of dir.
func (c *Classifier) Files(dir string) ([]string, error) {
	files, err := c.listFiles(dir)
	if err != nil {
		return nil, &ClassifyError{Dir: dir, Err: err}
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}

type listedFile struct {
	path string
	info fs.FileInfo
}

// listFiles returns the non-directory entries of dir. Symlinks are followed
// to decide whether they point at a directory; dangling links are kept as
// files.
func (c *Classifier) listFiles(dir string) ([]listedFile, error) {
	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []listedFile
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		info, err := c.fs.Stat(path)
		if err != nil {
			if entry.IsDir() {
				continue
			}
			info, err = entry.Info()
			if err != nil {
				continue
			}
		}
		if info.IsDir() {
			continue
		}

		files = append(files, listedFile{path: path, info: info})
	}
	return files, nil
}

func dirBasename(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	base := filepath.Base(abs)
	if base == string(filepath.Separator) || base == "." {
		return "", fmt.Errorf("invalid directory name %q", dir)
	}
	return base, nil
}
