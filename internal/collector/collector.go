// Package collector discovers candidate source files under a scan root,
// filtering by an extension allow-list and a fixed set of excluded
// directory names.
package collector

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrRootNotFound is returned when the scan root does not exist.
var ErrRootNotFound = errors.New("scan root not found")

// DefaultExtensions is the default allow-list of source file extensions.
var DefaultExtensions = []string{
	".py", ".js", ".java", ".php", ".rb", ".go", ".cpp", ".c", ".cs",
}

// excludedDirs are directory names whose subtrees are never scanned:
// version-control metadata, dependency caches, build output, and
// virtual environments.
var excludedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	"build":        true,
	"dist":         true,
}

// File is one candidate file discovered under the scan root.
type File struct {
	Path    string // absolute (or root-joined) path on disk
	RelPath string // path relative to the scan root, slash-separated
	Size    int64
}

// Collector walks a directory tree and returns scannable files.
type Collector struct {
	extensions map[string]bool
}

// New creates a Collector for the given extension allow-list. An empty
// list falls back to DefaultExtensions.
func New(extensions []string) *Collector {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = true
	}
	return &Collector{extensions: set}
}

// Collect returns every file under root whose extension is in the
// allow-list and whose path contains no excluded directory segment.
// filepath.WalkDir visits entries in lexical order, so the result is
// deterministic for reproducible reports.
func (c *Collector) Collect(root string) ([]File, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if d.IsDir() {
			if path != root && excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !c.extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		files = append(files, File{
			Path:    path,
			RelPath: filepath.ToSlash(rel),
			Size:    fi.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
