// Package fsx wraps github.com/viant/afs for the handful of filesystem
// operations the pipeline needs: reading single files, existence
// checks, glob matching, and expanding workspace-member glob patterns.
package fsx

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/viant/afs"
)

// FS is a thin facade over afs.Service for local project trees.
type FS struct {
	service afs.Service
}

func New() *FS {
	return &FS{service: afs.New()}
}

// ReadFile returns the contents of path, or an error if it cannot be read.
func (f *FS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return f.service.DownloadWithURL(ctx, path)
}

// Exists reports whether path exists on disk.
func (f *FS) Exists(ctx context.Context, path string) bool {
	ok, err := f.service.Exists(ctx, path)
	return err == nil && ok
}

// ExpandGlobs resolves a list of doublestar patterns (relative to root)
// into matching directories, deduplicated and sorted for determinism.
func ExpandGlobs(root string, patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, pattern := range patterns {
		pattern = strings.TrimSuffix(pattern, "/")
		matches, err := doublestar.Glob(os.DirFS(root), pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			full := filepath.Join(root, m)
			info, statErr := os.Stat(full)
			if statErr != nil || !info.IsDir() {
				continue
			}
			if !seen[full] {
				seen[full] = true
				out = append(out, full)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// MatchAny reports whether relPath matches at least one of the glob
// patterns, used for the FilterConfig include/exclude lists.
func MatchAny(patterns []string, relPath string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
	}
	return false
}
