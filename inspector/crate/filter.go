package crate

import (
	"path/filepath"
	"strings"

	"github.com/viant/rdsm/internal/fsx"
)

// passesFileFilter applies the file-filtering policy: test-basename and
// tests-directory exclusion when enabled, then include/exclude glob
// lists where excludes always win.
func (r *Resolver) passesFileFilter(_ string, absPath string) bool {
	rel, err := filepath.Rel(r.projectRoot, absPath)
	if err != nil {
		rel = absPath
	}
	rel = filepath.ToSlash(rel)

	if r.filter.ExcludeTestFiles && isTestBasename(filepath.Base(absPath)) {
		return false
	}
	if r.filter.ExcludeTestsDirectory && underTestsDirectory(rel) {
		return false
	}
	if len(r.filter.ExcludePatterns) > 0 && fsx.MatchAny(r.filter.ExcludePatterns, rel) {
		return false
	}
	if len(r.filter.IncludePatterns) > 0 && !fsx.MatchAny(r.filter.IncludePatterns, rel) {
		return false
	}
	return true
}

func isTestBasename(base string) bool {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return strings.HasSuffix(stem, "_test") || strings.HasSuffix(stem, "_tests")
}

// underTestsDirectory reports whether relPath (project-root relative)
// lies under the top-level tests directory.
func underTestsDirectory(relPath string) bool {
	parts := strings.Split(relPath, "/")
	return len(parts) > 1 && parts[0] == "tests"
}
