package exchange

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Enumerate expands pattern against the filesystem and returns the matching
// directories sorted ascending by full path. Files and entries that vanish
// while being inspected are skipped. An empty result is not an error.
//
// The only error is filepath.ErrBadPattern, which a pattern built from plain
// identifiers never produces.
func Enumerate(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
	}

	dirs := make([]string, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, match)
	}

	sort.Strings(dirs)
	return dirs, nil
}
