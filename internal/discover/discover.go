// Package discover expands command-line paths into the JavaScript files to lint.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Extensions lists the file extensions treated as JavaScript sources.
// ES module files (.mjs) are not listed: the parser reads scripts only.
var Extensions = []string{".js", ".cjs"}

// ErrNoFiles reports that discovery matched nothing.
var ErrNoFiles = errors.New("no JavaScript files found")

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
}

// IsSource reports whether name has a JavaScript extension.
func IsSource(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Options controls discovery.
type Options struct {
	// Include restricts results to files matching one of these patterns.
	// Empty means every source file.
	Include []string
	// Ignore drops files and directories matching one of these patterns.
	Ignore []string
}

// Files walks paths and returns the JavaScript files found, sorted and
// without duplicates. A path naming a file is returned as-is even when its
// extension is not a JavaScript one, unless it is ignored.
func Files(paths []string, opts Options) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	if err := ValidatePatterns(opts.Include); err != nil {
		return nil, err
	}
	if err := ValidatePatterns(opts.Ignore); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot lint %s: %w", root, err)
		}
		if !info.IsDir() {
			if !Match(opts.Ignore, root) {
				add(root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if p == root {
				return nil
			}
			rp, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			if d.IsDir() {
				if skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".") || Match(opts.Ignore, rp) {
					return filepath.SkipDir
				}
				return nil
			}
			if !IsSource(p) || Match(opts.Ignore, rp) {
				return nil
			}
			if len(opts.Include) > 0 && !Match(opts.Include, rp) {
				return nil
			}
			add(p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// ValidatePatterns returns an error for the first malformed glob.
func ValidatePatterns(patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(normalize(pat)) {
			return fmt.Errorf("invalid pattern %q", pat)
		}
	}
	return nil
}

// Match reports whether p matches any of patterns. Patterns use doublestar
// syntax against the slash-separated path relative to the walked root.
// A pattern without a slash matches at any depth, and a pattern that names
// a directory matches everything below it.
func Match(patterns []string, p string) bool {
	p = filepath.ToSlash(filepath.Clean(p))
	for _, pat := range patterns {
		pat = normalize(pat)
		if pat == "" {
			continue
		}
		if !strings.Contains(pat, "/") {
			pat = "**/" + pat
		}
		if doublestar.MatchUnvalidated(pat, p) || doublestar.MatchUnvalidated(pat+"/**", p) {
			return true
		}
	}
	return false
}

func normalize(pat string) string {
	pat = filepath.ToSlash(strings.TrimSpace(pat))
	pat = strings.TrimPrefix(pat, "./")
	return strings.TrimSuffix(pat, "/")
}
