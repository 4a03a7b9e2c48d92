package analyze

import (
	"fmt"
	"go/build"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanOptions controls the directory walk.
type ScanOptions struct {
	ExcludeDirs []string // basenames skipped in addition to the defaults
}

// ScanDir walks root and returns a go/packages pattern ("./rel") for every
// directory holding non-test Go files that the default build context
// compiles. vendor, testdata, hidden and underscore-prefixed directories are
// skipped.
func ScanDir(root string, opts ScanOptions) ([]string, error) {
	ex := map[string]struct{}{
		"vendor":   {},
		".git":     {},
		"testdata": {},
	}
	for _, d := range opts.ExcludeDirs {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		ex[d] = struct{}{}
	}

	dirs := make(map[string]struct{})

	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}

			base := entry.Name()
			if _, skip := ex[base]; skip || strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		// A directory whose files are all excluded by build constraints
		// (tools.go behind //go:build tools) is not a loadable package.
		dir := filepath.Dir(path)
		ok, err := build.Default.MatchFile(dir, entry.Name())
		if err != nil {
			return err
		}

		if ok {
			dirs[dir] = struct{}{}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	patterns := make([]string, 0, len(dirs))

	for dir := range dirs {
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}

		if rel == "." {
			patterns = append(patterns, ".")
			continue
		}

		patterns = append(patterns, "./"+filepath.ToSlash(rel))
	}

	sort.Strings(patterns)

	return patterns, nil
}

// ExtractDir loads every package below root and links all declarations found.
func (a *Analyzer) ExtractDir(root string, opts ScanOptions) (*DeclarationSet, error) {
	patterns, err := ScanDir(root, opts)
	if err != nil {
		return nil, err
	}

	if len(patterns) == 0 {
		return a.Link(nil)
	}

	if _, err := a.Load(root, patterns...); err != nil {
		return nil, err
	}

	return a.Link(a.Declarations())
}
