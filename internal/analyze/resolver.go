package analyze

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
)

// Location tells the Analyzer where a referenced package lives.
type Location struct {
	Dir      string // working directory for go/packages
	Pattern  string // load pattern, relative to Dir
	Strategy string // name of the resolver that produced it
}

// Resolver maps an import path found in a registration file to a Location.
// The empty import path stands for unqualified names, i.e. the package of
// the registration file itself.
type Resolver interface {
	Resolve(importPath string) (Location, bool)
}

// Resolver strategy names.
const (
	StrategyLocal   = "local"
	StrategyAlias   = "alias"
	StrategyPackage = "package"
)

// LocalResolver resolves unqualified names to the registration file's directory.
type LocalResolver struct {
	Dir string
}

// Resolve implements Resolver.
func (r LocalResolver) Resolve(importPath string) (Location, bool) {
	if importPath != "" {
		return Location{}, false
	}

	return Location{Dir: r.Dir, Pattern: ".", Strategy: StrategyLocal}, true
}

// AliasResolver maps import path prefixes to directories: the main module's
// path to its root, plus any configured aliases. The longest prefix wins.
type AliasResolver struct {
	prefixes []string
	dirs     map[string]string
}

// NewAliasResolver builds an AliasResolver from the go.mod found at or above
// dir and the given prefix -> directory aliases. Relative alias directories
// are taken relative to dir. A missing go.mod is not an error.
func NewAliasResolver(dir string, aliases map[string]string) (*AliasResolver, error) {
	r := &AliasResolver{dirs: make(map[string]string)}

	modPath, modDir, err := findModule(dir)
	if err != nil {
		return nil, err
	}

	if modPath != "" {
		r.add(modPath, modDir)
	}

	for prefix, target := range aliases {
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}

		r.add(strings.TrimSuffix(prefix, "/"), target)
	}

	return r, nil
}

func (r *AliasResolver) add(prefix, dir string) {
	if _, ok := r.dirs[prefix]; !ok {
		r.prefixes = append(r.prefixes, prefix)
	}

	r.dirs[prefix] = dir

	sort.Slice(r.prefixes, func(i, j int) bool {
		return len(r.prefixes[i]) > len(r.prefixes[j])
	})
}

// Resolve implements Resolver.
func (r *AliasResolver) Resolve(importPath string) (Location, bool) {
	if importPath == "" {
		return Location{}, false
	}

	for _, prefix := range r.prefixes {
		if importPath != prefix && !strings.HasPrefix(importPath, prefix+"/") {
			continue
		}

		rest := strings.TrimPrefix(strings.TrimPrefix(importPath, prefix), "/")

		return Location{
			Dir:      filepath.Join(r.dirs[prefix], filepath.FromSlash(rest)),
			Pattern:  ".",
			Strategy: StrategyAlias,
		}, true
	}

	return Location{}, false
}

// PackageResolver hands the import path to go/packages as is.
type PackageResolver struct {
	Dir string
}

// Resolve implements Resolver.
func (r PackageResolver) Resolve(importPath string) (Location, bool) {
	if importPath == "" {
		return Location{}, false
	}

	return Location{Dir: r.Dir, Pattern: importPath, Strategy: StrategyPackage}, true
}

// ChainResolver tries each resolver in order.
type ChainResolver []Resolver

// Resolve implements Resolver.
func (c ChainResolver) Resolve(importPath string) (Location, bool) {
	for _, r := range c {
		if loc, ok := r.Resolve(importPath); ok {
			return loc, true
		}
	}

	return Location{}, false
}

// DefaultResolver returns the local, alias and package strategies chained
// for a registration file living in dir.
func DefaultResolver(dir string, aliases map[string]string) (ChainResolver, error) {
	alias, err := NewAliasResolver(dir, aliases)
	if err != nil {
		return nil, err
	}

	return ChainResolver{
		LocalResolver{Dir: dir},
		alias,
		PackageResolver{Dir: dir},
	}, nil
}

// findModule returns the module path and root directory of the go.mod at or
// above dir, or empty strings when there is none.
func findModule(dir string) (modPath, modDir string, err error) {
	dir, err = filepath.Abs(dir)
	if err != nil {
		return "", "", fmt.Errorf("resolving %s: %w", dir, err)
	}

	for {
		file := filepath.Join(dir, "go.mod")

		data, err := os.ReadFile(file)
		if err == nil {
			path := modfile.ModulePath(data)
			if path == "" {
				return "", "", fmt.Errorf("%s: missing module directive", file)
			}

			return path, dir, nil
		}

		if !errors.Is(err, os.ErrNotExist) {
			return "", "", fmt.Errorf("reading %s: %w", file, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", nil
		}

		dir = parent
	}
}
