package common

import (
	"path"
	"strings"
)

// PkgAlias guesses the name a file uses for an import it does not rename:
// the last path element, skipping a major version suffix ("v2") and
// cutting a gopkg.in style ".vN" suffix.
//
//	schema-generator/examples/game -> game
//	example.com/shared/v2          -> shared
//	gopkg.in/yaml.v3               -> yaml
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorVersion(base) {
		if dir := path.Dir(pkgPath); dir != "." {
			base = path.Base(dir)
		}
	}

	if i := strings.LastIndex(base, ".v"); i > 0 && isMajorVersion(base[i+1:]) {
		base = base[:i]
	}

	return base
}

// isMajorVersion matches "v" followed by digits, as in "v2".
func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
