package analyze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()

	for _, f := range []string{
		"root.go",
		"a/x.go",
		"a/x_test.go",
		"b/c/y.go",
		"only_tests/z_test.go",
		"vendor/v/v.go",
		"testdata/t.go",
		".hidden/h.go",
		"_skip/s.go",
		"generated/gen.go",
		"docs/readme.md",
	} {
		writeFile(t, filepath.Join(root, f), "package p\n")
	}

	patterns, err := ScanDir(root, ScanOptions{ExcludeDirs: []string{"generated", " "}})
	require.NoError(t, err)
	assert.Equal(t, []string{".", "./a", "./b/c"}, patterns)
}

func TestScanDir_BuildConstraints(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "a.go"), "package p\n")
	writeFile(t, filepath.Join(root, "tools/tools.go"), "//go:build tools\n\npackage tools\n")
	writeFile(t, filepath.Join(root, "mixed/m.go"), "package mixed\n")
	writeFile(t, filepath.Join(root, "mixed/m_tools.go"), "//go:build tools\n\npackage mixed\n")
	writeFile(t, filepath.Join(root, "plan9/p_plan9.go"), "package plan9\n")

	patterns, err := ScanDir(root, ScanOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{".", "./mixed"}, patterns)
}

func TestScanDir_Missing(t *testing.T) {
	_, err := ScanDir(filepath.Join(t.TempDir(), "nope"), ScanOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtractDir(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "go.mod"), "module fixture\n\ngo 1.24\n")
	writeFile(t, filepath.Join(root, "units/units.go"), `package units

// Unit is a soldier.
type Unit struct {
	Name string
	Rank Rank
}

// Rank orders units.
type Rank int

const (
	RankPrivate Rank = iota
	RankGeneral
)
`)
	writeFile(t, filepath.Join(root, "units/units_test.go"), `package units

type TestOnly struct{}
`)

	analyzer := NewAnalyzer(DefaultOptions())
	set, err := analyzer.ExtractDir(root, ScanOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Unit", "Rank"}, set.Names())

	unit := set.ByName("Unit")
	require.NotNil(t, unit)
	assert.Equal(t, "fixture/units", unit.ID.PkgPath)
	assert.Len(t, unit.Fields, 2)
	assert.Empty(t, set.Marker.Name)
}

func TestExtractDir_ToolsDirectory(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "go.mod"), "module fixture\n\ngo 1.24\n")
	writeFile(t, filepath.Join(root, "stats.go"), `package fixture

// Stat is a named counter.
type Stat struct {
	Name  string
	Value int
}
`)
	writeFile(t, filepath.Join(root, "tools/tools.go"), `//go:build tools

package tools
`)

	analyzer := NewAnalyzer(DefaultOptions())
	set, err := analyzer.ExtractDir(root, ScanOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Stat"}, set.Names())
}

func TestExtractDir_Empty(t *testing.T) {
	analyzer := NewAnalyzer(DefaultOptions())
	set, err := analyzer.ExtractDir(t.TempDir(), ScanOptions{})
	require.NoError(t, err)
	assert.Zero(t, set.Len())
}
