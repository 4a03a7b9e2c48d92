package analyze

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalResolver(t *testing.T) {
	r := LocalResolver{Dir: "/src/registry"}

	loc, ok := r.Resolve("")
	require.True(t, ok)
	assert.Equal(t, Location{Dir: "/src/registry", Pattern: ".", Strategy: StrategyLocal}, loc)

	_, ok = r.Resolve("example.com/game")
	assert.False(t, ok)
}

func TestAliasResolver(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/game\n\ngo 1.24\n")

	dir := filepath.Join(root, "registry")
	writeFile(t, filepath.Join(dir, "registry.go"), "package registry\n")

	r, err := NewAliasResolver(dir, map[string]string{
		"example.com/shared/":     "../../shared",
		"example.com/game/legacy": "/opt/legacy",
	})
	require.NoError(t, err)

	loc, ok := r.Resolve("example.com/game/items")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "items"), loc.Dir)
	assert.Equal(t, ".", loc.Pattern)
	assert.Equal(t, StrategyAlias, loc.Strategy)

	loc, ok = r.Resolve("example.com/game")
	require.True(t, ok)
	assert.Equal(t, root, loc.Dir)

	// The longest prefix wins over the module path.
	loc, ok = r.Resolve("example.com/game/legacy/npc")
	require.True(t, ok)
	assert.Equal(t, filepath.FromSlash("/opt/legacy/npc"), loc.Dir)

	loc, ok = r.Resolve("example.com/shared/math")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "../../shared/math"), loc.Dir)

	_, ok = r.Resolve("example.com/gamekit")
	assert.False(t, ok)

	_, ok = r.Resolve("")
	assert.False(t, ok)
}

func TestAliasResolver_NoModule(t *testing.T) {
	r, err := NewAliasResolver(t.TempDir(), nil)
	require.NoError(t, err)

	_, ok := r.Resolve("example.com/anything")
	assert.False(t, ok)
}

func TestChainResolver(t *testing.T) {
	chain, err := DefaultResolver(".", nil)
	require.NoError(t, err)

	loc, ok := chain.Resolve("")
	require.True(t, ok)
	assert.Equal(t, StrategyLocal, loc.Strategy)

	// This package lives in the schema-generator module.
	loc, ok = chain.Resolve("schema-generator/examples/game")
	require.True(t, ok)
	assert.Equal(t, StrategyAlias, loc.Strategy)
	assert.Equal(t, "game", filepath.Base(loc.Dir))

	loc, ok = chain.Resolve("github.com/stretchr/testify/assert")
	require.True(t, ok)
	assert.Equal(t, StrategyPackage, loc.Strategy)
	assert.Equal(t, "github.com/stretchr/testify/assert", loc.Pattern)
}

func TestIsStdlib(t *testing.T) {
	assert.True(t, isStdlib("time"))
	assert.True(t, isStdlib("encoding/json"))
	assert.False(t, isStdlib("github.com/stretchr/testify"))
	assert.False(t, isStdlib("example.com/game"))
}
