package analyze

import (
	"go/ast"
	"testing"

	"github.com/stretchr/testify/assert"
)

func commentGroup(lines ...string) *ast.CommentGroup {
	g := &ast.CommentGroup{}
	for _, l := range lines {
		g.List = append(g.List, &ast.Comment{Text: l})
	}

	return g
}

func TestParseDoc(t *testing.T) {
	info := parseDoc(commentGroup(
		"// Monster is a hostile creature.",
		"// It respawns.",
		"//",
		"// @param Level starting level",
		"// @alias foe",
		"//go:generate stringer -type=Monster",
	))

	assert.Equal(t, "Monster is a hostile creature.", info.Summary)
	assert.Equal(t, "Monster is a hostile creature. It respawns.", info.Text)
	assert.Equal(t, map[string]string{"Level": "starting level"}, info.Params)
	assert.Equal(t, "foe", info.Alias)
	assert.False(t, info.Ignore)
}

func TestParseDoc_Directives(t *testing.T) {
	info := parseDoc(commentGroup("// Hidden type.", "//schema:ignore"))
	assert.True(t, info.Ignore)
	assert.Equal(t, "Hidden type.", info.Text)

	info = parseDoc(commentGroup("//schema:alias  epic "))
	assert.Equal(t, "epic", info.Alias)
	assert.Empty(t, info.Summary)

	info = parseDoc(nil, commentGroup("// @ignore"))
	assert.True(t, info.Ignore)
}

func TestParseDoc_BlockComment(t *testing.T) {
	info := parseDoc(commentGroup("/*\n * First line.\n * Second line.\n */"))
	assert.Equal(t, "First line.", info.Summary)
	assert.Equal(t, "First line. Second line.", info.Text)
}

func TestIsToolDirective(t *testing.T) {
	assert.True(t, isToolDirective("go:generate x"))
	assert.True(t, isToolDirective("nolint:errcheck"))
	assert.False(t, isToolDirective(" note: spaced"))
	assert.False(t, isToolDirective("no directive here"))
}
