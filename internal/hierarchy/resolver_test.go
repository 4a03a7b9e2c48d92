package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-generator/internal/analyze"
	"schema-generator/internal/diagnostic"
)

const gamePkg = "schema-generator/examples/game"

func loadGame(t *testing.T) *analyze.DeclarationSet {
	t.Helper()

	analyzer := analyze.NewAnalyzer(analyze.DefaultOptions())
	_, err := analyzer.Load("", gamePkg)
	require.NoError(t, err)

	set, err := analyzer.Link(analyzer.Declarations())
	require.NoError(t, err)

	return set
}

func parents(set *analyze.DeclarationSet, r *Resolver) map[string]string {
	out := make(map[string]string)
	for _, d := range set.Emitted() {
		out[d.Name] = r.Parent(d)
	}

	return out
}

func TestResolver_Game(t *testing.T) {
	set := loadGame(t)
	diags := &diagnostic.Diagnostics{}
	r := NewResolver(Options{Root: "Polymorphic"}, diags)

	assert.Equal(t, map[string]string{
		"Effect":    "",            // interfaces are never anchored
		"Burn":      "Effect",      // single interface promoted
		"Freeze":    "Polymorphic", // polymorphic without a parent
		"Quality":   "",
		"Element":   "",
		"Monster":   "Entity", // explicit base
		"DropItem":  "",
		"Entity":    "",
		"Named":     "",
		"Describer": "Named", // embedded interface
		"Usable":    "",
		"Item":      "Describer",
		"Potion":    "Entity", // base wins over Describer and Usable
		"Relic":     "",       // ambiguous
	}, parents(set, r))

	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodeAmbiguousParent, diags.Warnings[0].Code)
	assert.Equal(t, "Relic", diags.Warnings[0].Declaration)
	assert.Contains(t, diags.Warnings[0].Message, "Describer, Usable")
	assert.True(t, diags.IsValid())
}

func TestResolver_Policy(t *testing.T) {
	relic := &analyze.Declaration{
		Name:       "Relic",
		Kind:       analyze.DeclKindRecord,
		Interfaces: []string{"Describer", "Usable"},
	}

	tests := []struct {
		policy   Policy
		errors   int
		warnings int
	}{
		{PolicyIgnore, 0, 0},
		{PolicyWarn, 0, 1},
		{PolicyError, 1, 0},
		{"", 0, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			diags := &diagnostic.Diagnostics{}
			r := NewResolver(Options{Ambiguous: tt.policy}, diags)

			assert.Empty(t, r.Parent(relic))
			assert.Len(t, diags.Errors, tt.errors)
			assert.Len(t, diags.Warnings, tt.warnings)
		})
	}
}

func TestResolver_AmbiguousPolymorphic(t *testing.T) {
	diags := &diagnostic.Diagnostics{}
	r := NewResolver(Options{Root: "Node", Ambiguous: PolicyIgnore}, diags)

	d := &analyze.Declaration{
		Name:        "Spark",
		Kind:        analyze.DeclKindRecord,
		Interfaces:  []string{"Effect", "Usable"},
		Polymorphic: true,
	}

	assert.Equal(t, "Node", r.Parent(d))

	// Interfaces embedding two others get no parent at all.
	iface := &analyze.Declaration{
		Name:        "Both",
		Kind:        analyze.DeclKindRecord,
		IsInterface: true,
		Embeds:      []string{"Named", "Usable"},
		Polymorphic: true,
	}

	assert.Empty(t, r.Parent(iface))
}

func TestResolver_MarkerOnlyInterface(t *testing.T) {
	set := loadGame(t)
	diags := &diagnostic.Diagnostics{}
	r := NewResolver(Options{Root: "Node"}, diags)

	// Effect embeds nothing but the marker: it is polymorphic yet stays a
	// top-level bean, while its implementations hang below it.
	effect := set.ByName("Effect")
	require.NotNil(t, effect)
	require.True(t, effect.IsInterface)
	require.True(t, effect.Polymorphic)
	require.Empty(t, effect.Embeds)

	assert.Empty(t, r.Parent(effect))
	assert.Equal(t, "Effect", r.Parent(set.ByName("Burn")))

	// The same shape built by hand.
	iface := &analyze.Declaration{
		Name:        "Aura",
		Kind:        analyze.DeclKindRecord,
		IsInterface: true,
		Polymorphic: true,
	}

	assert.Empty(t, r.Parent(iface))
	assert.True(t, diags.IsValid())
	assert.Empty(t, diags.Warnings)
}
