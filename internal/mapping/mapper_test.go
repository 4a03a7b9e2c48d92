package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-generator/internal/analyze"
	"schema-generator/internal/diagnostic"
	"schema-generator/primitive"
)

const gamePkg = "schema-generator/examples/game"

func gameID(name string) analyze.TypeID {
	return analyze.TypeID{PkgPath: gamePkg, Name: name}
}

// handSet builds a small declaration set without loading any package.
func handSet() *analyze.DeclarationSet {
	return analyze.NewDeclarationSet(
		&analyze.Declaration{ID: gameID("Monster"), Name: "Monster", Kind: analyze.DeclKindRecord},
		&analyze.Declaration{ID: gameID("DropItem"), Name: "DropItem", Kind: analyze.DeclKindRecord},
		&analyze.Declaration{ID: gameID("Quality"), Name: "Quality", Kind: analyze.DeclKindEnum},
		&analyze.Declaration{ID: gameID("Burn"), Name: "Burn", Kind: analyze.DeclKindRecord, Polymorphic: true},
		&analyze.Declaration{
			ID:         gameID("ItemID"),
			Name:       "ItemID",
			Kind:       analyze.DeclKindIgnored,
			Underlying: analyze.Prim(primitive.KindInt),
		},
		&analyze.Declaration{
			ID:         gameID("Ticks"),
			Name:       "Ticks",
			Kind:       analyze.DeclKindIgnored,
			Underlying: analyze.UnknownType("chan int"),
		},
	)
}

func newMapper(set *analyze.DeclarationSet, aliases map[string]string) (*Mapper, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}
	return NewMapper(set, Options{Aliases: aliases}, diags), diags
}

func TestMapType(t *testing.T) {
	m, diags := newMapper(handSet(), nil)
	path := analyze.NewFieldPath("Monster").Field("x")

	tests := []struct {
		name string
		expr *analyze.TypeExpr
		want string
	}{
		{"bool", analyze.Prim(primitive.KindBool), "bool"},
		{"byte", analyze.Prim(primitive.KindUint8), "byte"},
		{"short", analyze.Prim(primitive.KindInt16), "short"},
		{"int", analyze.Prim(primitive.KindInt), "int"},
		{"long", analyze.Prim(primitive.KindInt64), "long"},
		{"float", analyze.Prim(primitive.KindFloat32), "float"},
		{"double", analyze.Prim(primitive.KindFloat64), "double"},
		{"string", analyze.Prim(primitive.KindString), "string"},
		{"sequence", analyze.SequenceOf(analyze.Prim(primitive.KindInt)), "list,int"},
		{
			"nested sequence",
			analyze.SequenceOf(analyze.SequenceOf(analyze.RefTo(gameID("DropItem")))),
			"list,list,DropItem",
		},
		{"array", analyze.ArrayOf(analyze.Prim(primitive.KindString), 3), "list,string"},
		{
			"dictionary",
			analyze.DictionaryOf(analyze.Prim(primitive.KindString), analyze.Prim(primitive.KindFloat64)),
			"map,string,double",
		},
		{
			"dictionary of sequences",
			analyze.DictionaryOf(analyze.Prim(primitive.KindInt), analyze.SequenceOf(analyze.RefTo(gameID("Quality")))),
			"map,int,list,Quality",
		},
		{
			"union keeps the first arm",
			analyze.UnionOf(analyze.RefTo(gameID("Quality")), analyze.Prim(primitive.KindInt)),
			"Quality",
		},
		{"unwrap", analyze.Unwrapped(analyze.SequenceOf(analyze.Prim(primitive.KindBool))), "list,bool"},
		{"string literal", analyze.LiteralOf("boss"), "string"},
		{"int literal", analyze.LiteralOf("42"), "int"},
		{"float literal", analyze.LiteralOf("0.5"), "double"},
		{"bool literal", analyze.LiteralOf("true"), "bool"},
		{"record", analyze.RefTo(gameID("Monster")), "Monster"},
		{"enum", analyze.RefTo(gameID("Quality")), "Quality"},
		{"polymorphic", analyze.RefTo(gameID("Burn")), "Polymorphic"},
		{"ignored named basic", analyze.RefTo(gameID("ItemID")), "int"},
		{"alias", analyze.RefTo(analyze.TypeID{PkgPath: "time", Name: "Time"}), "datetime"},
		{"alias by bare name", analyze.RefTo(gameID("Vec3")), "vector3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.MapType(tt.expr, path))
		})
	}

	assert.True(t, diags.IsValid(), diags.Errors)
}

func TestMapType_AliasBeforeDeclaration(t *testing.T) {
	m, _ := newMapper(handSet(), map[string]string{"game.DropItem": "drop"})

	assert.Equal(t, "drop", m.MapType(analyze.RefTo(gameID("DropItem")), analyze.NewFieldPath("Monster")))

	// The full form wins over the short one.
	m, _ = newMapper(handSet(), map[string]string{
		gamePkg + ".Quality": "grade",
		"game.Quality":       "tier",
		"Quality":            "rank",
	})
	assert.Equal(t, "grade", m.MapType(analyze.RefTo(gameID("Quality")), analyze.NewFieldPath("Monster")))
}

func TestMapType_Marker(t *testing.T) {
	set := handSet()
	set.Marker = analyze.TypeID{PkgPath: "schema-generator/schema", Name: "Variant"}

	diags := &diagnostic.Diagnostics{}
	m := NewMapper(set, Options{PolymorphicRoot: "Node"}, diags)

	assert.Equal(t, "Node", m.Root())
	assert.Equal(t, "Node", m.MapType(analyze.RefTo(set.Marker), analyze.NewFieldPath("Monster")))
	assert.Equal(t, "list,Node", m.MapType(analyze.SequenceOf(analyze.RefTo(gameID("Burn"))), analyze.NewFieldPath("Monster")))
	assert.True(t, diags.IsValid())
}

func TestMapType_Unmappable(t *testing.T) {
	m, diags := newMapper(handSet(), nil)
	path := analyze.NewFieldPath("Monster").Field("drops")

	// Unknown names come back unchanged.
	got := m.MapType(analyze.SequenceOf(analyze.RefTo(gameID("DropItm"))), path)
	assert.Equal(t, "list,game.DropItm", got)

	assert.Equal(t, "chan int", m.MapType(analyze.RefTo(gameID("Ticks")), analyze.NewFieldPath("Monster").Field("ticks")))
	assert.Equal(t, "func()", m.MapType(analyze.UnknownType("func()"), analyze.NewFieldPath("DropItem").Field("cb")))

	unmappable := diags.Unmappable()
	require.Len(t, unmappable, 3)

	assert.Equal(t, "Monster", unmappable[0].Declaration)
	assert.Equal(t, "drops[]", unmappable[0].Field)
	assert.Equal(t, "game.DropItm", unmappable[0].TypeName)
	assert.Equal(t, []string{"DropItem"}, unmappable[0].Suggestions)

	assert.Equal(t, "ticks", unmappable[1].Field)
	assert.Equal(t, "chan int", unmappable[1].TypeName)

	assert.Equal(t, "DropItem", unmappable[2].Declaration)
	assert.Equal(t, "cb", unmappable[2].Field)
	assert.Empty(t, unmappable[2].Suggestions)
}

func TestMapType_Unsigned(t *testing.T) {
	m, diags := newMapper(handSet(), nil)
	path := analyze.NewFieldPath("Monster").Field("seed")

	assert.Equal(t, "byte", m.MapType(analyze.Prim(primitive.KindUint8), path))
	assert.Equal(t, "int", m.MapType(analyze.Prim(primitive.KindUint16), path))
	assert.Equal(t, "long", m.MapType(analyze.Prim(primitive.KindUint32), path))
	assert.Empty(t, diags.Warnings)

	assert.Equal(t, "list,long", m.MapType(analyze.SequenceOf(analyze.Prim(primitive.KindUint64)), path))
	assert.True(t, diags.IsValid())
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnsignedRange, diags.Warnings[0].Code)
	assert.Equal(t, "Monster", diags.Warnings[0].Declaration)
	assert.Equal(t, "seed[]", diags.Warnings[0].Field)
	assert.Contains(t, diags.Warnings[0].Message, "uint64 is emitted as long")
}

func TestMapType_IgnoredCycle(t *testing.T) {
	set := analyze.NewDeclarationSet(
		&analyze.Declaration{ID: gameID("A"), Name: "A", Underlying: analyze.RefTo(gameID("B"))},
		&analyze.Declaration{ID: gameID("B"), Name: "B", Underlying: analyze.RefTo(gameID("A"))},
	)
	m, diags := newMapper(set, nil)

	assert.Equal(t, "game.A", m.MapType(analyze.RefTo(gameID("A")), analyze.NewFieldPath("X").Field("a")))
	assert.Len(t, diags.Unmappable(), 1)
}

func TestMapField(t *testing.T) {
	m, diags := newMapper(handSet(), nil)

	tests := []struct {
		name  string
		field analyze.Field
		want  string
	}{
		{
			name:  "optional scalar gets a suffix",
			field: analyze.Field{Name: "chance", Type: analyze.Prim(primitive.KindFloat32), Optional: true},
			want:  "float?",
		},
		{
			// Optionality asymmetry: an empty sequence already means "absent".
			name:  "optional sequence does not",
			field: analyze.Field{Name: "drops", Type: analyze.SequenceOf(analyze.Prim(primitive.KindFloat32)), Optional: true},
			want:  "list,float",
		},
		{
			name: "optional dictionary does not",
			field: analyze.Field{
				Name:     "stats",
				Type:     analyze.DictionaryOf(analyze.Prim(primitive.KindString), analyze.Prim(primitive.KindInt)),
				Optional: true,
			},
			want: "map,string,int",
		},
		{
			name:  "optional reference",
			field: analyze.Field{Name: "best", Type: analyze.RefTo(gameID("DropItem")), Optional: true},
			want:  "DropItem?",
		},
		{
			name: "tags",
			field: analyze.Field{
				Name: "level",
				Type: analyze.Prim(primitive.KindInt),
				Tags: []analyze.Tag{{Key: "range", Value: "[1,99]"}, {Key: "required"}},
			},
			want: "int#range=[1,99],required",
		},
		{
			name: "optional with tag",
			field: analyze.Field{
				Name:     "item",
				Type:     analyze.RefTo(gameID("ItemID")),
				Optional: true,
				Tags:     []analyze.Tag{{Key: "ref", Value: "Item"}},
			},
			want: "int?#ref=Item",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.MapField("Monster", &tt.field))
		})
	}

	assert.True(t, diags.IsValid())
}

func TestMapField_Game(t *testing.T) {
	analyzer := analyze.NewAnalyzer(analyze.DefaultOptions())
	_, err := analyzer.Load("", gamePkg)
	require.NoError(t, err)

	set, err := analyzer.Link(analyzer.Declarations())
	require.NoError(t, err)

	m, diags := newMapper(set, nil)

	typeStrings := func(name string) map[string]string {
		d := set.Lookup(gameID(name))
		require.NotNil(t, d, name)

		out := make(map[string]string, len(d.Fields))
		for i := range d.Fields {
			out[d.Fields[i].Name] = m.MapField(d.Name, &d.Fields[i])
		}

		return out
	}

	assert.Equal(t, map[string]string{
		"name":     "string",
		"level":    "int#range=[1,99],required",
		"skills":   "list,Polymorphic",
		"drops":    "list,DropItem",
		"loot":     "map,string,int",
		"weakness": "Element",
		"stats":    "map,string,double",
		"title":    "string",
		"slots":    "list,int#size=4",
		"kind":     "string",
		"grid":     "list,list,int",
		"spawned":  "datetime",
		"note":     "string?",
	}, typeStrings("Monster"))

	assert.Equal(t, map[string]string{
		"itemId": "int#ref=Item",
		"count":  "int",
		"chance": "float?",
	}, typeStrings("DropItem"))

	assert.Equal(t, map[string]string{
		"id":       "int",
		"position": "vector3",
	}, typeStrings("Entity"))

	assert.True(t, diags.IsValid(), diags.Errors)
}
