package mapping

import (
	"fmt"
	"strings"

	"schema-generator/internal/analyze"
	"schema-generator/internal/diagnostic"
	"schema-generator/internal/match"
)

// DefaultRoot is the schema name polymorphic references resolve to.
const DefaultRoot = "Polymorphic"

// maxSuggestions bounds the "did you mean" list of an unmappable type.
const maxSuggestions = 3

// Options configures a Mapper.
type Options struct {
	Aliases         map[string]string
	PolymorphicRoot string
}

// Mapper maps type expressions of one declaration set to type strings.
type Mapper struct {
	set     *analyze.DeclarationSet
	aliases AliasTable
	root    string
	diags   *diagnostic.Diagnostics
}

// NewMapper creates a mapper recording unmappable types into diags.
func NewMapper(set *analyze.DeclarationSet, opts Options, diags *diagnostic.Diagnostics) *Mapper {
	root := opts.PolymorphicRoot
	if root == "" {
		root = DefaultRoot
	}

	return &Mapper{
		set:     set,
		aliases: NewAliasTable(opts.Aliases),
		root:    root,
		diags:   diags,
	}
}

// Root returns the polymorphic root name.
func (m *Mapper) Root() string {
	return m.root
}

// MapField returns the complete type string of a field: the mapped type,
// the optional suffix and the validator tags.
func (m *Mapper) MapField(decl string, f *analyze.Field) string {
	path := analyze.NewFieldPath(decl).Field(f.Name)

	var b strings.Builder

	core := m.MapType(f.Type, path)
	b.WriteString(core)

	if f.Optional && !isContainer(core) {
		b.WriteByte('?')
	}

	if len(f.Tags) > 0 {
		tags := make([]string, len(f.Tags))
		for i, t := range f.Tags {
			tags[i] = t.String()
		}

		b.WriteByte('#')
		b.WriteString(strings.Join(tags, ","))
	}

	return b.String()
}

func isContainer(s string) bool {
	return strings.HasPrefix(s, "list,") || strings.HasPrefix(s, "map,")
}

// MapType maps t found at path. Unmappable parts are reported and rendered
// with their original name.
func (m *Mapper) MapType(t *analyze.TypeExpr, path analyze.FieldPath) string {
	return m.mapType(t, path, nil)
}

func (m *Mapper) mapType(t *analyze.TypeExpr, path analyze.FieldPath, visiting map[analyze.TypeID]bool) string {
	if t == nil {
		return m.unmappable(path, "<nil>", "")
	}

	switch t.Kind {
	case analyze.TypeExprPrimitive, analyze.TypeExprLiteral:
		if name := t.Primitive.SchemaName(); name != "" {
			if t.Primitive.Truncated() {
				m.diags.AddWarning(diagnostic.CodeUnsignedRange,
					fmt.Sprintf("%s is emitted as %s; values above 2^63-1 do not fit", t, name),
					path.Root(), path.Rel())
			}

			return name
		}

		return m.unmappable(path, t.String(), "")

	case analyze.TypeExprSequence:
		return "list," + m.mapType(t.Elem, path.Elem(), visiting)

	case analyze.TypeExprDictionary:
		return "map," + m.mapType(t.Key, path.Key(), visiting) + "," + m.mapType(t.Value, path.Value(), visiting)

	case analyze.TypeExprUnion:
		// The first alternative wins; the rest never reach the schema.
		if len(t.Alternatives) == 0 {
			return m.unmappable(path, t.String(), "")
		}

		return m.mapType(t.Alternatives[0], path, visiting)

	case analyze.TypeExprUnwrap:
		return m.mapType(t.Elem, path, visiting)

	case analyze.TypeExprReference:
		return m.mapRef(t, path, visiting)

	default:
		return m.unmappable(path, t.Name, "")
	}
}

func (m *Mapper) mapRef(t *analyze.TypeExpr, path analyze.FieldPath, visiting map[analyze.TypeID]bool) string {
	id := t.Ref

	if scalar, ok := m.aliases.Lookup(id); ok {
		return scalar
	}

	if m.set.IsMarker(id) {
		return m.root
	}

	d := m.set.Lookup(id)

	switch {
	case d == nil:
		return m.unmappable(path, t.Name, id.Name)

	case d.Polymorphic:
		return m.root

	case d.IsEmitted():
		return d.Name

	case d.Underlying != nil && !visiting[id]:
		if visiting == nil {
			visiting = make(map[analyze.TypeID]bool)
		}

		visiting[id] = true
		defer delete(visiting, id)

		return m.mapType(d.Underlying, path, visiting)

	default:
		return m.unmappable(path, t.Name, id.Name)
	}
}

// unmappable records the type and returns its original name.
func (m *Mapper) unmappable(path analyze.FieldPath, typeName, bare string) string {
	if bare == "" {
		bare = typeName
	}

	m.diags.AddUnmappable(path.Root(), path.Rel(), typeName,
		match.Suggest(bare, m.set.Names(), maxSuggestions))

	return typeName
}
