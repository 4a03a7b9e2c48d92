package analyze

import (
	"go/token"
	"go/types"

	"schema-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "schema-generator/examples/game"
	Name    string // e.g., "Monster"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Short returns the type name qualified by the last element of its package
// path, e.g. "time.Time".
func (t TypeID) Short() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return common.PkgAlias(t.PkgPath) + "." + t.Name
}

// DeclKind represents the kind of a declaration.
type DeclKind int

const (
	DeclKindIgnored DeclKind = iota // named type with no schema entry of its own
	DeclKindRecord                  // struct or interface, emitted as a bean
	DeclKindEnum                    // constant-backed named basic type, emitted as an enum
)

// String returns a human-readable representation of the DeclKind.
func (k DeclKind) String() string {
	switch k {
	case DeclKindIgnored:
		return "ignored"
	case DeclKindRecord:
		return "record"
	case DeclKindEnum:
		return "enum"
	default:
		return common.UnknownStr
	}
}

// Declaration is a named type definition extracted from source.
type Declaration struct {
	ID          TypeID    // Go identity
	Name        string    // Schema name (the Go name unless renamed at registration)
	Kind        DeclKind  // Record, Enum or Ignored
	IsInterface bool      // Interface-like record
	Summary     string    // First line of the doc comment
	Hash        string    // Content hash of the declaration's source spans
	Fields      []Field   // For records, in source order, base fields excluded
	Members     []Member  // For enums, in source order
	Base        string    // Schema name of the explicit base record, if any
	Interfaces  []string  // Most specific implemented interface records, in declaration order
	Embeds      []string  // For interfaces, embedded interface records
	Polymorphic bool      // Satisfies the polymorphic marker interface
	Underlying  *TypeExpr // For ignored named types, what references resolve to
	Pos         token.Position

	obj   *types.TypeName
	spans []span
}

// IsRecord returns true for struct and interface declarations.
func (d *Declaration) IsRecord() bool {
	return d.Kind == DeclKindRecord
}

// IsEnum returns true for enumeration declarations.
func (d *Declaration) IsEnum() bool {
	return d.Kind == DeclKindEnum
}

// IsEmitted returns true if the declaration produces a schema entry.
func (d *Declaration) IsEmitted() bool {
	return d.Kind == DeclKindRecord || d.Kind == DeclKindEnum
}

// Field returns the field with the given schema name, or nil.
func (d *Declaration) Field(name string) *Field {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}

	return nil
}

// Detached returns a copy of d without its go/types and source bindings.
func (d *Declaration) Detached() Declaration {
	c := *d
	c.obj = nil
	c.spans = nil

	return c
}

// Field describes a record field.
type Field struct {
	Name     string    // Schema name
	GoName   string    // Go field name
	Type     *TypeExpr // Field type
	Optional bool      // Pointer, omitempty or explicit optional tag
	Comment  string    // Doc, trailing or @param comment
	Tags     []Tag     // Validator tags, in tag order
	Embedded bool      // Whether the field is embedded (anonymous)
}

// Tag returns the validator tag with the given key.
func (f *Field) Tag(key string) (Tag, bool) {
	for _, t := range f.Tags {
		if t.Key == key {
			return t, true
		}
	}

	return Tag{}, false
}

// Tag is a validator or behavior annotation attached to a field.
type Tag struct {
	Key   string
	Value string // empty for flag tags such as "required"
}

// String renders the tag as key=value, or key alone for flags.
func (t Tag) String() string {
	if t.Value == "" {
		return t.Key
	}

	return t.Key + "=" + t.Value
}

// Member describes an enumeration member.
type Member struct {
	Name    string // Member name, type prefix trimmed when configured
	GoName  string // Go constant name
	Value   string // Schema literal: bare integer or quoted string
	Alias   string // External canonical key, optional
	Comment string
}

// DeclarationSet is the ordered collection of declarations of one run.
type DeclarationSet struct {
	// Marker identifies the polymorphic marker interface, when one was found.
	Marker TypeID

	decls  []*Declaration
	byID   map[TypeID]*Declaration
	byName map[string]*Declaration
}

// NewDeclarationSet creates a set holding decls in the given order.
// Later declarations with an already used schema name are still listed but
// ByName keeps resolving to the first one.
func NewDeclarationSet(decls ...*Declaration) *DeclarationSet {
	s := &DeclarationSet{
		byID:   make(map[TypeID]*Declaration, len(decls)),
		byName: make(map[string]*Declaration, len(decls)),
	}

	for _, d := range decls {
		s.Add(d)
	}

	return s
}

// Add appends a declaration to the set.
func (s *DeclarationSet) Add(d *Declaration) {
	s.decls = append(s.decls, d)
	if d.ID.Name != "" {
		s.byID[d.ID] = d
	}

	if _, ok := s.byName[d.Name]; !ok {
		s.byName[d.Name] = d
	}
}

// All returns every declaration in order.
func (s *DeclarationSet) All() []*Declaration {
	return s.decls
}

// Emitted returns records and enums in order.
func (s *DeclarationSet) Emitted() []*Declaration {
	out := make([]*Declaration, 0, len(s.decls))
	for _, d := range s.decls {
		if d.IsEmitted() {
			out = append(out, d)
		}
	}

	return out
}

// Lookup returns the declaration with the given Go identity, or nil.
func (s *DeclarationSet) Lookup(id TypeID) *Declaration {
	return s.byID[id]
}

// ByName returns the declaration with the given schema name, or nil.
func (s *DeclarationSet) ByName(name string) *Declaration {
	return s.byName[name]
}

// Names returns the schema names of all emitted declarations.
func (s *DeclarationSet) Names() []string {
	names := make([]string, 0, len(s.decls))
	for _, d := range s.decls {
		if d.IsEmitted() {
			names = append(names, d.Name)
		}
	}

	return names
}

// Len returns the number of declarations.
func (s *DeclarationSet) Len() int {
	return len(s.decls)
}

// IsMarker returns true if id is the polymorphic marker interface.
func (s *DeclarationSet) IsMarker(id TypeID) bool {
	return s.Marker.Name != "" && s.Marker == id
}
