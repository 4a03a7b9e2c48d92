package analyze

import (
	"strconv"
	"strings"

	"schema-generator/internal/common"
	"schema-generator/primitive"
)

// TypeExprKind represents the shape of a type expression.
type TypeExprKind int

const (
	TypeExprUnknown    TypeExprKind = iota // unmappable; Name holds the original type
	TypeExprPrimitive                      // bool, integers, floats, string
	TypeExprSequence                       // slice or array of Elem
	TypeExprDictionary                     // map from Key to Value
	TypeExprReference                      // named type, resolved later against the declaration set
	TypeExprUnion                          // ordered alternatives
	TypeExprLiteral                        // constant; Primitive holds its kind
	TypeExprUnwrap                         // generic marker wrapper around Elem
)

// String returns a human-readable representation of the TypeExprKind.
func (k TypeExprKind) String() string {
	switch k {
	case TypeExprUnknown:
		return common.UnknownStr
	case TypeExprPrimitive:
		return "primitive"
	case TypeExprSequence:
		return "sequence"
	case TypeExprDictionary:
		return "dictionary"
	case TypeExprReference:
		return "reference"
	case TypeExprUnion:
		return "union"
	case TypeExprLiteral:
		return "literal"
	case TypeExprUnwrap:
		return "unwrap"
	default:
		return common.UnknownStr
	}
}

// TypeExpr is a recursive, source-independent type expression.
type TypeExpr struct {
	Kind         TypeExprKind
	Primitive    primitive.KindEnum // For primitives and literals
	Elem         *TypeExpr          // For sequences and unwraps
	Key          *TypeExpr          // For dictionaries
	Value        *TypeExpr          // For dictionaries
	Alternatives []*TypeExpr        // For unions
	Ref          TypeID             // For references
	Name         string             // Reference display name, literal text or original unknown type
	Len          int64              // Fixed length of array sequences, -1 for slices
}

// Prim creates a primitive type expression.
func Prim(kind primitive.KindEnum) *TypeExpr {
	return &TypeExpr{Kind: TypeExprPrimitive, Primitive: kind}
}

// SequenceOf creates a variable length sequence.
func SequenceOf(elem *TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: TypeExprSequence, Elem: elem, Len: -1}
}

// ArrayOf creates a fixed length sequence.
func ArrayOf(elem *TypeExpr, n int64) *TypeExpr {
	return &TypeExpr{Kind: TypeExprSequence, Elem: elem, Len: n}
}

// DictionaryOf creates a dictionary type expression.
func DictionaryOf(key, value *TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: TypeExprDictionary, Key: key, Value: value}
}

// RefTo creates a reference to a named type.
func RefTo(id TypeID) *TypeExpr {
	return &TypeExpr{Kind: TypeExprReference, Ref: id, Name: id.Short()}
}

// UnionOf creates a union of the given alternatives, in order.
func UnionOf(alts ...*TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: TypeExprUnion, Alternatives: alts}
}

// Unwrapped creates a generic wrapper around inner that vanishes in the schema.
func Unwrapped(inner *TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: TypeExprUnwrap, Elem: inner}
}

// UnknownType creates an unmappable type expression carrying the original name.
func UnknownType(name string) *TypeExpr {
	return &TypeExpr{Kind: TypeExprUnknown, Name: name}
}

// LiteralOf creates a literal from its source text. Quoted or non-numeric
// text is a string literal; true and false are booleans; numbers are integers
// when they parse as such, doubles otherwise.
func LiteralOf(raw string) *TypeExpr {
	lit := &TypeExpr{Kind: TypeExprLiteral, Name: raw, Primitive: primitive.KindString}

	switch {
	case raw == "true" || raw == "false":
		lit.Primitive = primitive.KindBool
	case isInteger(raw):
		lit.Primitive = primitive.KindInt
	case isFloat(raw):
		lit.Primitive = primitive.KindFloat64
	}

	return lit
}

func isInteger(s string) bool {
	_, err := strconv.ParseInt(s, 0, 64)
	return err == nil
}

func isFloat(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// IsSequence returns true for slices and arrays.
func (t *TypeExpr) IsSequence() bool {
	return t != nil && t.Kind == TypeExprSequence
}

// IsFixed returns true for arrays.
func (t *TypeExpr) IsFixed() bool {
	return t.IsSequence() && t.Len >= 0
}

// String returns a Go-like rendering of the expression, used in diagnostics.
func (t *TypeExpr) String() string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeExprPrimitive:
		return strings.ToLower(strings.TrimPrefix(t.Primitive.String(), "Kind"))
	case TypeExprSequence:
		if t.Len >= 0 {
			return "[" + strconv.FormatInt(t.Len, 10) + "]" + t.Elem.String()
		}
		return "[]" + t.Elem.String()
	case TypeExprDictionary:
		return "map[" + t.Key.String() + "]" + t.Value.String()
	case TypeExprReference:
		return t.Name
	case TypeExprUnion:
		parts := make([]string, len(t.Alternatives))
		for i, a := range t.Alternatives {
			parts[i] = a.String()
		}
		return strings.Join(parts, " | ")
	case TypeExprLiteral:
		return t.Name
	case TypeExprUnwrap:
		return "unwrap[" + t.Elem.String() + "]"
	default:
		return t.Name
	}
}

// appendRefs appends the identities of every declaration t refers to, in
// depth-first order.
func (t *TypeExpr) appendRefs(ids []TypeID) []TypeID {
	if t == nil {
		return ids
	}

	switch t.Kind {
	case TypeExprReference:
		ids = append(ids, t.Ref)
	case TypeExprSequence, TypeExprUnwrap:
		ids = t.Elem.appendRefs(ids)
	case TypeExprDictionary:
		ids = t.Key.appendRefs(ids)
		ids = t.Value.appendRefs(ids)
	case TypeExprUnion:
		for _, alt := range t.Alternatives {
			ids = alt.appendRefs(ids)
		}
	}

	return ids
}
