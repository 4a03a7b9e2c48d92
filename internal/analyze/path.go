package analyze

import (
	"strings"
)

// FieldPath builds a readable location inside a declaration.
// Examples:
//   - "Monster" for the declaration itself
//   - "Monster.drops" for a field
//   - "Monster.drops[]" for the element of a sequence field
//   - "Monster.loot[key]" and "Monster.loot[value]" for dictionary parts
type FieldPath struct {
	parts []string
}

// NewFieldPath creates a new FieldPath from a declaration name.
func NewFieldPath(root string) FieldPath {
	return FieldPath{parts: []string{root}}
}

// Field appends a field name to the path.
func (p FieldPath) Field(name string) FieldPath {
	return FieldPath{parts: append(append([]string{}, p.parts...), name)}
}

// Elem marks the element of a sequence.
func (p FieldPath) Elem() FieldPath {
	return p.suffix("[]")
}

// Key marks the key of a dictionary.
func (p FieldPath) Key() FieldPath {
	return p.suffix("[key]")
}

// Value marks the value of a dictionary.
func (p FieldPath) Value() FieldPath {
	return p.suffix("[value]")
}

func (p FieldPath) suffix(s string) FieldPath {
	if len(p.parts) == 0 {
		return FieldPath{parts: []string{s}}
	}

	parts := make([]string, len(p.parts))
	copy(parts, p.parts)
	parts[len(parts)-1] += s

	return FieldPath{parts: parts}
}

// Root returns the declaration name the path starts from.
func (p FieldPath) Root() string {
	if len(p.parts) == 0 {
		return ""
	}

	return p.parts[0]
}

// Rel returns the path without its root, e.g. "drops[]".
func (p FieldPath) Rel() string {
	if len(p.parts) < 2 {
		return ""
	}

	return strings.Join(p.parts[1:], ".")
}

// String returns the full path string.
func (p FieldPath) String() string {
	return strings.Join(p.parts, ".")
}
