package mapping

import (
	"maps"

	"schema-generator/internal/analyze"
)

// DefaultAliases are the scalars the schema knows natively.
func DefaultAliases() map[string]string {
	return map[string]string{
		"time.Time":     "datetime",
		"time.Duration": "long",
		"Vec2":          "vector2",
		"Vec3":          "vector3",
		"Vec4":          "vector4",
		"Quat":          "quaternion",
		"Color":         "color",
	}
}

// AliasTable maps type names to schema scalars. Keys take one of three forms:
//   - "schema-generator/examples/game.Vec3" (full)
//   - "game.Vec3" (short)
//   - "Vec3" (name only).
type AliasTable map[string]string

// NewAliasTable returns the default aliases overridden by extra.
func NewAliasTable(extra map[string]string) AliasTable {
	table := AliasTable(DefaultAliases())
	maps.Copy(table, extra)

	return table
}

// Lookup returns the scalar aliased to id, trying the full, short and bare
// forms in that order.
func (t AliasTable) Lookup(id analyze.TypeID) (string, bool) {
	if len(t) == 0 || id.Name == "" {
		return "", false
	}

	// 1) exact match (for fully qualified import path)
	if s, ok := t[id.String()]; ok {
		return s, true
	}

	// 2) short form, "game.Vec3"
	if s, ok := t[id.Short()]; ok {
		return s, true
	}

	// 3) name only
	s, ok := t[id.Name]

	return s, ok
}
