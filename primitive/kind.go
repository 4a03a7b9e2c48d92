package primitive

import (
	"go/types"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// Scalar names of the schema's primitive catalogue.
const (
	ScalarBool   = "bool"
	ScalarByte   = "byte"
	ScalarShort  = "short"
	ScalarInt    = "int"
	ScalarLong   = "long"
	ScalarFloat  = "float"
	ScalarDouble = "double"
	ScalarString = "string"
)

func (k KindEnum) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

// SchemaName returns the scalar name used in the emitted schema.
// int is narrowed to "int" so the schema does not depend on the architecture
// the generator ran on. Unsigned kinds widen to the next signed scalar that
// holds all their values; uint and uint64 stop at "long" (see Truncated).
func (k KindEnum) SchemaName() string {
	switch k {
	case KindBool:
		return ScalarBool
	case KindInt8, KindUint8:
		return ScalarByte
	case KindInt16:
		return ScalarShort
	case KindInt, KindInt32, KindUint16:
		return ScalarInt
	case KindInt64, KindUint, KindUint32, KindUint64:
		return ScalarLong
	case KindFloat32:
		return ScalarFloat
	case KindFloat64:
		return ScalarDouble
	case KindString:
		return ScalarString
	default:
		return ""
	}
}

// Truncated reports whether values of k above the signed 64-bit range have
// no schema counterpart.
func (k KindEnum) Truncated() bool {
	return k == KindUint || k == KindUint64
}

// FromBasic returns the kind of a go/types basic type, or the zero KindEnum
// when the basic type has no schema counterpart (complex numbers, uintptr,
// unsafe.Pointer, untyped nil).
func FromBasic(basic *types.Basic) KindEnum {
	if basic == nil {
		return 0
	}

	switch basic.Kind() {
	case types.Bool, types.UntypedBool:
		return KindBool
	case types.Int, types.UntypedInt, types.UntypedRune:
		return KindInt
	case types.Int8:
		return KindInt8
	case types.Int16:
		return KindInt16
	case types.Int32: // also rune
		return KindInt32
	case types.Int64:
		return KindInt64
	case types.Uint:
		return KindUint
	case types.Uint8: // also byte
		return KindUint8
	case types.Uint16:
		return KindUint16
	case types.Uint32:
		return KindUint32
	case types.Uint64:
		return KindUint64
	case types.Float32:
		return KindFloat32
	case types.Float64, types.UntypedFloat:
		return KindFloat64
	case types.String, types.UntypedString:
		return KindString
	default:
		return 0
	}
}
