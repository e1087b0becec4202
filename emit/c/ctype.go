// Copyright (c) 2024 Neomantra Corp

package c

import (
	"fmt"

	"github.com/Ar-Ray-code/h6xserial-idl/ir"
)

// cType returns the C storage type for a primitive.
func cType(p ir.PrimitiveType) string {
	switch p {
	case ir.U8:
		return "uint8_t"
	case ir.I8:
		return "int8_t"
	case ir.U16:
		return "uint16_t"
	case ir.I16:
		return "int16_t"
	case ir.U32:
		return "uint32_t"
	case ir.I32:
		return "int32_t"
	case ir.U64:
		return "uint64_t"
	case ir.I64:
		return "int64_t"
	case ir.F32:
		return "float"
	case ir.F64:
		return "double"
	case ir.Bool:
		return "bool"
	case ir.Char:
		return "char"
	default:
		return "uint8_t"
	}
}

// helperSuffix returns the endian-qualified suffix used in runtime
// helper function names (write_u16_le, read_f64_be, ...). Single-byte
// and endian-agnostic types carry no suffix.
func helperSuffix(p ir.PrimitiveType, endian ir.Endian) string {
	switch p {
	case ir.U8, ir.I8, ir.Bool, ir.Char:
		return ""
	default:
		if endian == ir.Big {
			return "_be"
		}
		return "_le"
	}
}

// helperTypeTag names the runtime helper's type slot: write_<tag>_le.
func helperTypeTag(p ir.PrimitiveType) string {
	switch p {
	case ir.U8, ir.Char:
		return "u8"
	case ir.I8:
		return "i8"
	case ir.U16:
		return "u16"
	case ir.I16:
		return "i16"
	case ir.U32:
		return "u32"
	case ir.I32:
		return "i32"
	case ir.U64:
		return "u64"
	case ir.I64:
		return "i64"
	case ir.F32:
		return "f32"
	case ir.F64:
		return "f64"
	case ir.Bool:
		return "bool"
	default:
		return "u8"
	}
}

// writeHelperCall returns the bundled runtime helper used to write a
// value of primitive type p with the given endianness.
func writeHelperCall(prefix string, p ir.PrimitiveType, endian ir.Endian) string {
	return fmt.Sprintf("%swrite_%s%s", prefix, helperTypeTag(p), helperSuffix(p, endian))
}

// readHelperCall mirrors writeHelperCall for decoding.
func readHelperCall(prefix string, p ir.PrimitiveType, endian ir.Endian) string {
	return fmt.Sprintf("%sread_%s%s", prefix, helperTypeTag(p), helperSuffix(p, endian))
}

// prefixPrimitive maps a length prefix's byte width to the narrowest
// unsigned primitive that carries it, for reuse of the same runtime
// helpers the spec calls for ("unsigned length prefixes use the same
// helpers as equally-wide primitives").
func prefixPrimitive(width int) ir.PrimitiveType {
	switch width {
	case 1:
		return ir.U8
	case 2:
		return ir.U16
	default:
		return ir.U32
	}
}
