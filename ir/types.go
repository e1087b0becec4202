// Copyright (c) 2024 Neomantra Corp
//
// Package ir is the typed, invariant-checked schema model for the
// serial messaging protocol's intermediate representation (IR). It
// covers the data model in full: primitive types, endianness, message
// bodies (scalar / array / struct), messages, and the document-level
// metadata. Values of this package are constructed once by Parse and
// are immutable thereafter.

package ir

import "fmt"

// PrimitiveType is the closed set of scalar wire types.
type PrimitiveType uint8

const (
	U8 PrimitiveType = iota
	I8
	U16
	I16
	U32
	I32
	U64
	I64
	F32
	F64
	Bool
	Char
)

// ByteWidth returns the fixed on-the-wire size of the primitive, in bytes.
func (p PrimitiveType) ByteWidth() int {
	switch p {
	case U8, I8, Bool, Char:
		return 1
	case U16, I16:
		return 2
	case U32, I32, F32:
		return 4
	case U64, I64, F64:
		return 8
	default:
		return 0
	}
}

// String returns the IR's textual name for the primitive, the inverse
// of ParsePrimitiveType.
func (p PrimitiveType) String() string {
	switch p {
	case U8:
		return "uint8"
	case I8:
		return "int8"
	case U16:
		return "uint16"
	case I16:
		return "int16"
	case U32:
		return "uint32"
	case I32:
		return "int32"
	case U64:
		return "uint64"
	case I64:
		return "int64"
	case F32:
		return "float32"
	case F64:
		return "float64"
	case Bool:
		return "bool"
	case Char:
		return "char"
	default:
		return fmt.Sprintf("PrimitiveType(%d)", uint8(p))
	}
}

// primitiveNames maps an IR msg_type string to a PrimitiveType.
var primitiveNames = map[string]PrimitiveType{
	"uint8":   U8,
	"int8":    I8,
	"uint16":  U16,
	"int16":   I16,
	"uint32":  U32,
	"int32":   I32,
	"uint64":  U64,
	"int64":   I64,
	"float32": F32,
	"float64": F64,
	"bool":    Bool,
	"char":    Char,
}

// ParsePrimitiveType resolves an IR msg_type/element string to its
// PrimitiveType. The second return is false for "struct" and for any
// unrecognized string.
func ParsePrimitiveType(msgType string) (PrimitiveType, bool) {
	p, ok := primitiveNames[msgType]
	return p, ok
}

// Endian is the byte order applied to multi-byte primitives.
type Endian uint8

const (
	Little Endian = iota
	Big
)

// String returns the IR's textual name for the endianness.
func (e Endian) String() string {
	if e == Big {
		return "big"
	}
	return "little"
}

// ParseEndian resolves the IR's "endianess" string. Empty string
// resolves to Little, matching the documented default.
func ParseEndian(s string) (Endian, bool) {
	switch s {
	case "", "little":
		return Little, true
	case "big":
		return Big, true
	default:
		return Little, false
	}
}

// LengthSource selects where an array's element count is recovered
// from on decode: an explicit length prefix on the wire (the default),
// or the surrounding frame's declared payload length (see spec.md's
// Open Question 1 on the char-array "firmware version" scenario).
type LengthSource uint8

const (
	LengthExplicit LengthSource = iota
	LengthFrame
)

func (l LengthSource) String() string {
	if l == LengthFrame {
		return "frame"
	}
	return "explicit"
}

// BodyKind discriminates the three shapes a MessageBody/FieldBody may take.
type BodyKind uint8

const (
	KindScalar BodyKind = iota
	KindArray
	KindStruct
)

// Body is the tagged union behind both MessageBody and FieldBody --
// the IR grammar is identical at every nesting depth, so one
// representation serves both (see DESIGN.md).
type Body struct {
	Kind BodyKind

	// Scalar
	Type   PrimitiveType
	Endian Endian

	// Array
	Element      PrimitiveType
	MaxLength    int
	LengthSource LengthSource

	// Struct
	Fields []Field
}

// MessageBody is the payload shape of a top-level message.
type MessageBody = Body

// FieldBody is the payload shape of one struct field.
type FieldBody = Body

// Field is one named member of a Struct body.
type Field struct {
	Name string
	Body FieldBody
}

// MessageDefinition is one named, packet-id'd message in the document.
type MessageDefinition struct {
	Name        string
	PacketID    int
	Body        MessageBody
	Description string
}

// Metadata carries the document-level attributes.
type Metadata struct {
	Version    string
	MaxAddress int
}

// Schema is the fully parsed, validated IR document: metadata plus the
// ordered sequence of messages, in source-document key order.
type Schema struct {
	Metadata Metadata
	Messages []MessageDefinition
}
