// Copyright (c) 2024 Neomantra Corp

package ir

import "fmt"

// ErrorKind is the single taxonomy of errors this package can surface,
// matching spec.md's error-handling table.
type ErrorKind string

const (
	KindIo            ErrorKind = "Io"
	KindJsonSyntax    ErrorKind = "JsonSyntax"
	KindSchemaMissing ErrorKind = "SchemaMissing"
	KindSchemaType    ErrorKind = "SchemaType"
	KindSchemaRange   ErrorKind = "SchemaRange"
	KindSchemaConflict ErrorKind = "SchemaConflict"
	KindSchemaShape   ErrorKind = "SchemaShape"
)

// SchemaError is a single diagnostic: a kind, the IR path where it was
// found (e.g. "messages.sensor_data.fields.room_b.temperatures"), a
// human-readable message, and an optional remediation hint.
type SchemaError struct {
	Kind    ErrorKind
	Path    string
	Message string
	Hint    string
}

func (e *SchemaError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s at %s: %s (%s)", e.Kind, e.Path, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Path, e.Message)
}

func errIo(path, message string) error {
	return &SchemaError{Kind: KindIo, Path: path, Message: message}
}

func errJsonSyntax(message string) error {
	return &SchemaError{Kind: KindJsonSyntax, Message: message}
}

func errMissingField(path, field string) error {
	return &SchemaError{
		Kind:    KindSchemaMissing,
		Path:    path,
		Message: fmt.Sprintf("missing required field %q", field),
		Hint:    fmt.Sprintf("add %q to the object at %s", field, path),
	}
}

func errWrongType(path, field, want string) error {
	return &SchemaError{
		Kind:    KindSchemaType,
		Path:    path + "." + field,
		Message: fmt.Sprintf("expected %s", want),
	}
}

func errUnknownMsgType(path, got string) error {
	return &SchemaError{
		Kind:    KindSchemaShape,
		Path:    path + ".msg_type",
		Message: fmt.Sprintf("unknown msg_type %q", got),
		Hint:    "msg_type must be a primitive name, \"bool\", \"char\", or \"struct\"",
	}
}

func errOutOfRange(path, field string, got, lo, hi int) error {
	return &SchemaError{
		Kind:    KindSchemaRange,
		Path:    path + "." + field,
		Message: fmt.Sprintf("%d out of range [%d, %d]", got, lo, hi),
	}
}

func errDuplicateName(name, pathA, pathB string) error {
	return &SchemaError{
		Kind:    KindSchemaConflict,
		Path:    pathA,
		Message: fmt.Sprintf("duplicate message name %q (also declared at %s)", name, pathB),
	}
}

func errDuplicatePacketID(id int, pathA, pathB string) error {
	return &SchemaError{
		Kind:    KindSchemaConflict,
		Path:    pathA,
		Message: fmt.Sprintf("duplicate packet_id %d (also declared at %s)", id, pathB),
	}
}

func errDuplicateFieldName(path, name string) error {
	return &SchemaError{
		Kind:    KindSchemaConflict,
		Path:    path,
		Message: fmt.Sprintf("duplicate field name %q", name),
	}
}

func errArrayWithoutMaxLength(path string) error {
	return &SchemaError{
		Kind:    KindSchemaShape,
		Path:    path,
		Message: "array is true but max_length is missing",
		Hint:    "add a max_length in [1, 65535]",
	}
}

func errStructWithoutFields(path string) error {
	return &SchemaError{
		Kind:    KindSchemaShape,
		Path:    path,
		Message: "msg_type is \"struct\" but fields is missing or empty",
		Hint:    "add at least one entry to fields",
	}
}

func errStructHasExtraneousArray(path string) error {
	return &SchemaError{
		Kind:    KindSchemaShape,
		Path:    path,
		Message: "msg_type is \"struct\" but array is true; a struct cannot itself be an array element",
	}
}

func errFieldsForbidden(path string) error {
	return &SchemaError{
		Kind:    KindSchemaShape,
		Path:    path + ".fields",
		Message: "fields is only allowed when msg_type is \"struct\"",
	}
}

func errInvalidIdentifier(path, name string) error {
	return &SchemaError{
		Kind:    KindSchemaType,
		Path:    path,
		Message: fmt.Sprintf("%q is not a valid identifier ([A-Za-z_][A-Za-z0-9_]*)", name),
	}
}

func errUnknownKey(path, key string) error {
	return &SchemaError{
		Kind:    KindSchemaShape,
		Path:    path,
		Message: fmt.Sprintf("unknown key %q", key),
		Hint:    "the IR schema is strict; remove or rename this key",
	}
}
