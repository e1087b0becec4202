// Copyright (c) 2024 Neomantra Corp

package ir

import (
	"fmt"
	"regexp"

	"github.com/valyala/fastjson"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// bodyKeys is the set of keys a message or field node may carry,
// beyond the message-only packet_id/msg_desc pair. The IR schema is
// strict: any other key is a SchemaShape error.
var bodyKeys = map[string]bool{
	"msg_type":      true,
	"array":         true,
	"max_length":    true,
	"endianess":     true,
	"fields":        true,
	"length_source": true,
}

// ParseBytes loads and parses raw IR JSON bytes in one step.
func ParseBytes(data []byte) (*Schema, error) {
	root, err := Load(data)
	if err != nil {
		return nil, err
	}
	return Parse(root)
}

// ParseFile loads and parses an IR JSON file in one step.
func ParseFile(path string) (*Schema, error) {
	root, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(root)
}

// Parse converts a generic JSON tree into the typed, invariant-checked
// Schema. Message-key order in the source document is preserved in
// Schema.Messages.
func Parse(root *fastjson.Value) (*Schema, error) {
	obj := root.GetObject()
	if obj == nil {
		return nil, &SchemaError{Kind: KindSchemaType, Path: "$", Message: "IR document root must be an object"}
	}

	var meta Metadata
	haveMaxAddr := false

	type entry struct {
		name string
		val  *fastjson.Value
	}
	var msgEntries []entry

	var visitErr error
	obj.Visit(func(k []byte, v *fastjson.Value) {
		if visitErr != nil {
			return
		}
		key := string(k)
		switch key {
		case "version":
			if v.Type() != fastjson.TypeString {
				visitErr = errWrongType("$", "version", "string")
				return
			}
			b, _ := v.StringBytes()
			meta.Version = string(b)
		case "max_address":
			if v.Type() != fastjson.TypeNumber {
				visitErr = errWrongType("$", "max_address", "integer")
				return
			}
			n, _ := v.Int()
			meta.MaxAddress = n
			haveMaxAddr = true
		default:
			msgEntries = append(msgEntries, entry{name: key, val: v})
		}
	})
	if visitErr != nil {
		return nil, visitErr
	}

	if !haveMaxAddr {
		return nil, errMissingField("$", "max_address")
	}
	if meta.MaxAddress < 1 || meta.MaxAddress > 255 {
		return nil, errOutOfRange("$", "max_address", meta.MaxAddress, 1, 255)
	}

	messages := make([]MessageDefinition, 0, len(msgEntries))
	seenNames := make(map[string]string, len(msgEntries))
	seenPacketIDs := make(map[int]string, len(msgEntries))

	for _, e := range msgEntries {
		path := "messages." + e.name
		if !identifierRe.MatchString(e.name) {
			return nil, errInvalidIdentifier(path, e.name)
		}

		msg, err := parseMessage(e.name, e.val, path)
		if err != nil {
			return nil, err
		}

		if prior, ok := seenNames[msg.Name]; ok {
			return nil, errDuplicateName(msg.Name, path, prior)
		}
		seenNames[msg.Name] = path

		if prior, ok := seenPacketIDs[msg.PacketID]; ok {
			return nil, errDuplicatePacketID(msg.PacketID, path, prior)
		}
		seenPacketIDs[msg.PacketID] = path

		messages = append(messages, msg)
	}

	return &Schema{Metadata: meta, Messages: messages}, nil
}

func parseMessage(name string, val *fastjson.Value, path string) (MessageDefinition, error) {
	body, err := parseNode(val, path, true)
	if err != nil {
		return MessageDefinition{}, err
	}

	packetID, err := getInt(val, path, "packet_id", true, 0)
	if err != nil {
		return MessageDefinition{}, err
	}
	if packetID < 0 || packetID > 255 {
		return MessageDefinition{}, errOutOfRange(path, "packet_id", packetID, 0, 255)
	}

	desc, err := getOptionalString(val, path, "msg_desc", "")
	if err != nil {
		return MessageDefinition{}, err
	}

	return MessageDefinition{Name: name, PacketID: packetID, Body: body, Description: desc}, nil
}

// parseNode parses the body-relevant keys of a single message or field
// object: msg_type, array, max_length, endianess, fields, length_source.
// isMessage allows packet_id/msg_desc on this node (forbidden on nested
// field nodes) and selects the path style used when recursing into
// this node's own "fields" object (see spec.md §4.1's example path,
// which only inserts ".fields." once, at the message's own fields).
func parseNode(val *fastjson.Value, path string, isMessage bool) (Body, error) {
	obj := val.GetObject()
	if obj == nil {
		return Body{}, &SchemaError{Kind: KindSchemaType, Path: path, Message: "expected an object"}
	}

	var unknownErr error
	obj.Visit(func(k []byte, v *fastjson.Value) {
		if unknownErr != nil {
			return
		}
		key := string(k)
		if bodyKeys[key] {
			return
		}
		if isMessage && (key == "packet_id" || key == "msg_desc") {
			return
		}
		unknownErr = errUnknownKey(path, key)
	})
	if unknownErr != nil {
		return Body{}, unknownErr
	}

	msgTypeStr, err := getRequiredString(val, path, "msg_type")
	if err != nil {
		return Body{}, err
	}

	isArray, err := getBool(val, path, "array", false)
	if err != nil {
		return Body{}, err
	}

	endianStr, err := getOptionalString(val, path, "endianess", "little")
	if err != nil {
		return Body{}, err
	}
	endian, ok := ParseEndian(endianStr)
	if !ok {
		return Body{}, &SchemaError{
			Kind:    KindSchemaShape,
			Path:    path + ".endianess",
			Message: fmt.Sprintf("invalid endianess %q, want \"little\" or \"big\"", endianStr),
		}
	}

	if msgTypeStr == "struct" {
		if isArray {
			return Body{}, errStructHasExtraneousArray(path)
		}
		fieldsObj := val.GetObject("fields")
		if fieldsObj == nil {
			return Body{}, errStructWithoutFields(path)
		}
		fields, ferr := parseFields(fieldsObj, path, isMessage)
		if ferr != nil {
			return Body{}, ferr
		}
		if len(fields) == 0 {
			return Body{}, errStructWithoutFields(path)
		}
		return Body{Kind: KindStruct, Fields: fields}, nil
	}

	if val.Get("fields") != nil {
		return Body{}, errFieldsForbidden(path)
	}

	prim, ok := ParsePrimitiveType(msgTypeStr)
	if !ok {
		return Body{}, errUnknownMsgType(path, msgTypeStr)
	}

	if !isArray {
		return Body{Kind: KindScalar, Type: prim, Endian: endian}, nil
	}

	maxLenVal := val.Get("max_length")
	if maxLenVal == nil {
		return Body{}, errArrayWithoutMaxLength(path)
	}
	if maxLenVal.Type() != fastjson.TypeNumber {
		return Body{}, errWrongType(path, "max_length", "integer")
	}
	maxLen, _ := maxLenVal.Int()
	if maxLen < 1 || maxLen > 65535 {
		return Body{}, errOutOfRange(path, "max_length", maxLen, 1, 65535)
	}

	lengthSourceStr, err := getOptionalString(val, path, "length_source", "explicit")
	if err != nil {
		return Body{}, err
	}
	var lengthSource LengthSource
	switch lengthSourceStr {
	case "explicit":
		lengthSource = LengthExplicit
	case "frame":
		lengthSource = LengthFrame
	default:
		return Body{}, &SchemaError{
			Kind:    KindSchemaShape,
			Path:    path + ".length_source",
			Message: fmt.Sprintf("invalid length_source %q, want \"explicit\" or \"frame\"", lengthSourceStr),
		}
	}

	return Body{
		Kind:         KindArray,
		Element:      prim,
		Endian:       endian,
		MaxLength:    maxLen,
		LengthSource: lengthSource,
	}, nil
}

// parseFields parses an object's worth of named FieldBody children.
// isTop controls the path separator convention: true inserts
// ".fields.<name>", false appends ".<name>" directly (see parseNode).
func parseFields(fieldsObj *fastjson.Object, basePath string, isTop bool) ([]Field, error) {
	var fields []Field
	seen := make(map[string]bool)

	var visitErr error
	fieldsObj.Visit(func(k []byte, v *fastjson.Value) {
		if visitErr != nil {
			return
		}
		name := string(k)

		fieldPath := basePath + "." + name
		if isTop {
			fieldPath = basePath + ".fields." + name
		}

		if seen[name] {
			visitErr = errDuplicateFieldName(fieldPath, name)
			return
		}
		seen[name] = true

		body, err := parseNode(v, fieldPath, false)
		if err != nil {
			visitErr = err
			return
		}

		fields = append(fields, Field{Name: name, Body: body})
	})
	if visitErr != nil {
		return nil, visitErr
	}
	return fields, nil
}

func getRequiredString(v *fastjson.Value, path, field string) (string, error) {
	child := v.Get(field)
	if child == nil {
		return "", errMissingField(path, field)
	}
	if child.Type() != fastjson.TypeString {
		return "", errWrongType(path, field, "string")
	}
	b, _ := child.StringBytes()
	return string(b), nil
}

func getOptionalString(v *fastjson.Value, path, field, def string) (string, error) {
	child := v.Get(field)
	if child == nil {
		return def, nil
	}
	if child.Type() != fastjson.TypeString {
		return "", errWrongType(path, field, "string")
	}
	b, _ := child.StringBytes()
	return string(b), nil
}

func getBool(v *fastjson.Value, path, field string, def bool) (bool, error) {
	child := v.Get(field)
	if child == nil {
		return def, nil
	}
	switch child.Type() {
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	default:
		return false, errWrongType(path, field, "bool")
	}
}

func getInt(v *fastjson.Value, path, field string, required bool, def int) (int, error) {
	child := v.Get(field)
	if child == nil {
		if required {
			return 0, errMissingField(path, field)
		}
		return def, nil
	}
	if child.Type() != fastjson.TypeNumber {
		return 0, errWrongType(path, field, "integer")
	}
	n, _ := child.Int()
	return n, nil
}
