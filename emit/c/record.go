// Copyright (c) 2024 Neomantra Corp

package c

import (
	"fmt"
	"strings"

	"github.com/Ar-Ray-code/h6xserial-idl/ir"
)

// declareRecord renders the full "typedef struct { ... } <typeName>;"
// for a message body (spec.md §4.3.2's three record shapes).
func declareRecord(typeName string, body ir.Body) string {
	var b strings.Builder
	fmt.Fprintf(&b, "typedef struct {\n")
	b.WriteString(topLevelMembers(body, "    "))
	fmt.Fprintf(&b, "} %s;\n", typeName)
	return b.String()
}

// topLevelMembers renders a message's direct members: a scalar message
// gets a single "value" member, an array message gets "data"/"length"
// directly (no wrapper), a struct message gets one member per field.
func topLevelMembers(body ir.Body, indent string) string {
	switch body.Kind {
	case ir.KindScalar:
		return fmt.Sprintf("%s%s value;\n", indent, cType(body.Type))
	case ir.KindArray:
		return arrayMembers(body, "data", "length", indent)
	case ir.KindStruct:
		var b strings.Builder
		for _, f := range body.Fields {
			b.WriteString(fieldMember(f.Name, f.Body, indent))
		}
		return b.String()
	default:
		return ""
	}
}

// fieldMember renders one named struct field. Scalar fields are a bare
// member; array and struct fields wrap their shape in a member of
// untagged nested struct type named after the field
// ("struct { ... } name;", valid C99), so the same array/struct shape
// rules apply at any depth.
func fieldMember(name string, body ir.Body, indent string) string {
	switch body.Kind {
	case ir.KindScalar:
		return fmt.Sprintf("%s%s %s;\n", indent, cType(body.Type), name)
	case ir.KindArray:
		var b strings.Builder
		fmt.Fprintf(&b, "%sstruct {\n", indent)
		b.WriteString(arrayMembers(body, "data", "length", indent+"    "))
		fmt.Fprintf(&b, "%s} %s;\n", indent, name)
		return b.String()
	case ir.KindStruct:
		var b strings.Builder
		fmt.Fprintf(&b, "%sstruct {\n", indent)
		for _, f := range body.Fields {
			b.WriteString(fieldMember(f.Name, f.Body, indent+"    "))
		}
		fmt.Fprintf(&b, "%s} %s;\n", indent, name)
		return b.String()
	default:
		return ""
	}
}

func arrayMembers(body ir.Body, dataName, lengthName, indent string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s %s[%d];\n", indent, cType(body.Element), dataName, body.MaxLength)
	fmt.Fprintf(&b, "%suint32_t %s;\n", indent, lengthName)
	return b.String()
}
