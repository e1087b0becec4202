// Copyright (c) 2024 Neomantra Corp

package c

import (
	"fmt"
	"strings"

	"github.com/Ar-Ray-code/h6xserial-idl/ir"
)

// accessor is a C lvalue-expression prefix ending in "->" or "." such
// that accessor+"identifier" is itself a valid member access. The same
// convention drives sizeTop/sizeField, encodeTop/encodeField and
// decodeTop/decodeField below, mirroring declareRecord's
// topLevelMembers/fieldMember split: a message's own body occupies the
// unnamed top slot (its shape attaches directly to "msg->", scalar
// getting the synthetic member name "value"); every field occupies a
// named slot reached by appending its own name.

// --- encoded-size (spec.md §4.2 / §4.3.3's computed_encoded_size) ---

// sizeTop renders the body of `<name>_encoded_size`, accumulating into
// a local `size_t sz` and returning `(size_t)-1` the moment any array's
// runtime length exceeds its declared max_length (invariant 5).
func sizeTop(rtPrefix, accessor string, body ir.Body) []string {
	switch body.Kind {
	case ir.KindScalar:
		return []string{fmt.Sprintf("sz += %d;", body.Type.ByteWidth())}
	case ir.KindArray:
		return sizeArray(accessor+"data", accessor+"length", body)
	case ir.KindStruct:
		var out []string
		for _, f := range body.Fields {
			out = append(out, sizeField(rtPrefix, accessor, f.Name, f.Body)...)
		}
		return out
	default:
		return nil
	}
}

func sizeField(rtPrefix, accessor, name string, body ir.Body) []string {
	switch body.Kind {
	case ir.KindScalar:
		return []string{fmt.Sprintf("sz += %d;", body.Type.ByteWidth())}
	case ir.KindArray:
		wrap := accessor + name + "."
		return sizeArray(wrap+"data", wrap+"length", body)
	case ir.KindStruct:
		wrap := accessor + name + "."
		var out []string
		for _, f := range body.Fields {
			out = append(out, sizeField(rtPrefix, wrap, f.Name, f.Body)...)
		}
		return out
	default:
		return nil
	}
}

func sizeArray(dataExpr, lengthExpr string, body ir.Body) []string {
	out := []string{
		fmt.Sprintf("if (%s > %d) return (size_t)-1;", lengthExpr, body.MaxLength),
	}
	if body.LengthSource == ir.LengthFrame {
		out = append(out, fmt.Sprintf("sz += (size_t)%s * %d;", lengthExpr, body.Element.ByteWidth()))
	} else {
		prefixWidth := prefixWidthFor(body.MaxLength)
		out = append(out, fmt.Sprintf("sz += %d + (size_t)%s * %d;", prefixWidth, lengthExpr, body.Element.ByteWidth()))
	}
	return out
}

// prefixWidthFor returns the same widths as layout.PrefixWidth.
func prefixWidthFor(maxLength int) int {
	switch {
	case maxLength <= 255:
		return 1
	case maxLength <= 65535:
		return 2
	default:
		return 4
	}
}

// --- encode (spec.md §4.3.3) ---

func encodeTop(rtPrefix, accessor string, body ir.Body) []string {
	switch body.Kind {
	case ir.KindScalar:
		return []string{encodeScalar(rtPrefix, accessor+"value", body.Type, body.Endian)}
	case ir.KindArray:
		return encodeArray(rtPrefix, accessor+"data", accessor+"length", body)
	case ir.KindStruct:
		var out []string
		for _, f := range body.Fields {
			out = append(out, encodeField(rtPrefix, accessor, f.Name, f.Body)...)
		}
		return out
	default:
		return nil
	}
}

func encodeField(rtPrefix, accessor, name string, body ir.Body) []string {
	switch body.Kind {
	case ir.KindScalar:
		return []string{encodeScalar(rtPrefix, accessor+name, body.Type, body.Endian)}
	case ir.KindArray:
		wrap := accessor + name + "."
		return encodeArray(rtPrefix, wrap+"data", wrap+"length", body)
	case ir.KindStruct:
		wrap := accessor + name + "."
		var out []string
		for _, f := range body.Fields {
			out = append(out, encodeField(rtPrefix, wrap, f.Name, f.Body)...)
		}
		return out
	default:
		return nil
	}
}

func encodeScalar(rtPrefix, valueExpr string, p ir.PrimitiveType, endian ir.Endian) string {
	width := p.ByteWidth()
	helper := writeHelperCall(rtPrefix, p, endian)
	return fmt.Sprintf("%s(out_buf + off, %s); off += %d;", helper, valueExpr, width)
}

func encodeArray(rtPrefix, dataExpr, lengthExpr string, body ir.Body) []string {
	var out []string
	if body.LengthSource != ir.LengthFrame {
		prefixWidth := prefixWidthFor(body.MaxLength)
		prefixType := prefixPrimitive(prefixWidth)
		helper := writeHelperCall(rtPrefix, prefixType, body.Endian)
		out = append(out, fmt.Sprintf("%s(out_buf + off, (%s)%s); off += %d;", helper, cType(prefixType), lengthExpr, prefixWidth))
	}
	out = append(out,
		fmt.Sprintf("for (uint32_t i = 0; i < %s; i++) {", lengthExpr),
		fmt.Sprintf("    %s", encodeScalar(rtPrefix, fmt.Sprintf("%s[i]", dataExpr), body.Element, body.Endian)),
		"}",
	)
	return out
}

// --- decode (spec.md §4.3.4) ---

func decodeTop(rtPrefix, accessor string, body ir.Body) []string {
	switch body.Kind {
	case ir.KindScalar:
		return []string{decodeScalar(rtPrefix, accessor+"value", body.Type, body.Endian)}
	case ir.KindArray:
		return decodeArray(rtPrefix, accessor+"data", accessor+"length", body)
	case ir.KindStruct:
		var out []string
		for _, f := range body.Fields {
			out = append(out, decodeField(rtPrefix, accessor, f.Name, f.Body)...)
		}
		return out
	default:
		return nil
	}
}

func decodeField(rtPrefix, accessor, name string, body ir.Body) []string {
	switch body.Kind {
	case ir.KindScalar:
		return []string{decodeScalar(rtPrefix, accessor+name, body.Type, body.Endian)}
	case ir.KindArray:
		wrap := accessor + name + "."
		return decodeArray(rtPrefix, wrap+"data", wrap+"length", body)
	case ir.KindStruct:
		wrap := accessor + name + "."
		var out []string
		for _, f := range body.Fields {
			out = append(out, decodeField(rtPrefix, wrap, f.Name, f.Body)...)
		}
		return out
	default:
		return nil
	}
}

func decodeScalar(rtPrefix, valueExpr string, p ir.PrimitiveType, endian ir.Endian) string {
	width := p.ByteWidth()
	helper := readHelperCall(rtPrefix, p, endian)
	return fmt.Sprintf("if (remaining < %d) return false; %s = %s(in_buf + off); off += %d; remaining -= %d;",
		width, valueExpr, helper, width, width)
}

func decodeArray(rtPrefix, dataExpr, lengthExpr string, body ir.Body) []string {
	var out []string
	elemWidth := body.Element.ByteWidth()

	if body.LengthSource == ir.LengthFrame {
		out = append(out,
			fmt.Sprintf("if (remaining %% %d != 0) return false;", elemWidth),
			fmt.Sprintf("%s = (uint32_t)(remaining / %d);", lengthExpr, elemWidth),
		)
	} else {
		prefixWidth := prefixWidthFor(body.MaxLength)
		prefixType := prefixPrimitive(prefixWidth)
		helper := readHelperCall(rtPrefix, prefixType, body.Endian)
		out = append(out,
			fmt.Sprintf("if (remaining < %d) return false;", prefixWidth),
			fmt.Sprintf("%s = (uint32_t)%s(in_buf + off);", lengthExpr, helper),
			fmt.Sprintf("off += %d; remaining -= %d;", prefixWidth, prefixWidth),
		)
	}

	out = append(out,
		fmt.Sprintf("if (%s > %d) return false;", lengthExpr, body.MaxLength),
		fmt.Sprintf("if (remaining < (size_t)%s * %d) return false;", lengthExpr, elemWidth),
		fmt.Sprintf("for (uint32_t i = 0; i < %s; i++) {", lengthExpr),
		fmt.Sprintf("    %s", decodeScalar(rtPrefix, fmt.Sprintf("%s[i]", dataExpr), body.Element, body.Endian)),
		"}",
	)
	return out
}

func indentAll(lines []string, indent string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(indent)
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}
