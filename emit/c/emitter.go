// Copyright (c) 2024 Neomantra Corp

// Package c implements the "c" emitter.Emitter target: a single
// self-contained C header per schema, grounded on the pack's own
// Go-target code generators (shaban-serial-data-protocol's
// GenerateMessageEncoders/GenerateMessageDecoders and
// serialexp-binschema's generateEncodeMethod) — same recursive
// string-building shape, adapted to a fixed-frame wire contract and a
// C output surface instead of a self-describing Go one.
package c

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/Ar-Ray-code/h6xserial-idl/config"
	"github.com/Ar-Ray-code/h6xserial-idl/ir"
	"github.com/Ar-Ray-code/h6xserial-idl/layout"
	"github.com/Ar-Ray-code/h6xserial-idl/naming"
)

//go:embed assets/runtime.c.tmpl
var runtimeAsset string

type emitter struct{}

// New returns the built-in "c" emitter.
func New() *emitter {
	return &emitter{}
}

func (*emitter) Name() string { return "c" }

func (*emitter) Emit(schema *ir.Schema, cfg config.Config) ([]byte, error) {
	var b strings.Builder

	guard := includeGuard(cfg.CodeDefaultOut)
	fmt.Fprintf(&b, "#ifndef %s\n#define %s\n\n", guard, guard)
	b.WriteString("#include <stdint.h>\n")
	b.WriteString("#include <stdbool.h>\n")
	b.WriteString("#include <stddef.h>\n")
	b.WriteString("#include <string.h>\n\n")

	b.WriteString(strings.ReplaceAll(runtimeAsset, "{{PREFIX}}", cfg.Prefix))
	b.WriteString("\n")

	for _, msg := range schema.Messages {
		b.WriteString(emitMessage(msg, cfg))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "#endif /* %s */\n", guard)
	return []byte(b.String()), nil
}

func includeGuard(outPath string) string {
	base := outPath
	if idx := strings.LastIndexAny(base, "/\\"); idx >= 0 {
		base = base[idx+1:]
	}
	base = strings.TrimSuffix(base, ".h")
	return naming.ToUpperSnakeCase(base) + "_H"
}

func emitMessage(msg ir.MessageDefinition, cfg config.Config) string {
	var b strings.Builder

	typeName := naming.TypeName(cfg.Prefix, msg.Name)
	packetMacro := naming.MacroName(cfg.Prefix, msg.Name, "PACKET_ID")
	maxSizeMacro := naming.MacroName(cfg.Prefix, msg.Name, "MAX_ENCODED_SIZE")
	report := layout.Analyze(msg)

	if msg.Description != "" {
		fmt.Fprintf(&b, "/* %s: %s */\n", msg.Name, msg.Description)
	}
	b.WriteString(declareRecord(typeName, msg.Body))
	fmt.Fprintf(&b, "#define %s %d\n", packetMacro, msg.PacketID)
	fmt.Fprintf(&b, "#define %s %d\n", maxSizeMacro, report.MaxSize)

	for _, a := range collectArrayMacros(msg.Body, nil) {
		name := msg.Name
		if len(a.path) > 0 {
			name += "_" + strings.Join(a.path, "_")
		}
		macro := naming.MacroName(cfg.Prefix, name, "MAX_LENGTH")
		fmt.Fprintf(&b, "#define %s %d\n", macro, a.max)
	}
	b.WriteString("\n")

	sizeFunc := naming.FuncName(cfg.Prefix, msg.Name, "encoded_size")
	encodeFunc := naming.FuncName(cfg.Prefix, msg.Name, "encode")
	decodeFunc := naming.FuncName(cfg.Prefix, msg.Name, "decode")
	rtPrefix := cfg.Prefix

	fmt.Fprintf(&b, "static inline size_t %s(const %s *msg) {\n", sizeFunc, typeName)
	if report.IsFixed() {
		b.WriteString("    (void)msg;\n")
		fmt.Fprintf(&b, "    return %s;\n", maxSizeMacro)
	} else {
		b.WriteString("    size_t sz = 0;\n")
		b.WriteString(indentAll(sizeTop(rtPrefix, "msg->", msg.Body), "    "))
		b.WriteString("    return sz;\n")
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "static inline size_t %s(const %s *msg, uint8_t *out_buf, size_t out_cap) {\n", encodeFunc, typeName)
	b.WriteString("    if (msg == NULL || out_buf == NULL) return 0;\n")
	fmt.Fprintf(&b, "    size_t needed = %s(msg);\n", sizeFunc)
	b.WriteString("    if (needed == (size_t)-1) return 0;\n")
	b.WriteString("    if (out_cap < needed) return 0;\n")
	b.WriteString("    size_t off = 0;\n")
	b.WriteString(indentAll(encodeTop(rtPrefix, "msg->", msg.Body), "    "))
	b.WriteString("    return off;\n")
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "static inline bool %s(%s *msg, const uint8_t *in_buf, size_t in_len) {\n", decodeFunc, typeName)
	b.WriteString("    if (msg == NULL || in_buf == NULL) return false;\n")
	b.WriteString("    size_t off = 0;\n")
	b.WriteString("    size_t remaining = in_len;\n")
	b.WriteString(indentAll(decodeTop(rtPrefix, "msg->", msg.Body), "    "))
	b.WriteString("    if (remaining != 0) return false;\n")
	b.WriteString("    return true;\n")
	b.WriteString("}\n")

	return b.String()
}

type arrayMacro struct {
	path []string
	max  int
}

// collectArrayMacros walks body depth-first, recording one entry per
// array node with its dotted field path, in schema declaration order.
func collectArrayMacros(body ir.Body, path []string) []arrayMacro {
	switch body.Kind {
	case ir.KindArray:
		if len(path) == 0 {
			return []arrayMacro{{path: nil, max: body.MaxLength}}
		}
		return []arrayMacro{{path: append([]string(nil), path...), max: body.MaxLength}}
	case ir.KindStruct:
		var out []arrayMacro
		for _, f := range body.Fields {
			out = append(out, collectArrayMacros(f.Body, append(path, f.Name))...)
		}
		return out
	default:
		return nil
	}
}
