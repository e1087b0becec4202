// Copyright (c) 2024 Neomantra Corp

// Package docemit renders a schema's message catalog as Markdown,
// independent of any particular target language. It is a pure function
// of *ir.Schema -- callers persist the result via the writer package,
// matching the teacher's separation between pure data shaping
// (hist/*.go) and I/O (cmd/*/main.go).
package docemit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Ar-Ray-code/h6xserial-idl/ir"
	"github.com/Ar-Ray-code/h6xserial-idl/layout"
	"github.com/Ar-Ray-code/h6xserial-idl/naming"
	"github.com/dustin/go-humanize"
)

const baseCommandsCutoff = 20

// Render produces the full Markdown document for schema.
func Render(schema *ir.Schema) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Command Reference\n\n")
	if schema.Metadata.Version != "" {
		fmt.Fprintf(&b, "Protocol version: `%s`\n\n", schema.Metadata.Version)
	}
	fmt.Fprintf(&b, "Max address: `%d`\n\n", schema.Metadata.MaxAddress)

	sorted := append([]ir.MessageDefinition(nil), schema.Messages...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PacketID < sorted[j].PacketID
	})

	var base, custom []ir.MessageDefinition
	for _, msg := range sorted {
		if msg.PacketID < baseCommandsCutoff {
			base = append(base, msg)
		} else {
			custom = append(custom, msg)
		}
	}

	fmt.Fprintf(&b, "## Base Commands (0-19)\n\n")
	b.WriteString(renderTable(base))
	fmt.Fprintf(&b, "\n## Custom Commands (20+)\n\n")
	b.WriteString(renderTable(custom))

	b.WriteString("\n## Encoded Size\n\n")
	b.WriteString(renderSizeAppendix(sorted))

	return []byte(b.String())
}

func renderTable(msgs []ir.MessageDefinition) string {
	var b strings.Builder
	b.WriteString("| Command | Packet ID | Description |\n")
	b.WriteString("|---|---|---|\n")
	for _, msg := range msgs {
		macro := naming.Prefixed("CMD_", naming.ToUpperSnakeCase(msg.Name))
		fmt.Fprintf(&b, "| `%s` | %d | %s |\n", macro, msg.PacketID, msg.Description)
	}
	return b.String()
}

func renderSizeAppendix(msgs []ir.MessageDefinition) string {
	var b strings.Builder
	b.WriteString("| Command | Min Size | Max Size |\n")
	b.WriteString("|---|---|---|\n")
	for _, msg := range msgs {
		report := layout.Analyze(msg)
		macro := naming.Prefixed("CMD_", naming.ToUpperSnakeCase(msg.Name))
		fmt.Fprintf(&b, "| `%s` | %s | %s |\n", macro,
			humanize.Bytes(uint64(report.MinSize)), humanize.Bytes(uint64(report.MaxSize)))
	}
	return b.String()
}
