// Copyright (c) 2024 Neomantra Corp

// Package layout computes each message's encoded-size contract: the
// fixed or bounded byte range a value occupies on the wire, and (for
// fixed-layout messages) the byte offset of every primitive leaf. The
// C emitter uses MaxSize for each message's MAX_ENCODED_SIZE macro and
// IsFixed to decide whether encoded_size can return that constant
// directly; the doc emitter reports MinSize and MaxSize.
package layout

import "github.com/Ar-Ray-code/h6xserial-idl/ir"

// Report is one message's encoded-size contract.
type Report struct {
	MinSize int
	MaxSize int

	// Offsets maps a dotted field path (rooted at the message name) to
	// its byte offset. Populated only when the message is fixed-layout
	// (no arrays anywhere in its body); nil otherwise.
	Offsets map[string]int
}

// IsFixed reports whether the message has exactly one encoded size,
// i.e. it contains no arrays at any nesting depth.
func (r Report) IsFixed() bool {
	return r.MinSize == r.MaxSize
}

// PrefixWidth returns the byte width of the unsigned length prefix
// needed to represent counts up to maxLength: 1 byte up to 255, 2 up
// to 65535, 4 beyond that (spec.md §3's length-prefix rule; the parser
// additionally soft-caps max_length at 65535, so the 4-byte case is
// reachable only for schemas built directly against this package
// rather than through ir.Parse).
func PrefixWidth(maxLength int) int {
	switch {
	case maxLength <= 255:
		return 1
	case maxLength <= 65535:
		return 2
	default:
		return 4
	}
}

// Analyze computes the Report for one message.
func Analyze(msg ir.MessageDefinition) Report {
	min, max := sizeOf(msg.Body)
	r := Report{MinSize: min, MaxSize: max}
	if min == max {
		r.Offsets = make(map[string]int)
		fixedOffsets(msg.Body, msg.Name, 0, r.Offsets)
	}
	return r
}

func sizeOf(body ir.Body) (min, max int) {
	switch body.Kind {
	case ir.KindScalar:
		w := body.Type.ByteWidth()
		return w, w
	case ir.KindArray:
		prefix := PrefixWidth(body.MaxLength)
		if body.LengthSource == ir.LengthFrame {
			// A frame-sourced array carries no length prefix on the wire.
			prefix = 0
		}
		elem := body.Element.ByteWidth()
		return prefix, prefix + body.MaxLength*elem
	case ir.KindStruct:
		for _, f := range body.Fields {
			fmin, fmax := sizeOf(f.Body)
			min += fmin
			max += fmax
		}
		return min, max
	default:
		return 0, 0
	}
}

// fixedOffsets records a byte offset for every primitive leaf under
// body, rooted at path, assuming (as Analyze guarantees by only
// calling this when min==max) that body contains no arrays. It returns
// the offset immediately past body.
func fixedOffsets(body ir.Body, path string, offset int, out map[string]int) int {
	switch body.Kind {
	case ir.KindScalar:
		out[path] = offset
		return offset + body.Type.ByteWidth()
	case ir.KindStruct:
		o := offset
		for _, f := range body.Fields {
			o = fixedOffsets(f.Body, path+"."+f.Name, o, out)
		}
		return o
	case ir.KindArray:
		prefix := PrefixWidth(body.MaxLength)
		return offset + prefix + body.MaxLength*body.Element.ByteWidth()
	default:
		return offset
	}
}
