// Copyright (c) 2024 Neomantra Corp

package ir

import (
	"os"

	"github.com/valyala/fastjson"
)

// Load parses raw JSON bytes into a generic fastjson tree. It performs
// no schema validation; that is Parse's job.
func Load(data []byte) (*fastjson.Value, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, errJsonSyntax(err.Error())
	}
	if v.Type() != fastjson.TypeObject {
		return nil, &SchemaError{
			Kind:    KindSchemaType,
			Path:    "$",
			Message: "IR document root must be a JSON object",
		}
	}
	return v, nil
}

// LoadFile reads path and parses it as the IR document's generic tree.
func LoadFile(path string) (*fastjson.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errIo(path, err.Error())
	}
	return Load(data)
}

// ProbeLoad tries each candidate path in order, returning the tree
// parsed from the first one that exists. Mirrors spec.md §6.1's input
// probe behavior (probe msgs/intermediate_msg.json, then
// ../msgs/intermediate_msg.json, error if neither exists).
func ProbeLoad(candidates []string) (*fastjson.Value, string, error) {
	var lastErr error
	for _, path := range candidates {
		if _, statErr := os.Stat(path); statErr != nil {
			lastErr = statErr
			continue
		}
		v, err := LoadFile(path)
		return v, path, err
	}
	if lastErr == nil {
		lastErr = errIo("", "no candidate paths given")
	}
	return nil, "", errIo(firstOrEmpty(candidates), "no IR input file found among candidates: "+lastErr.Error())
}

func firstOrEmpty(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	return ss[0]
}
