// Copyright (c) 2024 Neomantra Corp

// Package emit defines the emitter extension point: a registry mapping
// target names to Emitter implementations, so that admitting a new
// target language never requires touching the IR model.
package emit

import (
	"fmt"

	"github.com/Ar-Ray-code/h6xserial-idl/config"
	"github.com/Ar-Ray-code/h6xserial-idl/ir"
)

// Emitter renders a parsed schema into target-language source text. An
// Emitter must be a pure function of schema and cfg: no global state,
// so a future parallel multi-target emission needs no locking.
type Emitter interface {
	Name() string
	Emit(schema *ir.Schema, cfg config.Config) ([]byte, error)
}

// Registry looks up an Emitter by its target name.
type Registry map[string]Emitter

// NewRegistry returns an empty Registry.
func NewRegistry() Registry {
	return make(Registry)
}

// Register adds e under its own Name().
func (r Registry) Register(e Emitter) {
	r[e.Name()] = e
}

// Emit looks up target and runs it, or reports an UnknownTargetError.
func (r Registry) Emit(target string, schema *ir.Schema, cfg config.Config) ([]byte, error) {
	e, ok := r[target]
	if !ok {
		return nil, &UnknownTargetError{Target: target}
	}
	return e.Emit(schema, cfg)
}

// UnknownTargetError reports a requested target absent from the
// registry (spec's error taxonomy entry "UnknownTarget").
type UnknownTargetError struct {
	Target string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("unknown emitter target %q", e.Target)
}
