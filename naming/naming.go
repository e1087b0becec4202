// Copyright (c) 2024 Neomantra Corp

// Package naming derives compilable C identifiers from IR message and
// field names: snake_case and UPPER_SNAKE_CASE forms, plus namespace
// prefixing. Sanitization is total -- any string that survives
// ir.Parse's validation yields a compilable identifier here, and inputs
// that don't even survive that (empty, all-symbols) still degrade to a
// sentinel rather than panicking, since field names are not restricted
// to the strict identifier alphabet the way message names are.
package naming

import (
	"regexp"
	"strings"

	"github.com/stoewer/go-strcase"
)

// Sentinel is the identifier used when an input name collapses to
// nothing usable (empty string, or all non-alphanumeric runes).
const Sentinel = "msg"

var (
	nonAlnumRun  = regexp.MustCompile(`[^A-Za-z0-9]+`)
	leadingDigit = regexp.MustCompile(`^[0-9]`)
)

// ToSnakeCase converts name to a lowercase snake_case identifier.
// Runs of non-alphanumeric characters collapse to a single underscore,
// a leading digit is prefixed with an underscore, and an empty result
// falls back to Sentinel.
func ToSnakeCase(name string) string {
	cleaned := nonAlnumRun.ReplaceAllString(strings.TrimSpace(name), "_")
	cleaned = strings.Trim(cleaned, "_")
	if cleaned == "" {
		return Sentinel
	}
	snake := strcase.SnakeCase(cleaned)
	snake = strings.Trim(nonAlnumRun.ReplaceAllString(snake, "_"), "_")
	if snake == "" {
		return Sentinel
	}
	if leadingDigit.MatchString(snake) {
		snake = "_" + snake
	}
	return strings.ToLower(snake)
}

// ToUpperSnakeCase converts name to an UPPER_SNAKE_CASE identifier,
// suitable for C macro and constant names.
func ToUpperSnakeCase(name string) string {
	return strings.ToUpper(ToSnakeCase(name))
}

// Prefixed joins a namespace prefix (e.g. "h6xserial_msg_") to an
// already-cased identifier without introducing a double underscore.
func Prefixed(prefix, identifier string) string {
	if prefix == "" {
		return identifier
	}
	if strings.HasSuffix(prefix, "_") && strings.HasPrefix(identifier, "_") {
		return prefix + strings.TrimPrefix(identifier, "_")
	}
	return prefix + identifier
}

// TypeName derives the C record type name for a message: prefix +
// snake_case(name) + "_t", e.g. "h6xserial_msg_sensor_data_t".
func TypeName(prefix, name string) string {
	return Prefixed(prefix, ToSnakeCase(name)) + "_t"
}

// FuncName derives a C function name for a message operation
// (encode/decode), e.g. "h6xserial_msg_sensor_data_encode".
func FuncName(prefix, name, op string) string {
	return Prefixed(prefix, ToSnakeCase(name)) + "_" + op
}

// MacroName derives an UPPER_SNAKE_CASE macro name for a message
// attribute (e.g. "PACKET_ID", "MAX_LENGTH"), namespaced by prefix.
func MacroName(prefix, name, attr string) string {
	return strings.ToUpper(Prefixed(prefix, ToSnakeCase(name))) + "_" + attr
}
