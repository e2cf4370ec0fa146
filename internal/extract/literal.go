// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"strconv"
	"strings"

	"github.com/everly/shaderparser/internal/exc"
	"github.com/everly/shaderparser/internal/optional"
	"github.com/everly/shaderparser/internal/shader"
)

// parseLiteral parses the initializer text of a declaration of type t.
func parseLiteral(t shader.Type, text string) (shader.TypedValue, error) {
	text = trimStatement(text)
	if text == "" {
		return nil, fail(exc.CodeLiteralParseFailure, "empty initializer for %s", t)
	}
	switch t.Category() {
	case shader.CategoryScalar:
		switch t.Component() {
		case shader.ComponentBool:
			return parseScalar(t, text, parseBool)
		case shader.ComponentInt:
			return parseScalar(t, text, parseInt)
		case shader.ComponentUint:
			return parseScalar(t, text, parseUint)
		case shader.ComponentFloat:
			return parseScalar(t, text, parseFloat32)
		case shader.ComponentDouble:
			return parseScalar(t, text, parseFloat64)
		}
	case shader.CategoryVector:
		switch t.Component() {
		case shader.ComponentInt:
			return parseVector(t, text, parseInt)
		case shader.ComponentUint:
			return parseVector(t, text, parseUint)
		case shader.ComponentFloat:
			return parseVector(t, text, parseFloat32)
		case shader.ComponentDouble:
			return parseVector(t, text, parseFloat64)
		}
	}
	return nil, fail(exc.CodeUnimplementedLiteralForm, "%s initializers are not supported", t)
}

func parseScalar[T shader.Component](t shader.Type, text string, parse func(string) (T, error)) (shader.TypedValue, error) {
	v, err := parse(text)
	if err != nil {
		return nil, failWith(exc.CodeLiteralParseFailure, &FieldError{Type: t, Index: -1, Field: text, Err: err})
	}
	return shader.Scalar[T]{Literal: optional.Some(v)}, nil
}

func parseVector[T shader.Component](t shader.Type, text string, parse func(string) (T, error)) (shader.TypedValue, error) {
	fields, err := constructorFields(t, text)
	if err != nil {
		return nil, err
	}
	if len(fields) != t.Size() {
		return nil, failWith(exc.CodeLiteralCardinalityMismatch, &CardinalityError{Type: t, Expected: t.Size(), Found: len(fields)})
	}
	values := make([]T, 0, len(fields))
	for offset, field := range fields {
		field = strings.TrimSpace(field)
		v, err := parse(field)
		if err != nil {
			return nil, failWith(exc.CodeLiteralParseFailure, &FieldError{Type: t, Index: offset, Field: field, Err: err})
		}
		values = append(values, v)
	}
	return shader.Vector[T]{Size: t.Size(), Literal: optional.Some(values)}, nil
}

// constructorFields returns the comma separated arguments of a vector
// constructor with as many components as t. Nested parentheses are not
// supported.
func constructorFields(t shader.Type, text string) ([]string, error) {
	open := strings.IndexByte(text, '(')
	if open < 0 {
		return nil, fail(exc.CodeLiteralParseFailure, "expected a %s constructor, found %q", t, text)
	}
	// Any vector constructor of the same size converts to t.
	name := strings.TrimSpace(text[:open])
	if ct, ok := shader.LookupType(name); !ok || ct.Category() != shader.CategoryVector || ct.Size() != t.Size() {
		return nil, fail(exc.CodeLiteralParseFailure, "expected a %d component vector constructor for %s, found %q", t.Size(), t, name)
	}
	closing := -1
	for cursor := open + 1; closing < 0; cursor = cursor + 1 {
		if cursor >= len(text) {
			return nil, fail(exc.CodeLiteralParseFailure, "%s constructor is missing its closing ')'", t)
		}
		switch text[cursor] {
		case '(':
			return nil, fail(exc.CodeUnimplementedLiteralForm, "nested expressions in %s constructors are not supported", t)
		case ')':
			closing = cursor
		}
	}
	if trailing := strings.TrimSpace(text[closing+1:]); trailing != "" {
		return nil, fail(exc.CodeLiteralParseFailure, "unexpected %q after %s constructor", trailing, t)
	}
	return strings.Split(text[open+1:closing], ","), nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, errNotBool
	}
}

// integerBase detects the GLSL integer literal form of s and returns the
// digits without their prefix.
func integerBase(s string) (int, string) {
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		return 16, s[2:]
	case len(s) > 1 && s[0] == '0':
		return 8, s[1:]
	default:
		return 10, s
	}
}

func parseInt(s string) (int32, error) {
	sign := ""
	if s != "" && (s[0] == '-' || s[0] == '+') {
		sign, s = s[:1], s[1:]
	}
	base, digits := integerBase(s)
	if digits == "" || strings.ContainsAny(digits, "_+-") {
		return 0, errNotInteger
	}
	v, err := strconv.ParseInt(sign+digits, base, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func parseUint(s string) (uint32, error) {
	s = strings.TrimSuffix(strings.TrimSuffix(s, "u"), "U")
	base, digits := integerBase(s)
	if digits == "" || strings.ContainsAny(digits, "_+-") {
		return 0, errNotInteger
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// isDecimalFloat rejects the forms strconv accepts that GLSL does not, such
// as hex floats, underscores, Inf and NaN.
func isDecimalFloat(s string) bool {
	digits := 0
	for x := 0; x < len(s); x = x + 1 {
		switch c := s[x]; {
		case c >= '0' && c <= '9':
			digits = digits + 1
		case c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-':
		default:
			return false
		}
	}
	return digits > 0
}

func parseFloat32(s string) (float32, error) {
	s = strings.TrimSuffix(strings.TrimSuffix(s, "f"), "F")
	if !isDecimalFloat(s) {
		return 0, errNotFloating
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}

func parseFloat64(s string) (float64, error) {
	switch {
	case strings.HasSuffix(s, "lf") || strings.HasSuffix(s, "LF"):
		s = s[:len(s)-2]
	case strings.HasSuffix(s, "f") || strings.HasSuffix(s, "F"):
		s = s[:len(s)-1]
	}
	if !isDecimalFloat(s) {
		return 0, errNotFloating
	}
	return strconv.ParseFloat(s, 64)
}
