// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"errors"
	"fmt"

	"github.com/everly/shaderparser/internal/exc"
	"github.com/everly/shaderparser/internal/shader"
)

// CardinalityError reports a vector constructor whose component count does
// not match the arity of the declared type.
type CardinalityError struct {
	Type     shader.Type
	Expected int
	Found    int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("%s literal expects %d components but found %d", e.Type, e.Expected, e.Found)
}

// FieldError reports a literal component that could not be parsed as the
// component type. Index is the component position for vectors and -1 for
// scalars.
type FieldError struct {
	Type  shader.Type
	Index int
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%q is not a valid %s literal: %v", e.Field, e.Type, e.Err)
	}
	return fmt.Sprintf("component %d (%q) of %s literal is not a valid %s: %v", e.Index, e.Field, e.Type, e.Type.Component(), e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

var (
	errNotBool     = errors.New("expected true or false")
	errNotInteger  = errors.New("expected an integer")
	errNotFloating = errors.New("expected a floating point number")
)

func fail(code string, format string, args ...any) exc.Exception {
	return exc.Newf(exc.Location{}, code, format, args...)
}

func failWith(code string, err error) exc.Exception {
	return exc.Wrap(exc.Location{}, code, err)
}
