// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"fmt"
)

type Exception interface {
	error
	Code() string
	Message() string
	Location() Location
	Stage() Stage
}

// Location identifies the source line an exception was raised for. Line is
// the 1-based line number in the original file, or zero when unknown. Text is
// the line content as it reached the stage that failed.
type Location struct {
	URI  string
	Line int32
	Text string
}

type exc struct {
	code     string
	message  string
	location Location
}

func (e *exc) Error() string {
	if e.location.Text == "" {
		return fmt.Sprintf("%s:%d -- %s: %s", e.location.URI, e.location.Line, e.code, e.message)
	}
	return fmt.Sprintf("%s:%d -- %s: %s (in %q)", e.location.URI, e.location.Line, e.code, e.message, e.location.Text)
}

func (e *exc) Code() string {
	return e.code
}

func (e *exc) Message() string {
	return e.message
}

func (e *exc) Location() Location {
	return e.location
}

func (e *exc) Stage() Stage {
	return StageOf(e.code)
}

type excUnwrap struct {
	Exception
	cause error
}

func (e *excUnwrap) Unwrap() error {
	return e.cause
}

func New(location Location, code string, message string) Exception {
	return &exc{
		location: location,
		message:  message,
		code:     code,
	}
}

// Newf is New with a formatted message.
func Newf(location Location, code string, format string, args ...any) Exception {
	return New(location, code, fmt.Sprintf(format, args...))
}

func Wrap(location Location, code string, err error) Exception {
	if err == nil {
		return nil
	}
	if e, ok := err.(Exception); ok {
		return &excUnwrap{
			Exception: New(location, code, e.Message()),
			cause:     e,
		}
	}
	return &excUnwrap{
		cause:     err,
		Exception: New(location, code, err.Error()),
	}
}

func WrapUnknown(location Location, err error) Exception {
	return Wrap(location, CodeUnknownFatal, err)
}

// At returns a copy of e reported at location. The code, message and any
// wrapped cause are preserved.
func At(location Location, e Exception) Exception {
	if e == nil {
		return nil
	}
	return &excUnwrap{
		Exception: New(location, e.Code(), e.Message()),
		cause:     e,
	}
}
