// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package extract derives the declaration sequence of a GLSL shader from its
// cleaned source lines. It performs no syntax or semantic validation beyond
// what is needed to classify each line.
//
// Every function in this package is synchronous and keeps no state between
// calls, so independent shaders may be extracted concurrently.
package extract

import (
	"errors"
	"fmt"

	"github.com/everly/shaderparser/internal/exc"
	"github.com/everly/shaderparser/internal/shader"
)

// Declarations extracts one declaration per line, in order. The first line
// must be a #version directive. Extraction stops at the first failing line
// and only the exception is returned; it carries uri and the line.
func Declarations(uri string, lines []shader.Line) ([]shader.DeclarationLine, error) {
	if len(lines) == 0 {
		return nil, exc.New(exc.Location{URI: uri}, exc.CodeMissingVersionDirective, "shader has no lines, expected #version first")
	}
	if name, _, ok := directive(lines[0].Text); !ok || name != directiveVersion {
		return nil, exc.New(location(uri, lines[0]), exc.CodeMissingVersionDirective, "the first line must be a #version directive")
	}
	decls := make([]shader.DeclarationLine, 0, len(lines))
	for _, line := range lines {
		decl, err := Declaration(line.Text)
		if err != nil {
			return nil, at(location(uri, line), err)
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// Shader extracts the declarations of a loaded source.
func Shader(src *shader.Source) (*shader.Info, error) {
	decls, err := Declarations(src.URI, src.Lines)
	if err != nil {
		return nil, err
	}
	return &shader.Info{
		URI:          src.URI,
		Stage:        src.Stage,
		Declarations: decls,
	}, nil
}

// Declaration classifies and extracts a single line. Errors returned here
// carry no location.
func Declaration(line string) (shader.DeclarationLine, error) {
	if _, _, ok := directive(line); ok {
		decl, err := parsePreprocessor(line)
		if err != nil {
			return nil, err
		}
		return &shader.Preprocessor{Declaration: decl}, nil
	}
	return parseVariable(line)
}

func parseVariable(line string) (*shader.Variable, error) {
	qualifiers, stripped, err := storageQualifiers(line)
	if err != nil {
		return nil, err
	}
	value, err := declaredType(stripped)
	if err != nil {
		return nil, err
	}
	name, err := identifier(stripped, value)
	if err != nil {
		return nil, err
	}
	return &shader.Variable{
		Name:       name,
		Qualifiers: qualifiers,
		Type:       value,
	}, nil
}

func location(uri string, line shader.Line) exc.Location {
	return exc.Location{URI: uri, Line: line.Number, Text: line.Text}
}

func at(loc exc.Location, err error) exc.Exception {
	var e exc.Exception
	if errors.As(err, &e) {
		return exc.At(loc, e)
	}
	return exc.WrapUnknown(loc, fmt.Errorf("extracting declaration: %w", err))
}
