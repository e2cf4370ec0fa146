// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/everly/shaderparser/internal/exc"
	"github.com/everly/shaderparser/internal/optional"
	"github.com/everly/shaderparser/internal/shader"
)

func requireCode(t *testing.T, err error, code string) exc.Exception {
	t.Helper()
	require.Error(t, err)
	var e exc.Exception
	require.True(t, errors.As(err, &e), "expected an exception, got %v", err)
	require.Equal(t, code, e.Code(), e.Error())
	return e
}

func TestDeclaration(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected shader.DeclarationLine
	}{
		{
			name:  "version core",
			input: "#version 430 core",
			expected: &shader.Preprocessor{
				Declaration: shader.Version{Number: 430, Branch: shader.VersionBranchCore},
			},
		},
		{
			name:  "layout location input",
			input: "layout (location = 2) in vec2 aTexCoord;",
			expected: &shader.Variable{
				Name: "aTexCoord",
				Qualifiers: []shader.StorageQualifier{
					&shader.Layout{
						RawText: "layout (location = 2)",
						Entries: []shader.LayoutEntry{{Key: shader.LayoutKeyLocation, Value: 2}},
					},
					shader.In{},
				},
				Type: shader.Vector[float32]{Size: 2},
			},
		},
		{
			name:  "bool without value",
			input: "in bool test;",
			expected: &shader.Variable{
				Name:       "test",
				Qualifiers: []shader.StorageQualifier{shader.In{}},
				Type:       shader.Scalar[bool]{},
			},
		},
		{
			name:  "bool with value",
			input: "in bool test = true;",
			expected: &shader.Variable{
				Name:       "test",
				Qualifiers: []shader.StorageQualifier{shader.In{}},
				Type:       shader.Scalar[bool]{Literal: optional.Some(true)},
			},
		},
		{
			name:  "uniform sampler",
			input: "uniform sampler2D texture1;",
			expected: &shader.Variable{
				Name:       "texture1",
				Qualifiers: []shader.StorageQualifier{shader.Uniform{}},
				Type:       shader.Sampler2D{Component: shader.ComponentFloat},
			},
		},
		{
			name:  "default qualifier",
			input: "mat4 model;",
			expected: &shader.Variable{
				Name:       "model",
				Qualifiers: []shader.StorageQualifier{},
				Type:       shader.Matrix{Size: 4},
			},
		},
		{
			name:  "const with value",
			input: "const float gamma = 2.2;",
			expected: &shader.Variable{
				Name:       "gamma",
				Qualifiers: []shader.StorageQualifier{shader.Const{}},
				Type:       shader.Scalar[float32]{Literal: optional.Some(float32(2.2))},
			},
		},
		{
			name:  "output vector",
			input: "out vec4 FragColor;",
			expected: &shader.Variable{
				Name:       "FragColor",
				Qualifiers: []shader.StorageQualifier{shader.Out{}},
				Type:       shader.Vector[float32]{Size: 4},
			},
		},
		{
			name:  "identifier containing keyword text",
			input: "uniform float uniformScale;",
			expected: &shader.Variable{
				Name:       "uniformScale",
				Qualifiers: []shader.StorageQualifier{shader.Uniform{}},
				Type:       shader.Scalar[float32]{},
			},
		},
		{
			name:  "identifier starting with in",
			input: "vec3 inner;",
			expected: &shader.Variable{
				Name:       "inner",
				Qualifiers: []shader.StorageQualifier{},
				Type:       shader.Vector[float32]{Size: 3},
			},
		},
		{
			name:  "precision qualifier is skipped",
			input: "uniform highp vec3 lightPos ;",
			expected: &shader.Variable{
				Name:       "lightPos",
				Qualifiers: []shader.StorageQualifier{shader.Uniform{}},
				Type:       shader.Vector[float32]{Size: 3},
			},
		},
		{
			name:  "uvec4 literal",
			input: "uvec4 aTest = uvec4(1,1,2,9);",
			expected: &shader.Variable{
				Name:       "aTest",
				Qualifiers: []shader.StorageQualifier{},
				Type:       shader.Vector[uint32]{Size: 4, Literal: optional.Some([]uint32{1, 1, 2, 9})},
			},
		},
		{
			name:  "in takes priority over out",
			input: "in out vec3 both;",
			expected: &shader.Variable{
				Name:       "both",
				Qualifiers: []shader.StorageQualifier{shader.In{}},
				Type:       shader.Vector[float32]{Size: 3},
			},
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			decl, err := Declaration(testCase.input)
			require.NoError(t, err)
			require.Equal(t, testCase.expected, decl)
		})
	}
}

func TestDeclarationErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input string
		code  string
		stage exc.Stage
	}{
		{input: "#define FOO 1", code: exc.CodeUnrecognizedPreprocessor, stage: exc.StagePreprocessor},
		{input: "#", code: exc.CodeUnrecognizedPreprocessor, stage: exc.StagePreprocessor},
		{input: "#version abc", code: exc.CodeInvalidVersion, stage: exc.StagePreprocessor},
		{input: "layout (location = 2 in vec3 x;", code: exc.CodeMalformedLayoutQualifier, stage: exc.StageQualifier},
		{input: "in vec7 x;", code: exc.CodeUnknownType, stage: exc.StageType},
		{input: "in vec3 x = vec3(1.0, 2.0);", code: exc.CodeLiteralCardinalityMismatch, stage: exc.StageLiteral},
		{input: "in int x = nope;", code: exc.CodeLiteralParseFailure, stage: exc.StageLiteral},
		{input: "uniform mat4 m = mat4(1.0);", code: exc.CodeUnimplementedLiteralForm, stage: exc.StageLiteral},
		{input: "in vec3 ;", code: exc.CodeInvalidIdentifier, stage: exc.StageIdentifier},
		{input: "in vec3 x[4];", code: exc.CodeInvalidIdentifier, stage: exc.StageIdentifier},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			_, err := Declaration(testCase.input)
			e := requireCode(t, err, testCase.code)
			require.Equal(t, testCase.stage, e.Stage())
		})
	}
}

func TestDeclarations(t *testing.T) {
	t.Parallel()

	lines := shader.Lines(
		"#version 330 core",
		"layout (location = 0) in vec3 aPos;",
		"layout (location = 1) in vec2 aTexCoord;",
		"out vec2 TexCoord;",
		"uniform mat4 transform;",
	)
	decls, err := Declarations("/shader.vert", lines)
	require.NoError(t, err)
	require.Len(t, decls, 5)
	require.Equal(t, &shader.Preprocessor{Declaration: shader.Version{Number: 330, Branch: shader.VersionBranchCore}}, decls[0])

	names := make([]string, 0, 4)
	for _, decl := range decls[1:] {
		v, ok := decl.(*shader.Variable)
		require.True(t, ok)
		names = append(names, v.Name)
	}
	require.Equal(t, []string{"aPos", "aTexCoord", "TexCoord", "transform"}, names)
}

func TestDeclarationsMissingVersion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		lines []shader.Line
	}{
		{name: "no lines", lines: nil},
		{name: "declaration first", lines: shader.Lines("in vec3 aPos;", "#version 330 core")},
		{name: "other directive first", lines: shader.Lines("#extension GL_ARB_foo : enable", "#version 330 core")},
		{name: "broken rest", lines: shader.Lines("out vec4 color;", "this is not glsl")},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			decls, err := Declarations("/shader.frag", testCase.lines)
			require.Nil(t, decls)
			e := requireCode(t, err, exc.CodeMissingVersionDirective)
			require.Equal(t, exc.StageClassification, e.Stage())
		})
	}
}

func TestDeclarationsStopsAtFirstError(t *testing.T) {
	t.Parallel()

	lines := []shader.Line{
		{Number: 1, Text: "#version 330 core"},
		{Number: 4, Text: "in vec3 aPos;"},
		{Number: 7, Text: "in vec3 aNormal = vec3(1.0);"},
		{Number: 9, Text: "in ivec9 nope;"},
	}
	decls, err := Declarations("/shader.vert", lines)
	require.Nil(t, decls)
	e := requireCode(t, err, exc.CodeLiteralCardinalityMismatch)
	require.Equal(t, exc.Location{URI: "/shader.vert", Line: 7, Text: "in vec3 aNormal = vec3(1.0);"}, e.Location())

	var cardinality *CardinalityError
	require.True(t, errors.As(err, &cardinality))
	require.Equal(t, &CardinalityError{Type: shader.TypeVec3, Expected: 3, Found: 1}, cardinality)
}

func TestAtWrappedException(t *testing.T) {
	t.Parallel()

	loc := exc.Location{URI: "/shader.vert", Line: 3, Text: "in vec5 aPos;"}
	cause := fail(exc.CodeUnknownType, "no recognized type")

	e := at(loc, fmt.Errorf("classifying: %w", cause))
	require.Equal(t, exc.CodeUnknownType, e.Code())
	require.Equal(t, exc.StageType, e.Stage())
	require.Equal(t, loc, e.Location())

	e = at(loc, errors.New("plain failure"))
	require.Equal(t, exc.CodeUnknownFatal, e.Code())
	require.Equal(t, loc, e.Location())
}

func TestDeclarationsConcurrent(t *testing.T) {
	t.Parallel()

	lines := shader.Lines(
		"#version 450 core",
		"layout (location = 3) out vec4 color;",
		"uniform ivec2 size = ivec2(640, 480);",
	)
	var wg sync.WaitGroup
	results := make([][]shader.DeclarationLine, 16)
	for x := 0; x < len(results); x = x + 1 {
		wg.Add(1)
		go func(x int) {
			defer wg.Done()
			decls, err := Declarations("/shader.frag", lines)
			if err == nil {
				results[x] = decls
			}
		}(x)
	}
	wg.Wait()
	for _, decls := range results {
		require.Equal(t, results[0], decls)
		require.Len(t, decls, 3)
	}
}
