// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/everly/shaderparser/internal/exc"
	"github.com/everly/shaderparser/internal/optional"
	"github.com/everly/shaderparser/internal/shader"
)

func TestScalarDeclarations(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		typ      string
		value    string
		expected shader.TypedValue
	}{
		{typ: "bool", value: "true", expected: shader.Scalar[bool]{Literal: optional.Some(true)}},
		{typ: "bool", value: "false", expected: shader.Scalar[bool]{Literal: optional.Some(false)}},
		{typ: "int", value: "42", expected: shader.Scalar[int32]{Literal: optional.Some(int32(42))}},
		{typ: "int", value: "-7", expected: shader.Scalar[int32]{Literal: optional.Some(int32(-7))}},
		{typ: "int", value: "0x1F", expected: shader.Scalar[int32]{Literal: optional.Some(int32(31))}},
		{typ: "int", value: "010", expected: shader.Scalar[int32]{Literal: optional.Some(int32(8))}},
		{typ: "uint", value: "7", expected: shader.Scalar[uint32]{Literal: optional.Some(uint32(7))}},
		{typ: "uint", value: "7u", expected: shader.Scalar[uint32]{Literal: optional.Some(uint32(7))}},
		{typ: "uint", value: "4294967295U", expected: shader.Scalar[uint32]{Literal: optional.Some(uint32(4294967295))}},
		{typ: "float", value: "1.5", expected: shader.Scalar[float32]{Literal: optional.Some(float32(1.5))}},
		{typ: "float", value: "0.25f", expected: shader.Scalar[float32]{Literal: optional.Some(float32(0.25))}},
		{typ: "float", value: "1e3", expected: shader.Scalar[float32]{Literal: optional.Some(float32(1000))}},
		{typ: "float", value: "2", expected: shader.Scalar[float32]{Literal: optional.Some(float32(2))}},
		{typ: "double", value: "3.25", expected: shader.Scalar[float64]{Literal: optional.Some(3.25)}},
		{typ: "double", value: "3.25lf", expected: shader.Scalar[float64]{Literal: optional.Some(3.25)}},
		{typ: "double", value: ".5LF", expected: shader.Scalar[float64]{Literal: optional.Some(0.5)}},
	}
	for _, testCase := range testCases {
		testCase := testCase
		input := fmt.Sprintf("in %s x = %s;", testCase.typ, testCase.value)
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			decl, err := Declaration(input)
			require.NoError(t, err)
			require.Equal(t, &shader.Variable{
				Name:       "x",
				Qualifiers: []shader.StorageQualifier{shader.In{}},
				Type:       testCase.expected,
			}, decl)
		})
	}
}

func TestScalarLiteralFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		typ   shader.Type
		input string
	}{
		{typ: shader.TypeBool, input: "maybe"},
		{typ: shader.TypeBool, input: "!true"},
		{typ: shader.TypeInt, input: "1.5"},
		{typ: shader.TypeInt, input: "2147483648"},
		{typ: shader.TypeInt, input: "08"},
		{typ: shader.TypeInt, input: "1_000"},
		{typ: shader.TypeUint, input: "-1"},
		{typ: shader.TypeUint, input: "abc"},
		{typ: shader.TypeFloat, input: "one"},
		{typ: shader.TypeFloat, input: "NaN"},
		{typ: shader.TypeFloat, input: "0x1p-2"},
		{typ: shader.TypeDouble, input: "Inf"},
		{typ: shader.TypeDouble, input: "1.0.0"},
		{typ: shader.TypeDouble, input: "   ;"},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.typ.String()+" "+testCase.input, func(t *testing.T) {
			t.Parallel()

			value, err := parseLiteral(testCase.typ, testCase.input)
			require.Nil(t, value)
			requireCode(t, err, exc.CodeLiteralParseFailure)
		})
	}
}

func TestVectorLiterals(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		typ      shader.Type
		input    string
		expected shader.TypedValue
	}{
		{
			typ:      shader.TypeVec3,
			input:    " vec3(1.0,0.1,0.2);",
			expected: shader.Vector[float32]{Size: 3, Literal: optional.Some([]float32{1.0, 0.1, 0.2})},
		},
		{
			typ:      shader.TypeVec2,
			input:    "vec2( 0.5 , -0.5 )",
			expected: shader.Vector[float32]{Size: 2, Literal: optional.Some([]float32{0.5, -0.5})},
		},
		{
			typ:      shader.TypeIVec4,
			input:    "ivec4(-1, 2, -3, 4)",
			expected: shader.Vector[int32]{Size: 4, Literal: optional.Some([]int32{-1, 2, -3, 4})},
		},
		{
			typ:      shader.TypeUVec2,
			input:    "uvec2(1u, 0x10)",
			expected: shader.Vector[uint32]{Size: 2, Literal: optional.Some([]uint32{1, 16})},
		},
		{
			typ:      shader.TypeDVec3,
			input:    "dvec3(1.0lf, 2.0, 3)",
			expected: shader.Vector[float64]{Size: 3, Literal: optional.Some([]float64{1, 2, 3})},
		},
		{
			typ:      shader.TypeVec3,
			input:    "ivec3(1, 2, 3)",
			expected: shader.Vector[float32]{Size: 3, Literal: optional.Some([]float32{1, 2, 3})},
		},
		{
			typ:      shader.TypeIVec2,
			input:    "vec2(1, -2)",
			expected: shader.Vector[int32]{Size: 2, Literal: optional.Some([]int32{1, -2})},
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.typ.String(), func(t *testing.T) {
			t.Parallel()

			value, err := parseLiteral(testCase.typ, testCase.input)
			require.NoError(t, err)
			require.Equal(t, testCase.expected, value)
			require.Equal(t, testCase.typ, value.Type())
			require.True(t, value.HasLiteral())
		})
	}
}

func TestVectorCardinality(t *testing.T) {
	t.Parallel()

	for _, typ := range []shader.Type{
		shader.TypeIVec2, shader.TypeIVec3, shader.TypeIVec4,
		shader.TypeUVec2, shader.TypeUVec3, shader.TypeUVec4,
		shader.TypeVec2, shader.TypeVec3, shader.TypeVec4,
		shader.TypeDVec2, shader.TypeDVec3, shader.TypeDVec4,
	} {
		typ := typ
		t.Run(typ.String(), func(t *testing.T) {
			t.Parallel()

			exact := make([]string, 0, typ.Size()+1)
			for x := 0; x < typ.Size(); x = x + 1 {
				exact = append(exact, fmt.Sprint(x+1))
			}
			value, err := parseLiteral(typ, fmt.Sprintf("%s(%s)", typ, strings.Join(exact, ", ")))
			require.NoError(t, err)
			require.Equal(t, typ, value.Type())

			for _, found := range []int{typ.Size() - 1, typ.Size() + 1} {
				fields := make([]string, 0, found)
				for x := 0; x < found; x = x + 1 {
					fields = append(fields, "1")
				}
				value, err := parseLiteral(typ, fmt.Sprintf("%s(%s)", typ, strings.Join(fields, ",")))
				require.Nil(t, value)
				e := requireCode(t, err, exc.CodeLiteralCardinalityMismatch)
				require.Contains(t, e.Message(), fmt.Sprintf("expects %d components but found %d", typ.Size(), found))

				var cardinality *CardinalityError
				require.True(t, errors.As(err, &cardinality))
				require.Equal(t, typ.Size(), cardinality.Expected)
				require.Equal(t, found, cardinality.Found)
			}
		})
	}
}

func TestVectorFieldFailure(t *testing.T) {
	t.Parallel()

	_, err := parseLiteral(shader.TypeVec3, "vec3(1.0, two, 3.0)")
	e := requireCode(t, err, exc.CodeLiteralParseFailure)
	require.Contains(t, e.Message(), `"two"`)

	var field *FieldError
	require.True(t, errors.As(err, &field))
	require.Equal(t, 1, field.Index)
	require.Equal(t, "two", field.Field)
	require.ErrorIs(t, err, errNotFloating)
}

func TestVectorConstructorFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input string
		code  string
	}{
		{input: "1.0", code: exc.CodeLiteralParseFailure},
		{input: "ivec2(1, 2, 3)", code: exc.CodeLiteralParseFailure},
		{input: "mat3(1, 2, 3)", code: exc.CodeLiteralParseFailure},
		{input: "float(1.0)", code: exc.CodeLiteralParseFailure},
		{input: "bvec3(true, false, true)", code: exc.CodeLiteralParseFailure},
		{input: "vec3(1.0, 2.0, 3.0", code: exc.CodeLiteralParseFailure},
		{input: "vec3(1.0, 2.0, 3.0) * 2.0", code: exc.CodeLiteralParseFailure},
		{input: "vec3(vec2(1.0, 2.0), 3.0)", code: exc.CodeUnimplementedLiteralForm},
		{input: "vec3()", code: exc.CodeLiteralCardinalityMismatch},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			value, err := parseLiteral(shader.TypeVec3, testCase.input)
			require.Nil(t, value)
			requireCode(t, err, testCase.code)
		})
	}
}

func TestUnimplementedLiterals(t *testing.T) {
	t.Parallel()

	for _, typ := range []shader.Type{
		shader.TypeBVec2, shader.TypeBVec3, shader.TypeBVec4,
		shader.TypeMat2, shader.TypeMat3, shader.TypeMat4,
		shader.TypeDMat2, shader.TypeDMat3, shader.TypeDMat4,
		shader.TypeSampler2D, shader.TypeUSampler2D, shader.TypeISampler2D,
	} {
		typ := typ
		t.Run(typ.String(), func(t *testing.T) {
			t.Parallel()

			value, err := parseLiteral(typ, typ.String()+"(1)")
			require.Nil(t, value)
			requireCode(t, err, exc.CodeUnimplementedLiteralForm)

			value, err = declaredType(typ.String() + " x;")
			require.NoError(t, err)
			require.Equal(t, typ, value.Type())
			require.False(t, value.HasLiteral())
		})
	}
}
