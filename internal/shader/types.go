// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package shader

import (
	"fmt"

	"github.com/everly/shaderparser/internal/optional"
)

// Type is a recognized GLSL type keyword.
type Type uint8

const (
	TypeInvalid Type = iota

	TypeBool
	TypeInt
	TypeUint
	TypeFloat
	TypeDouble

	TypeBVec2
	TypeBVec3
	TypeBVec4
	TypeIVec2
	TypeIVec3
	TypeIVec4
	TypeUVec2
	TypeUVec3
	TypeUVec4
	TypeVec2
	TypeVec3
	TypeVec4
	TypeDVec2
	TypeDVec3
	TypeDVec4

	TypeMat2
	TypeMat3
	TypeMat4
	TypeDMat2
	TypeDMat3
	TypeDMat4

	TypeSampler2D
	TypeUSampler2D
	TypeISampler2D
)

type Category uint8

const (
	CategoryInvalid Category = iota
	CategoryScalar
	CategoryVector
	CategoryMatrix
	CategorySampler
)

func (c Category) String() string {
	switch c {
	case CategoryScalar:
		return "scalar"
	case CategoryVector:
		return "vector"
	case CategoryMatrix:
		return "matrix"
	case CategorySampler:
		return "sampler"
	default:
		return "invalid"
	}
}

// ComponentKind is the scalar kind a type is built from.
type ComponentKind uint8

const (
	ComponentBool ComponentKind = iota
	ComponentInt
	ComponentUint
	ComponentFloat
	ComponentDouble
)

func (k ComponentKind) String() string {
	return scalarNames[k]
}

var scalarNames = [...]string{
	ComponentBool:   "bool",
	ComponentInt:    "int",
	ComponentUint:   "uint",
	ComponentFloat:  "float",
	ComponentDouble: "double",
}

type typeInfo struct {
	name      string
	category  Category
	component ComponentKind
	// component count for vectors, column count for matrices, 1 otherwise
	size int
}

var typeTable = [...]typeInfo{
	TypeInvalid: {name: "invalid"},

	TypeBool:   {"bool", CategoryScalar, ComponentBool, 1},
	TypeInt:    {"int", CategoryScalar, ComponentInt, 1},
	TypeUint:   {"uint", CategoryScalar, ComponentUint, 1},
	TypeFloat:  {"float", CategoryScalar, ComponentFloat, 1},
	TypeDouble: {"double", CategoryScalar, ComponentDouble, 1},

	TypeBVec2: {"bvec2", CategoryVector, ComponentBool, 2},
	TypeBVec3: {"bvec3", CategoryVector, ComponentBool, 3},
	TypeBVec4: {"bvec4", CategoryVector, ComponentBool, 4},
	TypeIVec2: {"ivec2", CategoryVector, ComponentInt, 2},
	TypeIVec3: {"ivec3", CategoryVector, ComponentInt, 3},
	TypeIVec4: {"ivec4", CategoryVector, ComponentInt, 4},
	TypeUVec2: {"uvec2", CategoryVector, ComponentUint, 2},
	TypeUVec3: {"uvec3", CategoryVector, ComponentUint, 3},
	TypeUVec4: {"uvec4", CategoryVector, ComponentUint, 4},
	TypeVec2:  {"vec2", CategoryVector, ComponentFloat, 2},
	TypeVec3:  {"vec3", CategoryVector, ComponentFloat, 3},
	TypeVec4:  {"vec4", CategoryVector, ComponentFloat, 4},
	TypeDVec2: {"dvec2", CategoryVector, ComponentDouble, 2},
	TypeDVec3: {"dvec3", CategoryVector, ComponentDouble, 3},
	TypeDVec4: {"dvec4", CategoryVector, ComponentDouble, 4},

	TypeMat2:  {"mat2", CategoryMatrix, ComponentFloat, 2},
	TypeMat3:  {"mat3", CategoryMatrix, ComponentFloat, 3},
	TypeMat4:  {"mat4", CategoryMatrix, ComponentFloat, 4},
	TypeDMat2: {"dmat2", CategoryMatrix, ComponentDouble, 2},
	TypeDMat3: {"dmat3", CategoryMatrix, ComponentDouble, 3},
	TypeDMat4: {"dmat4", CategoryMatrix, ComponentDouble, 4},

	TypeSampler2D:  {"sampler2D", CategorySampler, ComponentFloat, 1},
	TypeUSampler2D: {"usampler2D", CategorySampler, ComponentUint, 1},
	TypeISampler2D: {"isampler2D", CategorySampler, ComponentInt, 1},
}

var typeNames = func() map[string]Type {
	names := make(map[string]Type, len(typeTable))
	for t, info := range typeTable {
		if Type(t) == TypeInvalid {
			continue
		}
		names[info.name] = Type(t)
	}
	return names
}()

// LookupType returns the type spelled exactly as name.
func LookupType(name string) (Type, bool) {
	t, ok := typeNames[name]
	return t, ok
}

func (t Type) info() typeInfo {
	if int(t) >= len(typeTable) {
		return typeTable[TypeInvalid]
	}
	return typeTable[t]
}

func (t Type) String() string {
	if int(t) >= len(typeTable) {
		return fmt.Sprintf("unknown-%d", t)
	}
	return t.info().name
}

func (t Type) Category() Category {
	return t.info().category
}

func (t Type) Component() ComponentKind {
	return t.info().component
}

// Size is the component count of a vector, the column count of a square
// matrix, and 1 for everything else.
func (t Type) Size() int {
	return t.info().size
}

// VectorOf returns the vector type with the given component kind and size.
func VectorOf(component ComponentKind, size int) Type {
	for t, info := range typeTable {
		if info.category == CategoryVector && info.component == component && info.size == size {
			return Type(t)
		}
	}
	return TypeInvalid
}

// Component is the set of Go types a literal component may have.
type Component interface {
	bool | int32 | uint32 | float32 | float64
}

func componentOf[T Component]() ComponentKind {
	var zero T
	switch any(zero).(type) {
	case bool:
		return ComponentBool
	case int32:
		return ComponentInt
	case uint32:
		return ComponentUint
	case float32:
		return ComponentFloat
	default:
		return ComponentDouble
	}
}

// TypedValue is the declared type of a variable together with its optional
// literal initializer. It is one of Scalar, Vector, Matrix or Sampler2D.
type TypedValue interface {
	Type() Type
	HasLiteral() bool
	typedValue()
}

// Scalar is a bool, int, uint, float or double.
type Scalar[T Component] struct {
	Literal optional.Optional[T]
}

func (s Scalar[T]) Type() Type {
	return Type(int(TypeBool) + int(componentOf[T]()))
}

func (s Scalar[T]) HasLiteral() bool { return s.Literal.IsPresent() }
func (Scalar[T]) typedValue()        {}

// Vector is a fixed size vector. When present, the literal has exactly Size
// components in x, y, z, w order.
type Vector[T Component] struct {
	Size    int
	Literal optional.Optional[[]T]
}

func (v Vector[T]) Type() Type {
	return VectorOf(componentOf[T](), v.Size)
}

func (v Vector[T]) HasLiteral() bool { return v.Literal.IsPresent() }
func (Vector[T]) typedValue()        {}

// Matrix is a square float or double matrix. Literals are never extracted.
type Matrix struct {
	Size   int
	Double bool
}

func (m Matrix) Type() Type {
	if m.Double {
		return Type(int(TypeDMat2) + m.Size - 2)
	}
	return Type(int(TypeMat2) + m.Size - 2)
}

func (Matrix) HasLiteral() bool { return false }
func (Matrix) typedValue()      {}

// Sampler2D is a 2D texture sampler. Literals are never extracted.
type Sampler2D struct {
	Component ComponentKind
}

func (s Sampler2D) Type() Type {
	switch s.Component {
	case ComponentUint:
		return TypeUSampler2D
	case ComponentInt:
		return TypeISampler2D
	default:
		return TypeSampler2D
	}
}

func (Sampler2D) HasLiteral() bool { return false }
func (Sampler2D) typedValue()      {}

// Empty returns the value of type t without a literal.
func Empty(t Type) TypedValue {
	switch t.Category() {
	case CategoryScalar:
		switch t.Component() {
		case ComponentBool:
			return Scalar[bool]{}
		case ComponentInt:
			return Scalar[int32]{}
		case ComponentUint:
			return Scalar[uint32]{}
		case ComponentFloat:
			return Scalar[float32]{}
		default:
			return Scalar[float64]{}
		}
	case CategoryVector:
		switch t.Component() {
		case ComponentBool:
			return Vector[bool]{Size: t.Size()}
		case ComponentInt:
			return Vector[int32]{Size: t.Size()}
		case ComponentUint:
			return Vector[uint32]{Size: t.Size()}
		case ComponentFloat:
			return Vector[float32]{Size: t.Size()}
		default:
			return Vector[float64]{Size: t.Size()}
		}
	case CategoryMatrix:
		return Matrix{Size: t.Size(), Double: t.Component() == ComponentDouble}
	case CategorySampler:
		return Sampler2D{Component: t.Component()}
	default:
		return nil
	}
}
