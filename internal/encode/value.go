// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package encode

import (
	"fmt"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/everly/shaderparser/internal/optional"
	"github.com/everly/shaderparser/internal/shader"
)

// ToValue converts the extracted interface of one shader into a protobuf
// Struct:
//
//	{uri, stage, declarations: [
//	  {kind: "preprocessor", directive: "version", number, branch} |
//	  {kind: "variable", name, type, qualifiers: [{kind, raw?, entries?}], literal?}
//	]}
func ToValue(info *shader.Info) (*structpb.Struct, error) {
	decls := make([]any, 0, len(info.Declarations))
	for _, decl := range info.Declarations {
		v, err := declarationValue(decl)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", info.URI, err)
		}
		decls = append(decls, v)
	}
	return structpb.NewStruct(map[string]any{
		"uri":          info.URI,
		"stage":        info.Stage.String(),
		"declarations": decls,
	})
}

// ResponseValue converts every shader of an inspection response.
func ResponseValue(resp *shader.InspectResponse) (*structpb.Struct, error) {
	shaders := make([]any, 0, len(resp.Shaders))
	for _, info := range resp.Shaders {
		v, err := ToValue(info)
		if err != nil {
			return nil, err
		}
		shaders = append(shaders, v.AsMap())
	}
	return structpb.NewStruct(map[string]any{"shaders": shaders})
}

func declarationValue(decl shader.DeclarationLine) (map[string]any, error) {
	switch d := decl.(type) {
	case *shader.Preprocessor:
		switch p := d.Declaration.(type) {
		case shader.Version:
			return map[string]any{
				"kind":      "preprocessor",
				"directive": "version",
				"number":    uint32(p.Number),
				"branch":    p.Branch.String(),
			}, nil
		default:
			return nil, fmt.Errorf("unsupported preprocessor declaration %T", p)
		}
	case *shader.Variable:
		qualifiers := make([]any, 0, len(d.Qualifiers))
		for _, q := range d.Qualifiers {
			qualifiers = append(qualifiers, qualifierValue(q))
		}
		v := map[string]any{
			"kind":       "variable",
			"name":       d.Name,
			"type":       d.Type.Type().String(),
			"qualifiers": qualifiers,
		}
		if literal, ok := literalValue(d.Type); ok {
			v["literal"] = literal
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported declaration %T", decl)
	}
}

func qualifierValue(q shader.StorageQualifier) map[string]any {
	v := map[string]any{"kind": q.Kind().String()}
	l, ok := q.(*shader.Layout)
	if !ok {
		return v
	}
	entries := make([]any, 0, len(l.Entries))
	for _, e := range l.Entries {
		entries = append(entries, map[string]any{
			"key":   e.Key.String(),
			"value": e.Value,
		})
	}
	v["raw"] = l.RawText
	v["entries"] = entries
	return v
}

func literalValue(value shader.TypedValue) (any, bool) {
	switch v := value.(type) {
	case shader.Scalar[bool]:
		return scalarValue(v.Literal)
	case shader.Scalar[int32]:
		return scalarValue(v.Literal)
	case shader.Scalar[uint32]:
		return scalarValue(v.Literal)
	case shader.Scalar[float32]:
		return scalarValue(v.Literal)
	case shader.Scalar[float64]:
		return scalarValue(v.Literal)
	case shader.Vector[bool]:
		return vectorValue(v.Literal)
	case shader.Vector[int32]:
		return vectorValue(v.Literal)
	case shader.Vector[uint32]:
		return vectorValue(v.Literal)
	case shader.Vector[float32]:
		return vectorValue(v.Literal)
	case shader.Vector[float64]:
		return vectorValue(v.Literal)
	default:
		return nil, false
	}
}

func scalarValue[T shader.Component](literal optional.Optional[T]) (any, bool) {
	if !literal.IsPresent() {
		return nil, false
	}
	return componentValue(literal.Value()), true
}

func vectorValue[T shader.Component](literal optional.Optional[[]T]) (any, bool) {
	if !literal.IsPresent() {
		return nil, false
	}
	components := literal.Value()
	out := make([]any, 0, len(components))
	for _, c := range components {
		out = append(out, componentValue(c))
	}
	return out, true
}

// componentValue widens a component to a type structpb accepts. Floats are
// widened through their shortest decimal form so 0.2 stays 0.2.
func componentValue[T shader.Component](c T) any {
	switch v := any(c).(type) {
	case float32:
		f, _ := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'g', -1, 32), 64)
		return f
	default:
		return v
	}
}
