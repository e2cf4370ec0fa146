// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"gopkg.in/yaml.v3"

	"github.com/everly/shaderparser/internal/shader"
)

// Render encodes an inspection response. The output of every format is
// stable for identical responses.
func Render(format Format, resp *shader.InspectResponse) ([]byte, error) {
	if format == FormatText {
		return renderText(resp)
	}
	value, err := ResponseValue(resp)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		b, err := protojson.Marshal(value)
		if err != nil {
			return nil, err
		}
		// protojson randomizes insignificant whitespace.
		var compact bytes.Buffer
		if err := json.Compact(&compact, b); err != nil {
			return nil, err
		}
		var out bytes.Buffer
		if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
			return nil, err
		}
		out.WriteByte('\n')
		return out.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(value.AsMap())
	case FormatProto:
		return proto.MarshalOptions{Deterministic: true}.Marshal(value)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func renderText(resp *shader.InspectResponse) ([]byte, error) {
	var b strings.Builder
	for offset, info := range resp.Shaders {
		if offset > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s (%s)\n", info.URI, info.Stage)
		for _, decl := range info.Declarations {
			switch d := decl.(type) {
			case *shader.Preprocessor:
				fmt.Fprintf(&b, "  %s\n", d.Declaration)
			case *shader.Variable:
				b.WriteString("  ")
				b.WriteString(d.String())
				if literal, ok := literalValue(d.Type); ok {
					fmt.Fprintf(&b, " = %s", textLiteral(d.Type.Type(), literal))
				}
				b.WriteByte('\n')
			default:
				return nil, fmt.Errorf("unsupported declaration %T", decl)
			}
		}
	}
	return []byte(b.String()), nil
}

func textLiteral(t shader.Type, v any) string {
	components, ok := v.([]any)
	if !ok {
		return fmt.Sprint(v)
	}
	parts := make([]string, 0, len(components))
	for _, c := range components {
		parts = append(parts, fmt.Sprint(c))
	}
	return t.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Compare returns a unified diff from expected to actual, or an empty string
// when they are equal. name labels the expected side.
func Compare(name string, expected string, actual string) (string, error) {
	if expected == actual {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(expected),
		B:        splitLines(actual),
		FromFile: name,
		ToFile:   "actual",
		Context:  3,
	})
}

// splitLines keeps the line terminators and, unlike difflib.SplitLines, adds
// no empty line after a final newline.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
