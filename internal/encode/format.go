// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package encode renders inspection results for people and for tools.
package encode

import (
	"fmt"
	"strings"
)

type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatProto Format = "proto"
)

// Formats lists every supported output format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatProto}

func ParseFormat(v string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(v)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q, want one of %v", v, Formats)
}

// Binary reports whether the format is unsuitable for a terminal.
func (f Format) Binary() bool {
	return f == FormatProto
}
