// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"strconv"
	"strings"

	"github.com/everly/shaderparser/internal/exc"
	"github.com/everly/shaderparser/internal/shader"
)

const keywordLayout = "layout"

// parseLayout parses the first layout qualifier of line. The caller must have
// checked that line contains the layout keyword.
func parseLayout(line string) (*shader.Layout, error) {
	start := findKeyword(line, keywordLayout)
	if start < 0 {
		return nil, fail(exc.CodeMalformedLayoutQualifier, "missing layout keyword")
	}
	cursor := start + len(keywordLayout)
	for cursor < len(line) && isSpace(line[cursor]) {
		cursor = cursor + 1
	}
	if cursor >= len(line) || line[cursor] != '(' {
		return nil, fail(exc.CodeMalformedLayoutQualifier, "expected '(' after layout")
	}
	open := cursor
	closing := -1
	for cursor = open + 1; closing < 0; cursor = cursor + 1 {
		if cursor >= len(line) {
			return nil, fail(exc.CodeMalformedLayoutQualifier, "layout qualifier is missing its closing ')'")
		}
		switch line[cursor] {
		case '(':
			return nil, fail(exc.CodeMalformedLayoutQualifier, "nested parentheses in layout qualifier")
		case ')':
			closing = cursor
		}
	}

	layout := &shader.Layout{
		RawText: line[start : closing+1],
		Entries: []shader.LayoutEntry{},
	}
	body := line[open+1 : closing]
	if strings.TrimSpace(body) == "" {
		return nil, fail(exc.CodeMalformedLayoutQualifier, "empty layout qualifier")
	}
	for offset, entry := range strings.Split(body, ",") {
		key, value, hasValue := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			return nil, fail(exc.CodeMalformedLayoutQualifier, "layout entry %d is empty", offset)
		}
		switch key {
		case "location":
			if !hasValue || !isDigits(value) {
				return nil, fail(exc.CodeMalformedLayoutQualifier, "layout location must be a single unsigned integer, found %q", value)
			}
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return nil, failWith(exc.CodeMalformedLayoutQualifier, err)
			}
			layout.Entries = append(layout.Entries, shader.LayoutEntry{Key: shader.LayoutKeyLocation, Value: uint32(n)})
		case "binding", "component":
			// recognized but not extracted
		default:
			// std140, set, push_constant and the rest carry no interface data
		}
	}
	return layout, nil
}
