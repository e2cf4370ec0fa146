// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"slices"
	"strings"

	"github.com/everly/shaderparser/internal/exc"
	"github.com/everly/shaderparser/internal/shader"
)

// identifier returns the variable name of a qualifier-free declaration: the
// text between the type keyword and the initializer or statement end.
func identifier(line string, value shader.TypedValue) (string, error) {
	head, _, _ := cutInitializer(line)
	tokens := strings.Fields(head)
	offset := slices.Index(tokens, value.Type().String())
	if offset < 0 {
		return "", fail(exc.CodeInvalidIdentifier, "type %s not found before the identifier", value.Type())
	}
	name := trimStatement(strings.Join(tokens[offset+1:], " "))
	if !isIdentifier(name) {
		if name == "" {
			return "", fail(exc.CodeInvalidIdentifier, "missing variable name after %s", value.Type())
		}
		return "", fail(exc.CodeInvalidIdentifier, "%q is not a valid variable name", name)
	}
	return name, nil
}

func isIdentifier(s string) bool {
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return false
	}
	for x := 0; x < len(s); x = x + 1 {
		if !isIdentByte(s[x]) {
			return false
		}
	}
	return true
}
