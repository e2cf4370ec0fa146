// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"strings"

	"github.com/everly/shaderparser/internal/exc"
	"github.com/everly/shaderparser/internal/shader"
)

// declaredType finds the type keyword of a qualifier-free declaration and
// parses its initializer, if any.
func declaredType(line string) (shader.TypedValue, error) {
	head, init, hasInit := cutInitializer(line)
	t, ok := shader.TypeInvalid, false
	for _, token := range strings.Fields(head) {
		if t, ok = shader.LookupType(token); ok {
			break
		}
	}
	if !ok {
		return nil, fail(exc.CodeUnknownType, "no recognized type in %q", strings.TrimSpace(line))
	}
	if !hasInit {
		return shader.Empty(t), nil
	}
	return parseLiteral(t, init)
}
