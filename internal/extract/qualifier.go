// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"slices"
	"strings"

	"github.com/everly/shaderparser/internal/shader"
)

// storageQualifiers extracts the qualifiers of a declaration and returns the
// declaration with them removed. Only one of uniform, in and out is taken,
// in that priority.
func storageQualifiers(line string) ([]shader.StorageQualifier, string, error) {
	qualifiers := make([]shader.StorageQualifier, 0, 3)
	rest := line
	if findKeyword(line, keywordLayout) >= 0 {
		layout, err := parseLayout(line)
		if err != nil {
			return nil, "", err
		}
		qualifiers = append(qualifiers, layout)
		rest = strings.Replace(rest, layout.RawText, " ", 1)
	}

	head, tail, hasInit := strings.Cut(rest, "=")
	tokens := strings.Fields(head)
	for _, q := range []shader.StorageQualifier{shader.Uniform{}, shader.In{}, shader.Out{}} {
		if slices.Contains(tokens, q.Text()) {
			qualifiers = append(qualifiers, q)
			tokens = removeToken(tokens, q.Text())
			break
		}
	}
	if slices.Contains(tokens, shader.Const{}.Text()) {
		qualifiers = append(qualifiers, shader.Const{})
		tokens = removeToken(tokens, shader.Const{}.Text())
	}

	stripped := strings.Join(tokens, " ")
	if hasInit {
		stripped = stripped + " =" + tail
	}
	return qualifiers, stripped, nil
}
