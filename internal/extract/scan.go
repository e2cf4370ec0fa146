// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"slices"
	"strings"
)

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f'
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for x := 0; x < len(s); x = x + 1 {
		if s[x] < '0' || s[x] > '9' {
			return false
		}
	}
	return true
}

// findKeyword returns the offset of the first occurrence of kw in s that is
// not part of a longer identifier, or -1.
func findKeyword(s string, kw string) int {
	for from := 0; from < len(s); {
		offset := strings.Index(s[from:], kw)
		if offset < 0 {
			return -1
		}
		start := from + offset
		end := start + len(kw)
		before := start == 0 || !isIdentByte(s[start-1])
		after := end == len(s) || !isIdentByte(s[end])
		if before && after {
			return start
		}
		from = start + 1
	}
	return -1
}

// cutInitializer splits a declaration into the text before the first '=' and
// the text after the last '='.
func cutInitializer(line string) (head string, init string, ok bool) {
	first := strings.IndexByte(line, '=')
	if first < 0 {
		return line, "", false
	}
	last := strings.LastIndexByte(line, '=')
	return line[:first], line[last+1:], true
}

// trimStatement removes surrounding whitespace and any trailing statement
// terminators.
func trimStatement(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), ";"))
}

func removeToken(tokens []string, token string) []string {
	if offset := slices.Index(tokens, token); offset >= 0 {
		return slices.Delete(tokens, offset, offset+1)
	}
	return tokens
}
