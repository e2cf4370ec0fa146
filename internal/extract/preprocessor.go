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

const directiveVersion = "version"

// directive splits a preprocessor line into its directive name and
// arguments. ok is false when the line is not a preprocessor line.
func directive(line string) (name string, args []string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "#") {
		return "", nil, false
	}
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return "", nil, true
	}
	return fields[0], fields[1:], true
}

func parsePreprocessor(line string) (shader.PreprocessorDeclaration, error) {
	name, args, _ := directive(line)
	switch name {
	case directiveVersion:
		return parseVersion(args)
	case "":
		return nil, fail(exc.CodeUnrecognizedPreprocessor, "empty preprocessor directive")
	default:
		return nil, fail(exc.CodeUnrecognizedPreprocessor, "#%s directives are not supported", name)
	}
}

// parseVersion parses the arguments of `#version <number> [branch]`.
func parseVersion(args []string) (shader.PreprocessorDeclaration, error) {
	if len(args) == 0 {
		return nil, fail(exc.CodeInvalidVersion, "#version requires a version number")
	}
	if len(args) > 2 {
		return nil, fail(exc.CodeInvalidVersion, "unexpected %q after #version profile", strings.Join(args[2:], " "))
	}
	if !isDigits(args[0]) {
		return nil, fail(exc.CodeInvalidVersion, "%q is not a version number", args[0])
	}
	n, err := strconv.ParseUint(args[0], 10, 16)
	if err != nil {
		return nil, failWith(exc.CodeInvalidVersion, err)
	}
	version := shader.Version{Number: uint16(n), Branch: shader.VersionBranchUnknown}
	if len(args) == 2 && args[1] == "core" {
		version.Branch = shader.VersionBranchCore
	}
	return version, nil
}
