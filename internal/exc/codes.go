// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

const (
	CodeUnknownFatal                  = "G0000"
	CodeFileNotFound                  = "G0001"
	CodeUnsuportedFileSystemOperation = "G0002"
	CodePermissionDenied              = "G0003"
	CodeUnsupportedFileFormat         = "G0004"
	CodeEmptySource                   = "G0005"

	CodeMissingVersionDirective  = "G0100"
	CodeUnrecognizedPreprocessor = "G0101"
	CodeInvalidVersion           = "G0102"

	CodeMalformedLayoutQualifier = "G0200"

	CodeUnknownType = "G0300"

	CodeLiteralCardinalityMismatch = "G0400"
	CodeLiteralParseFailure        = "G0401"
	CodeUnimplementedLiteralForm   = "G0402"

	CodeInvalidIdentifier = "G0500"
)

const (
	CodeEOF = "_EOF_"
)

var (
	defaultNonFatal = map[string]bool{}
)

// ExtractionCodes lists every code the declaration extraction engine raises.
var ExtractionCodes = []string{
	CodeMissingVersionDirective,
	CodeUnrecognizedPreprocessor,
	CodeInvalidVersion,
	CodeMalformedLayoutQualifier,
	CodeUnknownType,
	CodeLiteralCardinalityMismatch,
	CodeLiteralParseFailure,
	CodeUnimplementedLiteralForm,
	CodeInvalidIdentifier,
}

// Stage names the part of the pipeline that produced an exception.
type Stage uint8

const (
	StageUnknown Stage = iota
	StageLoader
	StageClassification
	StagePreprocessor
	StageQualifier
	StageType
	StageLiteral
	StageIdentifier
)

func (s Stage) String() string {
	switch s {
	case StageLoader:
		return "loader"
	case StageClassification:
		return "classification"
	case StagePreprocessor:
		return "preprocessor"
	case StageQualifier:
		return "qualifier"
	case StageType:
		return "type"
	case StageLiteral:
		return "literal"
	case StageIdentifier:
		return "identifier"
	default:
		return "unknown"
	}
}

var codeStages = map[string]Stage{
	CodeFileNotFound:                  StageLoader,
	CodeUnsuportedFileSystemOperation: StageLoader,
	CodePermissionDenied:              StageLoader,
	CodeUnsupportedFileFormat:         StageLoader,
	CodeEmptySource:                   StageLoader,
	CodeEOF:                           StageLoader,
	CodeMissingVersionDirective:       StageClassification,
	CodeUnrecognizedPreprocessor:      StagePreprocessor,
	CodeInvalidVersion:                StagePreprocessor,
	CodeMalformedLayoutQualifier:      StageQualifier,
	CodeUnknownType:                   StageType,
	CodeLiteralCardinalityMismatch:    StageLiteral,
	CodeLiteralParseFailure:           StageLiteral,
	CodeUnimplementedLiteralForm:      StageLiteral,
	CodeInvalidIdentifier:             StageIdentifier,
}

// StageOf returns the stage a code belongs to.
func StageOf(code string) Stage {
	return codeStages[code]
}
