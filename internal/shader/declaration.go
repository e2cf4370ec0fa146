// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package shader

import (
	"fmt"
	"strings"
)

// DeclarationLine is either a *Preprocessor or a *Variable.
type DeclarationLine interface {
	declarationLine()
}

// Preprocessor is a declaration produced by a preprocessor directive.
type Preprocessor struct {
	Declaration PreprocessorDeclaration
}

func (*Preprocessor) declarationLine() {}

// PreprocessorDeclaration is the payload of a preprocessor directive. Version
// is the only variant.
type PreprocessorDeclaration interface {
	preprocessorDeclaration()
}

type VersionBranch uint8

const (
	VersionBranchUnknown VersionBranch = iota
	VersionBranchCore
)

func (b VersionBranch) String() string {
	switch b {
	case VersionBranchCore:
		return "core"
	default:
		return "unknown"
	}
}

// Version is a `#version <number> [branch]` directive.
type Version struct {
	Number uint16
	Branch VersionBranch
}

func (Version) preprocessorDeclaration() {}

func (v Version) String() string {
	return fmt.Sprintf("#version %d %s", v.Number, v.Branch)
}

// Variable is a top level variable declaration.
type Variable struct {
	Name string
	// Qualifiers holds the Layout qualifier first, when present, then at most
	// one of In, Out or Uniform, then Const. An empty slice means Default.
	Qualifiers []StorageQualifier
	Type       TypedValue
}

func (*Variable) declarationLine() {}

func (v *Variable) String() string {
	parts := make([]string, 0, len(v.Qualifiers)+2)
	for _, q := range v.Qualifiers {
		parts = append(parts, q.Text())
	}
	parts = append(parts, v.Type.Type().String(), v.Name)
	return strings.Join(parts, " ")
}

// Qualified reports whether the variable carries a qualifier of the same
// kind as q. Layout qualifiers match any other layout.
func (v *Variable) Qualified(q StorageQualifier) bool {
	for _, have := range v.Qualifiers {
		if have.Kind() == q.Kind() {
			return true
		}
	}
	return false
}

// Layout returns the layout qualifier of the variable, if any.
func (v *Variable) Layout() (*Layout, bool) {
	for _, q := range v.Qualifiers {
		if l, ok := q.(*Layout); ok {
			return l, true
		}
	}
	return nil, false
}

type QualifierKind uint8

const (
	QualifierKindDefault QualifierKind = iota
	QualifierKindConst
	QualifierKindIn
	QualifierKindOut
	QualifierKindUniform
	QualifierKindLayout
)

func (k QualifierKind) String() string {
	switch k {
	case QualifierKindConst:
		return "const"
	case QualifierKindIn:
		return "in"
	case QualifierKindOut:
		return "out"
	case QualifierKindUniform:
		return "uniform"
	case QualifierKindLayout:
		return "layout"
	default:
		return "default"
	}
}

// StorageQualifier is one of Default, Const, In, Out, Uniform or *Layout.
type StorageQualifier interface {
	Kind() QualifierKind
	// Text is the qualifier as it is written in source.
	Text() string
	storageQualifier()
}

type (
	Default struct{}
	Const   struct{}
	In      struct{}
	Out     struct{}
	Uniform struct{}
)

func (Default) Kind() QualifierKind { return QualifierKindDefault }
func (Const) Kind() QualifierKind   { return QualifierKindConst }
func (In) Kind() QualifierKind      { return QualifierKindIn }
func (Out) Kind() QualifierKind     { return QualifierKindOut }
func (Uniform) Kind() QualifierKind { return QualifierKindUniform }

func (Default) Text() string { return "" }
func (Const) Text() string   { return "const" }
func (In) Text() string      { return "in" }
func (Out) Text() string     { return "out" }
func (Uniform) Text() string { return "uniform" }

func (Default) storageQualifier() {}
func (Const) storageQualifier()   {}
func (In) storageQualifier()      {}
func (Out) storageQualifier()     {}
func (Uniform) storageQualifier() {}

type LayoutKey uint8

const (
	LayoutKeyLocation LayoutKey = iota
	// Recognized but never extracted.
	LayoutKeyBinding
	LayoutKeyComponent
)

func (k LayoutKey) String() string {
	switch k {
	case LayoutKeyLocation:
		return "location"
	case LayoutKeyBinding:
		return "binding"
	case LayoutKeyComponent:
		return "component"
	default:
		return fmt.Sprintf("unknown-%d", k)
	}
}

type LayoutEntry struct {
	Key   LayoutKey
	Value uint32
}

// Layout is a `layout(...)` qualifier. RawText is the qualifier exactly as it
// appeared in source, from the keyword through the closing parenthesis.
type Layout struct {
	RawText string
	Entries []LayoutEntry
}

func (*Layout) Kind() QualifierKind { return QualifierKindLayout }
func (l *Layout) Text() string      { return l.RawText }
func (*Layout) storageQualifier()   {}

// Location returns the value of the location entry, if one was extracted.
func (l *Layout) Location() (uint32, bool) {
	for _, e := range l.Entries {
		if e.Key == LayoutKeyLocation {
			return e.Value, true
		}
	}
	return 0, false
}
