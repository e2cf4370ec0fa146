// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package shader

import (
	"context"
	"fmt"

	"github.com/everly/shaderparser/internal/optional"
)

type Closer interface {
	Close(ctx context.Context) error
}

type Iterator[T any] interface {
	Next(ctx context.Context) optional.Optional[T]
	Closer
}

type Lookahead[T any] interface {
	Iterator[T]
	Lookahead(ctx context.Context, n uint8) optional.Optional[T]
}

type Filter[T any] interface {
	Keep(ctx context.Context, v T) bool
}

type Reader interface {
	Read(ctx context.Context, size int32) ([]byte, error)
}

type FileBody interface {
	Reader
	Closer
}

// Stage is the pipeline stage a shader source is written for. It is resolved
// from the file extension.
type Stage uint32

const (
	StageNone Stage = iota
	StageVertex
	StageFragment
	// Reserved. No file extension maps to these yet.
	StageTessControl
	StageGeometry
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageTessControl:
		return "tess-control"
	case StageGeometry:
		return "geometry"
	default:
		return fmt.Sprintf("unknown-%d", s)
	}
}

type File interface {
	Path(ctx context.Context) string
	Stage(ctx context.Context) Stage
	Body(ctx context.Context) (FileBody, error)
}

type FileSystem interface {
	Open(ctx context.Context, uri string) ([]File, error)
	Write(ctx context.Context, uri string, content string) error
}

// Line is one cleaned source line. Number is its 1-based position in the
// original file.
type Line struct {
	Number int32
	Text   string
}

// Lines numbers the given texts from 1 in order.
func Lines(texts ...string) []Line {
	lines := make([]Line, 0, len(texts))
	for offset, text := range texts {
		lines = append(lines, Line{Number: int32(offset + 1), Text: text})
	}
	return lines
}

// Source is a loaded shader: its stage and the lines that survived cleaning.
// No line represents an executable statement.
type Source struct {
	URI   string
	Stage Stage
	Lines []Line
}

// Info is the extracted interface of one shader.
type Info struct {
	URI          string
	Stage        Stage
	Declarations []DeclarationLine
}

// Version returns the first version directive of the shader.
func (i *Info) Version() (Version, bool) {
	for _, decl := range i.Declarations {
		if p, ok := decl.(*Preprocessor); ok {
			if v, ok := p.Declaration.(Version); ok {
				return v, true
			}
		}
	}
	return Version{}, false
}

// Variables returns every variable declaration in source order.
func (i *Info) Variables() []*Variable {
	vars := make([]*Variable, 0, len(i.Declarations))
	for _, decl := range i.Declarations {
		if v, ok := decl.(*Variable); ok {
			vars = append(vars, v)
		}
	}
	return vars
}

type Loader interface {
	Load(ctx context.Context, f File) (*Source, error)
}

type Inspector interface {
	Inspect(ctx context.Context, req *InspectRequest) (*InspectResponse, error)
}

type InspectRequest struct {
	Files     []string
	DumpLines bool
}

type InspectResponse struct {
	Shaders []*Info
}
