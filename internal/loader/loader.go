// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package loader turns shader files into the cleaned line streams consumed by
// extraction. Comments, blank lines, precision statements, function prototypes
// and brace blocks are removed so that every remaining line is a directive or
// a declaration.
package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/everly/shaderparser/internal/exc"
	"github.com/everly/shaderparser/internal/iter"
	"github.com/everly/shaderparser/internal/optional"
	"github.com/everly/shaderparser/internal/shader"
)

type loader struct{}

// New returns the default Loader.
func New() shader.Loader {
	return &loader{}
}

func (self *loader) Load(ctx context.Context, f shader.File) (*shader.Source, error) {
	uri := f.Path(ctx)
	stage := f.Stage(ctx)
	if stage == shader.StageNone {
		return nil, exc.New(exc.Location{URI: uri}, exc.CodeUnsupportedFileFormat, fmt.Sprintf("cannot determine the shader stage of %s", uri))
	}
	body, err := f.Body(ctx)
	if err != nil {
		return nil, exc.WrapUnknown(exc.Location{URI: uri}, err)
	}
	lines, err := iter.Collect(ctx, Clean(iter.NewLineFileBodyCtx(ctx, body)))
	if err != nil {
		return nil, exc.WrapUnknown(exc.Location{URI: uri}, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(lines) < 1 {
		return nil, exc.New(exc.Location{URI: uri}, exc.CodeEmptySource, fmt.Sprintf("%s has no declarations", uri))
	}
	return &shader.Source{
		URI:   uri,
		Stage: stage,
		Lines: lines,
	}, nil
}

// Clean wraps a raw line iterator with every cleaning pass. Surviving lines
// keep their original numbers.
func Clean(lines shader.Iterator[shader.Line]) shader.Iterator[shader.Line] {
	var it shader.Iterator[shader.Line] = &commentStripper{iter: lines}
	it = iter.NewIteratorFilter[shader.Line](it, iter.FilterFunc[shader.Line](keepLine))
	return &blockSkipper{iter: iter.NewLookahead(it, 1)}
}

func keepLine(ctx context.Context, line shader.Line) bool {
	if line.Text == "" {
		return false
	}
	return !isPrecision(line.Text) && !isPrototype(line.Text)
}

// isPrototype reports a function declaration without a body, such as
// `float f(float x);`.
func isPrototype(text string) bool {
	if strings.HasPrefix(text, "#") || strings.Contains(text, "=") {
		return false
	}
	rest := strings.TrimSpace(strings.TrimSuffix(text, ";"))
	return strings.HasSuffix(rest, ")")
}

func isPrecision(text string) bool {
	rest, ok := strings.CutPrefix(text, "precision")
	if !ok {
		return false
	}
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// commentStripper removes line and block comments and trims surrounding
// whitespace. Block comments may span any number of lines.
type commentStripper struct {
	iter    shader.Iterator[shader.Line]
	inBlock bool
}

func (self *commentStripper) Next(ctx context.Context) optional.Optional[shader.Line] {
	next := self.iter.Next(ctx)
	if !next.IsPresent() {
		return next
	}
	line := next.Value()
	line.Text = strings.TrimSpace(self.strip(line.Text))
	return optional.Some(line)
}

func (self *commentStripper) strip(text string) string {
	var b strings.Builder
	for len(text) > 0 {
		if self.inBlock {
			_, after, found := strings.Cut(text, "*/")
			if !found {
				return b.String()
			}
			self.inBlock = false
			// A block comment separates tokens on either side of it.
			b.WriteByte(' ')
			text = after
			continue
		}
		offset := strings.Index(text, "/")
		if offset < 0 || offset == len(text)-1 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:offset])
		switch text[offset+1] {
		case '/':
			return b.String()
		case '*':
			self.inBlock = true
			text = text[offset+2:]
		default:
			b.WriteByte('/')
			text = text[offset+1:]
		}
	}
	return b.String()
}

func (self *commentStripper) Close(ctx context.Context) error {
	return self.iter.Close(ctx)
}

// blockSkipper drops every line that belongs to a brace block. A header line
// followed by a line opening with '{' is dropped along with the block.
type blockSkipper struct {
	iter  shader.Lookahead[shader.Line]
	depth int
}

func (self *blockSkipper) Next(ctx context.Context) optional.Optional[shader.Line] {
	for next := self.iter.Next(ctx); next.IsPresent(); next = self.iter.Next(ctx) {
		line := next.Value()
		opens := strings.Count(line.Text, "{")
		closes := strings.Count(line.Text, "}")
		if self.depth > 0 || opens > 0 || closes > 0 {
			self.depth = max(self.depth+opens-closes, 0)
			continue
		}
		peek := self.iter.Lookahead(ctx, 1)
		if peek.IsPresent() && strings.HasPrefix(peek.Value().Text, "{") {
			continue
		}
		return next
	}
	return optional.None[shader.Line]()
}

func (self *blockSkipper) Close(ctx context.Context) error {
	return self.iter.Close(ctx)
}
