// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/everly/shaderparser/internal/shader"
)

// NewFileString wraps static string content in shader.File.
func NewFileString(path string, content string, stage shader.Stage) shader.File {
	return NewFileFN(path, func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(content)), nil
	}, stage)
}

type fileIOFunc struct {
	path  string
	stage shader.Stage
	body  func() (io.ReadCloser, error)
}

// NewFileFN wraps file based content in the shader.File interface. The body
// function is called on every shader.File.Body call and must return a fresh
// io.ReadCloser each time.
func NewFileFN(path string, body func() (io.ReadCloser, error), stage shader.Stage) shader.File {
	return &fileIOFunc{
		path:  path,
		stage: stage,
		body:  body,
	}
}

func (f *fileIOFunc) Path(ctx context.Context) string {
	return f.path
}
func (f *fileIOFunc) Stage(ctx context.Context) shader.Stage {
	return f.stage
}
func (f *fileIOFunc) Body(ctx context.Context) (shader.FileBody, error) {
	rc, err := f.body()
	if err != nil {
		return nil, err
	}
	rcb := bufio.NewReader(rc)
	rcbc := &bufioReaderCloser{
		Reader: rcb,
		Closer: rc,
	}
	return bodyFromIO(rcbc), nil
}

type bufioReaderCloser struct {
	*bufio.Reader
	io.Closer
}
