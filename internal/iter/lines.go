// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package iter

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/everly/shaderparser/internal/optional"
	"github.com/everly/shaderparser/internal/shader"
)

// NewLineFileBodyCtx converts a FileBody into an iterator of numbered lines.
// Line terminators, including a trailing '\r', are removed. The given context
// is used for every read of the body.
func NewLineFileBodyCtx(ctx context.Context, b shader.FileBody) shader.Iterator[shader.Line] {
	rc := &fileBodyIO{
		ctx:  ctx,
		body: b,
	}
	scanner := bufio.NewScanner(rc)
	scanner.Split(bufio.ScanLines)
	return &lineBody{
		readCloser: rc,
		scanner:    scanner,
	}
}

type lineBody struct {
	readCloser io.ReadCloser
	scanner    *bufio.Scanner
	number     int32
}

func (f *lineBody) Next(ctx context.Context) optional.Optional[shader.Line] {
	if ctx.Err() != nil {
		return optional.None[shader.Line]()
	}
	ok := f.scanner.Scan()
	if !ok {
		return optional.None[shader.Line]()
	}
	f.number = f.number + 1
	text := strings.TrimSuffix(f.scanner.Text(), "\r")
	if f.number == 1 {
		text = strings.TrimPrefix(text, "\ufeff")
	}
	return optional.Some(shader.Line{Number: f.number, Text: text})
}

func (f *lineBody) Close(context.Context) error {
	_ = f.readCloser.Close()
	err := f.scanner.Err()
	if err != nil {
		return err
	}
	return nil
}

type fileBodyIO struct {
	ctx  context.Context
	body shader.FileBody
}

func (self *fileBodyIO) Read(p []byte) (int, error) {
	b, err := self.body.Read(self.ctx, int32(len(p)))
	if err != nil && !errors.Is(err, io.EOF) {
		return len(b), err
	}
	copy(p, b)
	if errors.Is(err, io.EOF) {
		return len(b), io.EOF
	}
	return len(b), nil
}

func (self *fileBodyIO) Close() error {
	return self.body.Close(self.ctx)
}
