// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"context"
	"errors"
	"io"

	"github.com/everly/shaderparser/internal/exc"
	"github.com/everly/shaderparser/internal/shader"
)

func bodyFromIO(v io.ReadCloser) shader.FileBody {
	return &ioFileBody{rc: v}
}

type ioFileBody struct {
	rc io.ReadCloser
	b  []byte
}

func (self *ioFileBody) Read(ctx context.Context, size int32) ([]byte, error) {
	if len(self.b) < int(size) {
		self.b = make([]byte, size)
	}
	count, err := self.rc.Read(self.b[:size])
	switch {
	case err == nil:
		return self.b[:count], nil
	case errors.Is(err, io.EOF):
		return self.b[:count], exc.Wrap(exc.Location{}, exc.CodeEOF, err)
	default:
		return nil, exc.WrapUnknown(exc.Location{}, err)
	}
}

func (self *ioFileBody) Close(ctx context.Context) error {
	return self.rc.Close()
}
