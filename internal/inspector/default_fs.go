// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package inspector

import (
	"path/filepath"

	"github.com/everly/shaderparser/internal/fs"
	"github.com/everly/shaderparser/internal/shader"
)

// NewDefaultFS searches the shared shader directories of the platform in
// order. Roots that do not exist simply fail to open.
func NewDefaultFS(lookup func(string) (string, bool)) (shader.FileSystem, error) {
	roots := getDefaultRoots(lookup)
	f := make(fs.FileSystemMulti, 0, len(roots))
	for _, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		rf, err := fs.NewFileSystemLocal(absRoot)
		if err != nil {
			return nil, err
		}
		f = append(f, rf)
	}
	return f, nil
}
