// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/everly/shaderparser/internal/exc"
	"github.com/everly/shaderparser/internal/shader"
)

const (
	vertexExt   = ".vert"
	fragmentExt = ".frag"
)

var knownExts = map[string]shader.Stage{
	vertexExt:   shader.StageVertex,
	fragmentExt: shader.StageFragment,
}

// StageOf reports the pipeline stage implied by the extension of path. Paths
// with any other extension resolve to shader.StageNone.
func StageOf(name string) shader.Stage {
	return knownExts[filepath.Ext(name)]
}

var _ shader.FileSystem = FileSystemMulti{}

// FileSystemMulti is an ordered set of FileSystem implementations that are
// tried in order. Note that this type does not implement write operations.
// Those must be performed on individual backends.
type FileSystemMulti []shader.FileSystem

func (r FileSystemMulti) Open(ctx context.Context, uri string) ([]shader.File, error) {
	for _, backend := range r {
		files, err := backend.Open(ctx, uri)
		if err != nil {
			continue
		}
		return files, nil
	}
	return nil, exc.New(exc.Location{URI: uri}, exc.CodeFileNotFound, fmt.Sprintf("could not open %s from any shader root", uri))
}

func (r FileSystemMulti) Write(ctx context.Context, uri string, content string) error {
	return exc.New(exc.Location{URI: uri}, exc.CodeUnsuportedFileSystemOperation, "cannot write to a composite file system")
}

// FileFilter is a filter function type used to select which files to open when
// the path being opened is a directory. Implementations should return true if
// the file should be opened, false otherwise.
type FileFilter func(ctx context.Context, fname string) bool

type FileSystemLocalOption func(*fileSystemLocal)

// WithOptionFSFactory installs a custom factory function used to generate the
// underlying file system handle. The default value is os.DirFS. The string
// value provided to the factory function is the root directory of the file
// system. All paths given to open or write are considered relative to this
// root.
func WithOptionFSFactory(v func(root string) fs.FS) FileSystemLocalOption {
	return func(rfs *fileSystemLocal) {
		rfs.fsFactory = v
	}
}

// WithOptionFileFilter installs a custom filter function used to select files
// when a target is a directory. By default only .vert and .frag files are
// selected.
func WithOptionFileFilter(v FileFilter) FileSystemLocalOption {
	return func(rfs *fileSystemLocal) {
		rfs.fileFilter = v
	}
}

type fileSystemLocal struct {
	root       string
	fsFactory  func(string) fs.FS
	fileFilter FileFilter
}

// NewFileSystemLocal creates a new FileSystem that uses the local file system.
func NewFileSystemLocal(root string, options ...FileSystemLocalOption) (shader.FileSystem, error) {
	absroot, err := filepath.Abs(root)
	if err != nil {
		return nil, exc.WrapUnknown(exc.Location{URI: root}, err)
	}
	result := &fileSystemLocal{
		root:      absroot,
		fsFactory: os.DirFS,
		fileFilter: func(ctx context.Context, fname string) bool {
			return StageOf(fname) != shader.StageNone
		},
	}
	for _, option := range options {
		option(result)
	}
	return result, nil
}

func (r *fileSystemLocal) Open(ctx context.Context, uri string) ([]shader.File, error) {
	p := r.relative(uri)
	dir := r.fsFactory(r.root)
	d, err := dir.Open(p)
	if err != nil {
		return nil, fsErr(p, err)
	}
	defer d.Close()
	stat, err := d.Stat()
	if err != nil {
		return nil, fsErr(p, err)
	}
	if !stat.IsDir() {
		return []shader.File{r.file(dir, p)}, nil
	}
	rdf, ok := d.(fs.ReadDirFile)
	if !ok {
		return nil, exc.New(exc.Location{URI: uri}, exc.CodeUnsuportedFileSystemOperation, fmt.Sprintf("cannot list directory %s", uri))
	}
	entries, err := rdf.ReadDir(0)
	if err != nil {
		return nil, fsErr(p, err)
	}
	files := make([]shader.File, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !r.fileFilter(ctx, entry.Name()) {
			continue
		}
		files = append(files, r.file(dir, path.Join(p, entry.Name())))
	}
	if len(files) < 1 {
		return nil, exc.New(exc.Location{URI: uri}, exc.CodeFileNotFound, fmt.Sprintf("found directory %s but it has no shader sources", uri))
	}
	return files, nil
}

// relative converts a URI into the un-rooted form required by fs.FS. The file
// system root itself is expressed as ".".
func (r *fileSystemLocal) relative(uri string) string {
	p := uri
	u, err := url.Parse(uri)
	if err == nil && u.Path != "" {
		p = u.Path
	}
	p = strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(p)), "/")
	if p == "" {
		return "."
	}
	return p
}

// file names the file by its absolute path so the same file reached through
// different roots or targets has one identity.
func (r *fileSystemLocal) file(dir fs.FS, p string) shader.File {
	return NewFileFN(filepath.Join(r.root, filepath.FromSlash(p)), func() (io.ReadCloser, error) {
		return dir.Open(p)
	}, StageOf(p))
}

func (r *fileSystemLocal) Write(ctx context.Context, uri string, content string) error {
	p := filepath.Join(r.root, filepath.FromSlash(r.relative(uri)))
	d := filepath.Dir(p)
	if err := os.MkdirAll(d, os.ModeDir|0o755); err != nil {
		return fsErr(d, err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		return fsErr(p, err)
	}
	return nil
}

func fsErr(p string, err error) error {
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		return exc.WrapUnknown(exc.Location{URI: p}, err)
	}
	location := exc.Location{URI: pathErr.Path}
	switch {
	case errors.Is(pathErr.Err, fs.ErrNotExist):
		return exc.Wrap(location, exc.CodeFileNotFound, pathErr)
	case errors.Is(pathErr.Err, fs.ErrPermission):
		return exc.Wrap(location, exc.CodePermissionDenied, pathErr)
	default:
		return exc.WrapUnknown(location, pathErr)
	}
}
