// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package inspector runs the loader and the extractor over a batch of shader
// files. Every file is handled in its own goroutine and the number of files
// processed at once is bounded.
package inspector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/everly/shaderparser/internal/exc"
	"github.com/everly/shaderparser/internal/extract"
	"github.com/everly/shaderparser/internal/loader"
	"github.com/everly/shaderparser/internal/shader"
	"github.com/everly/shaderparser/internal/target"
)

type Option func(i *inspector) error

func OptionWithFS(fs shader.FileSystem) Option {
	return func(i *inspector) error {
		i.FS = fs
		return nil
	}
}

func OptionWithLookupEnv(lookupEnv func(string) (string, bool)) Option {
	return func(i *inspector) error {
		i.LookupENV = lookupEnv
		return nil
	}
}

func OptionWithExcReporter(reporter exc.Reporter) Option {
	return func(i *inspector) error {
		i.Reporter = reporter
		return nil
	}
}

func OptionWithMaxConcurrency(n int) Option {
	return func(i *inspector) error {
		if n < 1 {
			return fmt.Errorf("max concurrency must be at least 1, got %d", n)
		}
		i.MaxConcurrency = n
		return nil
	}
}

func OptionWithLoader(l shader.Loader) Option {
	return func(i *inspector) error {
		i.Loader = l
		return nil
	}
}

// OptionWithDumpWriter sets where cleaned lines are written when a request
// asks for them. The default is os.Stderr.
func OptionWithDumpWriter(w io.Writer) Option {
	return func(i *inspector) error {
		i.Dump = w
		return nil
	}
}

func New(opts ...Option) (shader.Inspector, error) {
	i := &inspector{}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	if i.LookupENV == nil {
		i.LookupENV = os.LookupEnv
	}
	if i.FS == nil {
		dfs, err := NewDefaultFS(i.LookupENV)
		if err != nil {
			return nil, err
		}
		i.FS = dfs
	}
	if i.MaxConcurrency == 0 {
		i.MaxConcurrency = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}
	if i.Semaphore == nil {
		i.Semaphore = newSemaphore(i.MaxConcurrency)
	}
	if i.Reporter == nil {
		i.Reporter = exc.NewReporter(nil)
	}
	if i.Loader == nil {
		i.Loader = loader.New()
	}
	if i.Dump == nil {
		i.Dump = os.Stderr
	}
	return i, nil
}

type inspector struct {
	LookupENV      func(string) (string, bool)
	FS             shader.FileSystem
	MaxConcurrency int
	Semaphore      *semaphore
	Reporter       exc.Reporter
	Loader         shader.Loader
	Dump           io.Writer
	dumpLock       sync.Mutex
}

func (self *inspector) Inspect(ctx context.Context, req *shader.InspectRequest) (*shader.InspectResponse, error) {
	files := make([]shader.File, 0, len(req.Files))
	for _, f := range req.Files {
		uri := target.Normalize(f)
		in, err := self.FS.Open(ctx, uri)
		if err != nil {
			if fatal := self.Reporter.Report(asException(exc.Location{URI: uri}, err)); fatal != nil {
				return nil, fatal
			}
			continue
		}
		files = append(files, in...)
	}

	loaded := &sync.Map{}
	results := make(chan fileResult, len(files))
	for _, file := range files {
		go func(file shader.File) {
			info, err := self.inspectFile(ctx, file, loaded, req.DumpLines)
			results <- fileResult{info, err}
		}(file)
	}

	shaders := make([]*shader.Info, 0, len(files))
	for x := 0; x < len(files); x = x + 1 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case result := <-results:
			if result.err != nil {
				return nil, result.err
			}
			if result.info != nil {
				shaders = append(shaders, result.info)
			}
		}
	}
	sort.Slice(shaders, func(a, b int) bool {
		return shaders[a].URI < shaders[b].URI
	})

	resp := &shader.InspectResponse{Shaders: shaders}
	caught := self.Reporter.Reported()
	if len(caught) > 0 {
		return resp, MultiException(caught)
	}
	return resp, nil
}

// inspectFile returns a nil Info when the file was already handled or when
// its exception was reported as non-fatal.
func (self *inspector) inspectFile(ctx context.Context, file shader.File, loaded *sync.Map, dumpLines bool) (*shader.Info, error) {
	self.Semaphore.Lock()
	defer self.Semaphore.Unlock()
	uri := file.Path(ctx)
	if _, ok := loaded.LoadOrStore(uri, true); ok {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src, err := self.Loader.Load(ctx, file)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, self.report(exc.Location{URI: uri}, err)
	}
	if dumpLines {
		self.dump(src)
	}
	info, err := extract.Shader(src)
	if err != nil {
		return nil, self.report(exc.Location{URI: uri}, err)
	}
	return info, nil
}

// report records err. It returns nil unless the exception is fatal.
func (self *inspector) report(location exc.Location, err error) error {
	if fatal := self.Reporter.Report(asException(location, err)); fatal != nil {
		return fatal
	}
	return nil
}

func (self *inspector) dump(src *shader.Source) {
	var b strings.Builder
	for _, line := range src.Lines {
		fmt.Fprintf(&b, "%s:%d\t%s\n", src.URI, line.Number, line.Text)
	}
	self.dumpLock.Lock()
	defer self.dumpLock.Unlock()
	_, _ = io.WriteString(self.Dump, b.String())
}

func asException(location exc.Location, err error) exc.Exception {
	var e exc.Exception
	if errors.As(err, &e) {
		return e
	}
	return exc.WrapUnknown(location, err)
}

type fileResult struct {
	info *shader.Info
	err  error
}

// MultiException is every exception reported during one Inspect call.
type MultiException []exc.Exception

func (self MultiException) Error() string {
	var b strings.Builder
	for _, err := range self[:len(self)-1] {
		b.WriteString(err.Error())
		b.WriteString("; ")
	}
	b.WriteString(self[len(self)-1].Error())
	return b.String()
}
