// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/everly/shaderparser/internal/encode"
	"github.com/everly/shaderparser/internal/exc"
	"github.com/everly/shaderparser/internal/fs"
	"github.com/everly/shaderparser/internal/inspector"
	"github.com/everly/shaderparser/internal/shader"
)

type opts struct {
	Roots     []string
	Format    string
	Output    string
	DumpLines bool
	KeepGoing bool
	Expect    string
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	op := &opts{}
	flags := pflag.NewFlagSet("shaderparser", pflag.ExitOnError)
	flags.StringSliceVar(&op.Roots, "root", []string{"."}, "Root search paths for shader sources.")
	flags.StringVar(&op.Format, "format", string(encode.FormatText), "Output format: text, json, yaml or proto.")
	flags.StringVar(&op.Output, "output", "-", "Output file or - for STDOUT.")
	flags.BoolVar(&op.DumpLines, "dump-lines", false, "Output the cleaned lines of each shader to STDERR")
	flags.BoolVar(&op.KeepGoing, "keep-going", false, "Report extraction failures of every shader instead of stopping at the first")
	flags.StringVar(&op.Expect, "expect", "", "Compare the output with FILE and print a unified diff on mismatch")
	_ = flags.Parse(os.Args[1:])
	targets := flags.Args()
	if len(targets) < 1 {
		fmt.Fprintln(os.Stderr, "usage: shaderparser [flags] TARGET...")
		flags.PrintDefaults()
		os.Exit(2)
	}

	format, err := encode.ParseFormat(op.Format)
	if err != nil {
		fail(err)
	}
	if err := checkTerminal(format, op.Output, op.Expect, isTerminal(os.Stdout)); err != nil {
		fail(err)
	}

	df, err := inspector.NewDefaultFS(os.LookupEnv)
	if err != nil {
		fail(err)
	}
	mf := make(fs.FileSystemMulti, 0, len(op.Roots)+2)
	for _, root := range op.Roots {
		rf, err := fs.NewFileSystemLocal(root)
		if err != nil {
			fail(err)
		}
		mf = append(mf, rf)
	}
	mf = append(mf, df)
	// Absolute targets outside every root.
	sysRoot, err := fs.NewFileSystemLocal(string(filepath.Separator))
	if err != nil {
		fail(err)
	}
	mf = append(mf, sysRoot)

	var nonFatal []string
	if op.KeepGoing {
		nonFatal = exc.ExtractionCodes
	}
	i, err := inspector.New(
		inspector.OptionWithLookupEnv(os.LookupEnv),
		inspector.OptionWithFS(mf),
		inspector.OptionWithExcReporter(exc.NewReporter(nonFatal)),
	)
	if err != nil {
		fail(err)
	}

	exitCode := 0
	resp, err := i.Inspect(ctx, &shader.InspectRequest{
		Files:     targets,
		DumpLines: op.DumpLines,
	})
	if err != nil {
		var me inspector.MultiException
		if !errors.As(err, &me) {
			fail(err)
		}
		for _, e := range me {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		if resp == nil || !op.KeepGoing {
			os.Exit(1)
		}
		exitCode = 1
	}

	out, err := encode.Render(format, resp)
	if err != nil {
		fail(err)
	}

	if op.Expect != "" {
		expected, err := os.ReadFile(op.Expect)
		if err != nil {
			fail(err)
		}
		diff, err := encode.Compare(op.Expect, string(expected), string(out))
		if err != nil {
			fail(err)
		}
		if diff != "" {
			fmt.Fprint(os.Stdout, diff)
			os.Exit(1)
		}
		os.Exit(exitCode)
	}

	if err := write(ctx, op.Output, out); err != nil {
		fail(err)
	}
	os.Exit(exitCode)
}

func write(ctx context.Context, output string, content []byte) error {
	if output == "-" {
		_, err := os.Stdout.Write(content)
		return err
	}
	abs, err := filepath.Abs(output)
	if err != nil {
		return err
	}
	dir, err := fs.NewFileSystemLocal(filepath.Dir(abs))
	if err != nil {
		return err
	}
	return dir.Write(ctx, filepath.Base(abs), string(content))
}

// checkTerminal refuses to print a binary format to an interactive
// terminal.
func checkTerminal(format encode.Format, output string, expect string, terminal bool) error {
	if !format.Binary() || output != "-" || expect != "" || !terminal {
		return nil
	}
	return fmt.Errorf("refusing to write %s output to a terminal, use --output FILE or redirect STDOUT", format)
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
