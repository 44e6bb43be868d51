// Package fileprocessor handles the output file and the banner around a
// pipeline run.
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/trivium/internal/options"
	"github.com/retroenv/trivium/internal/pipeline"
	"github.com/retroenv/trivium/internal/vm"
)

// ProcessFile runs the program of the options and writes the listing, the
// result and the dump to the output file or stdout.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program,
	disasmOptions options.Disassembler) (vm.Result, error) {

	writer, err := createWriter(opts)
	if err != nil {
		return vm.Result{}, fmt.Errorf("creating writer: %w", err)
	}

	result, err := pipeline.New(logger).Execute(ctx, opts, disasmOptions, writer)
	if closeErr := writer.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("closing output file: %w", closeErr)
	}
	return result, err
}

func createWriter(opts options.Program) (io.WriteCloser, error) {
	if opts.Output == "" {
		return &nopCloser{os.Stdout}, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, name string, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info(name, log.String("version", buildinfo.Version(version, commit, date)))
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (nc *nopCloser) Close() error {
	return nil
}
