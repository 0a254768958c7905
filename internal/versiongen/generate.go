package versiongen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/GrammaTech/gtirb-go/pkg/gtirberrors"
	"github.com/GrammaTech/gtirb-go/pkg/tracing"
)

// GenerateOptions configures [Generate].
type GenerateOptions struct {
	// Tracer times each step. Defaults to debug records on the default logger.
	Tracer tracing.Tracer
	// Input is the path to version.txt.
	Input string
	// Output is the path of the Go file to write.
	Output string
	// Package is the package clause of the output file.
	Package string
}

// Generate reads opts.Input and writes the rendered constants to opts.Output.
// The output is only rewritten when its content changes. It reports whether
// the file was written.
func Generate(opts GenerateOptions) (bool, error) {
	if opts.Tracer == nil {
		opts.Tracer = tracing.NewLoggingTracer(nil)
	}

	span := opts.Tracer.StartSpan("parse")
	span.SetBaggageItem("path", opts.Input)

	//nolint:gosec // G304 not relevant for client-side generation.
	f, err := os.Open(opts.Input)
	if err != nil {
		span.Finish()

		return false, fmt.Errorf("%w: %w", gtirberrors.ErrReadFile, err)
	}
	defer f.Close() //nolint:errcheck // Read-only.

	id, err := Parse(f)
	span.Finish()

	if err != nil {
		return false, fmt.Errorf("parse %s: %w", opts.Input, err)
	}

	span = opts.Tracer.StartSpan("render")
	span.SetBaggageItem("version", id.String())

	buf := &bytes.Buffer{}

	err = Render(buf, RenderOptions{
		Package: opts.Package,
		Source:  filepath.Base(opts.Input),
	}, id)
	span.Finish()

	if err != nil {
		return false, err
	}

	//nolint:gosec // G304 not relevant for client-side generation.
	existing, err := os.ReadFile(opts.Output)
	switch {
	case err == nil && bytes.Equal(existing, buf.Bytes()):
		slog.Debug("version file up to date", "path", opts.Output, "version", id.String())

		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("%w: %w", gtirberrors.ErrReadFile, err)
	}

	//nolint:gosec // G306 generated sources are world-readable.
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("%w: %w", gtirberrors.ErrWriteFile, err)
	}

	slog.Info("wrote version file", "path", opts.Output, "version", id.String())

	return true, nil
}
