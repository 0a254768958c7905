package versiongen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"io"
	"text/template"

	"github.com/GrammaTech/gtirb-go/pkg/version"
)

var ErrRender = errors.New("render")

const fileTemplate = `// Code generated by gtirb-go/cmd/gen from {{ .Source }}. DO NOT EDIT.

package {{ .Package }}

const (
	// Major is the major version.
	Major = {{ .Major }}

	// Minor is the minor version.
	Minor = {{ .Minor }}

	// Patch is the patch version.
	Patch = {{ .Patch }}

	// String is the canonical "<major>.<minor>.<patch>" rendering of
	// [Major], [Minor] and [Patch].
	String = {{ printf "%q" .String }}
)
`

var tmpl = template.Must(template.New("version").Parse(fileTemplate))

// RenderOptions controls the generated file header and package clause.
type RenderOptions struct {
	// Package is the name of the package the file belongs to.
	Package string
	// Source names the file the identity was read from.
	Source string
}

type renderData struct {
	Package string
	Source  string
	String  string
	Major   uint
	Minor   uint
	Patch   uint
}

// Render writes gofmt-ed Go source declaring the Major, Minor, Patch and
// String constants for id.
func Render(w io.Writer, opts RenderOptions, id version.Identity) error {
	if opts.Package == "" {
		opts.Package = "version"
	}

	if opts.Source == "" {
		opts.Source = "version.txt"
	}

	buf := &bytes.Buffer{}

	err := tmpl.Execute(buf, renderData{
		Package: opts.Package,
		Source:  opts.Source,
		String:  id.String(),
		Major:   id.Major,
		Minor:   id.Minor,
		Patch:   id.Patch,
	})
	if err != nil {
		return fmt.Errorf("%w: execute template: %w", ErrRender, err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("%w: format source: %w", ErrRender, err)
	}

	if _, err := w.Write(src); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	return nil
}
