package versiongen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/GrammaTech/gtirb-go/pkg/gtirberrors"
	"github.com/GrammaTech/gtirb-go/pkg/version"
)

// Field names recognized in version.txt.
const (
	FieldMajor = "VERSION_MAJOR"
	FieldMinor = "VERSION_MINOR"
	FieldPatch = "VERSION_PATCH"
)

var (
	ErrMissingField   = errors.New("missing field")
	ErrDuplicateField = errors.New("duplicate field")
	ErrUnknownField   = errors.New("unknown field")
	ErrInvalidNumber  = errors.New("invalid number")
)

// Parse reads a version.txt document. Each non-blank line that is not a `#`
// comment must hold a field name and a non-negative decimal value, e.g.
//
//	VERSION_MAJOR 0
//	VERSION_MINOR 1
//	VERSION_PATCH 0
//
// All problems in the document are reported together.
func Parse(r io.Reader) (version.Identity, error) {
	var (
		merr   error
		id     version.Identity
		fields = map[string]*uint{
			FieldMajor: &id.Major,
			FieldMinor: &id.Minor,
			FieldPatch: &id.Patch,
		}
		seen = make(map[string]int, len(fields))
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) != 2 {
			merr = multierror.Append(merr,
				fmt.Errorf("line %d: %w: want \"<FIELD> <value>\", got %q", lineNo, gtirberrors.ErrInvalidFormat, line))

			continue
		}

		name, raw := parts[0], parts[1]

		dst, ok := fields[name]
		if !ok {
			merr = multierror.Append(merr, fmt.Errorf("line %d: %w: %s", lineNo, ErrUnknownField, name))

			continue
		}

		if prev, dup := seen[name]; dup {
			merr = multierror.Append(merr,
				fmt.Errorf("line %d: %w: %s already set on line %d", lineNo, ErrDuplicateField, name, prev))

			continue
		}

		seen[name] = lineNo

		n, err := strconv.ParseUint(raw, 10, strconv.IntSize)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("line %d: %w: %s %q", lineNo, ErrInvalidNumber, name, raw))

			continue
		}

		*dst = uint(n)
	}

	if err := scanner.Err(); err != nil {
		return version.Identity{}, fmt.Errorf("read version source: %w", err)
	}

	for _, name := range []string{FieldMajor, FieldMinor, FieldPatch} {
		if _, ok := seen[name]; !ok {
			merr = multierror.Append(merr, fmt.Errorf("%w: %s", ErrMissingField, name))
		}
	}

	if merr != nil {
		return version.Identity{}, merr
	}

	return id, nil
}
