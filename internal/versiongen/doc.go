// Package versiongen turns version.txt into the constants of
// [github.com/GrammaTech/gtirb-go/pkg/version].
//
// It runs at build time only, through cmd/gen and `go generate`. Nothing in
// the compiled library reads version.txt.
package versiongen
