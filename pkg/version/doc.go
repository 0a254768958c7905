// Package version provides the version identity of gtirb-go.
//
// The identity is a set of constants fixed at build time. [Major], [Minor]
// and [Patch] are generated from version.txt at the repository root, along
// with [String], their canonical dotted rendering. Regenerate them with
// `go generate ./pkg/version` after editing version.txt.
package version
