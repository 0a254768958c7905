// Package log builds the [log/slog] handlers used by gtirb-go commands.
//
// Handlers are backed by [github.com/charmbracelet/log] and support the text,
// logfmt and json formats.
package log
