package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/GrammaTech/gtirb-go/internal/cli"
	"github.com/GrammaTech/gtirb-go/pkg/log"
)

func init() {
	setupLogging()
}

// setupLogging installs the default logger. Values already present in
// [log.EnvLevel] and [log.EnvFormat] are kept so they become the flag defaults.
func setupLogging() {
	if os.Getenv(log.EnvFormat) == "" {
		log.SetLogFormat(log.TextFormat)
	}

	if os.Getenv(log.EnvLevel) == "" {
		log.SetLogLevel("warn")
	}

	slog.SetDefault(log.NewWithCurrentConfig())
}

const (
	cmdName = "gtirb"

	shortDesc = "The GTIRB Command Line Interface (CLI)."
	longDesc  = `The GTIRB Command Line Interface (CLI).

GTIRB (GrammaTech Intermediate Representation for Binaries) is a format for
binary analysis and rewriting tools. This command reports the version of the
gtirb-go library it was built with.
`
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
