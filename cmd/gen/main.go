package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/GrammaTech/gtirb-go/internal/versiongen"
	"github.com/GrammaTech/gtirb-go/pkg/log"
	"github.com/GrammaTech/gtirb-go/pkg/paths"
)

func main() {
	if err := newGenCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newGenCmd() *cobra.Command {
	var (
		input     string
		output    string
		pkg       string
		logLevel  string
		logFormat string
	)

	cmd := &cobra.Command{
		Use:           "gen",
		Short:         "Generate the version constants from version.txt",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cc *cobra.Command, _ []string) error {
			h, err := log.CreateHandlerWithStrings(cc.ErrOrStderr(), logLevel, logFormat)
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(h))

			if input == "" {
				input, err = paths.FindVersionFile(".")
				if err != nil {
					return fmt.Errorf("locate version source: %w", err)
				}
			}

			_, err = versiongen.Generate(versiongen.GenerateOptions{
				Input:   input,
				Output:  output,
				Package: pkg,
			})

			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path to version.txt (default: version.txt at the module root)")
	cmd.Flags().StringVarP(&output, "output", "o", "zz_generated.version.go", "Path of the generated Go file")
	cmd.Flags().StringVarP(&pkg, "package", "p", "version", "Package name of the generated Go file")
	cmd.Flags().StringVar(&logLevel, "log_level", "info", "Set the log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&logFormat, "log_format", "text", "Set the log format (text, logfmt, json)")

	if err := cmd.MarkFlagFilename("input", "txt"); err != nil {
		panic(err)
	}

	return cmd
}
