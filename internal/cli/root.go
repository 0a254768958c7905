package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/GrammaTech/gtirb-go/pkg/log"
	"github.com/GrammaTech/gtirb-go/pkg/version"
)

var ErrLogHandlerFailed = errors.New("log handler failed")

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionString(),
	}

	cmd.SetVersionTemplate("{{ .Version }}\n")

	cmd.PersistentFlags().
		StringVar(args.logLevel, "log_level", defaultLogLevel(), "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().
		StringVar(args.logFormat, "log_format", defaultLogFormat(), "Set the log format (text, logfmt, json)")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		h, err := log.CreateHandlerWithStrings(
			cc.ErrOrStderr(),
			args.GetLogLevel(),
			args.GetLogFormat(),
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
		}

		slog.SetDefault(slog.New(h))

		slog.Debug("ready to go", "version", version.String)

		return nil
	}

	cmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		slog.Debug("shutting down")

		return nil
	}

	cmd.AddCommand(NewVersionCmd())

	return cmd
}
