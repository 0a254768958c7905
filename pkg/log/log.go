package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

const (
	JSONFormat   = "json"
	TextFormat   = "text"
	LogfmtFormat = "logfmt"

	// EnvLevel and EnvFormat provide defaults for the log flags.
	EnvLevel  = "GTIRB_LOG_LEVEL"
	EnvFormat = "GTIRB_LOG_FORMAT"
)

var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidFormat = errors.New("invalid log format")
)

// NewWithCurrentConfig creates a [slog.Logger] writing to stderr, configured
// from [EnvLevel] and [EnvFormat]. Invalid values fall back to warn/text.
func NewWithCurrentConfig() *slog.Logger {
	h, err := CreateHandlerWithStrings(os.Stderr, os.Getenv(EnvLevel), os.Getenv(EnvFormat))
	if err != nil {
		h, _ = CreateHandlerWithStrings(os.Stderr, "warn", TextFormat) //nolint:errcheck // Known-good values.
	}

	return slog.New(h)
}

// CreateHandlerWithStrings creates a [slog.Handler] backed by a
// [charmlog.Logger]. Empty strings select warn and text.
func CreateHandlerWithStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := GetLevel(logLevel)
	if err != nil {
		return nil, err
	}

	formatter, err := GetFormatter(logFormat)
	if err != nil {
		return nil, err
	}

	l := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: formatter != charmlog.TextFormatter,
	})
	l.SetColorProfile(colorProfile(w))

	return l, nil
}

// GetLevel parses a level name. "warning" and "trace" are accepted as
// aliases for warn and debug.
func GetLevel(level string) (charmlog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(level))

	switch name {
	case "":
		return charmlog.WarnLevel, nil
	case "warning":
		return charmlog.WarnLevel, nil
	case "trace":
		return charmlog.DebugLevel, nil
	}

	l, err := charmlog.ParseLevel(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}

	return l, nil
}

// GetFormatter returns the formatter for a format name.
func GetFormatter(format string) (charmlog.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case TextFormat, "":
		return charmlog.TextFormatter, nil
	case LogfmtFormat:
		return charmlog.LogfmtFormatter, nil
	case JSONFormat:
		return charmlog.JSONFormatter, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}

// SetLogFormat sets the default log format for [NewWithCurrentConfig] and
// replaces the default [slog.Logger].
func SetLogFormat(logFormat string) {
	if _, err := GetFormatter(logFormat); err != nil {
		panic(err)
	}

	os.Setenv(EnvFormat, strings.ToLower(logFormat)) //nolint:errcheck,gosec // Always succeeds for valid keys.

	slog.SetDefault(NewWithCurrentConfig())
}

// SetLogLevel sets the default log level for [NewWithCurrentConfig] and
// replaces the default [slog.Logger].
func SetLogLevel(logLevel string) {
	level, err := GetLevel(logLevel)
	if err != nil {
		panic(err)
	}

	os.Setenv(EnvLevel, level.String()) //nolint:errcheck,gosec // Always succeeds for valid keys.

	slog.SetDefault(NewWithCurrentConfig())
}

func colorProfile(w io.Writer) termenv.Profile {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return termenv.Ascii
	}

	return termenv.EnvColorProfile()
}
