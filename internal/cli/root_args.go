package cli

import (
	"os"

	"github.com/GrammaTech/gtirb-go/pkg/log"
)

type RootArgs struct {
	logLevel  *string
	logFormat *string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{
		logLevel:  new(string),
		logFormat: new(string),
	}
}

func (a *RootArgs) GetLogLevel() string {
	return *a.logLevel
}

func (a *RootArgs) GetLogFormat() string {
	return *a.logFormat
}

// defaultLogLevel returns the log level from the environment, or warn.
func defaultLogLevel() string {
	if v := os.Getenv(log.EnvLevel); v != "" {
		return v
	}

	return "warn"
}

// defaultLogFormat returns the log format from the environment, or text.
func defaultLogFormat() string {
	if v := os.Getenv(log.EnvFormat); v != "" {
		return v
	}

	return log.TextFormat
}
