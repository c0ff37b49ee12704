package logger

import (
	"os"

	"github.com/rs/zerolog"
)

type Logger = zerolog.Logger

// New returns the root logger. In the local environment output is
// pretty-printed; everywhere else it is JSON lines on stdout.
func New(env string) Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if env == "local" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return logger
}
