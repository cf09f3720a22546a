package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the diagnostics logger. Output goes to stderr so it never
// interleaves with rendered screens on stdout; level defaults to warn and
// drops to debug when verbose is set.
func New(verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}
