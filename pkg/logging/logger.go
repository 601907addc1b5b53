// Package logging wraps zerolog for the catalog and generation clients.
//
// Loggers travel in the context. The CLI attaches one per command with a
// request_id and backend field, the clients add operation and model, and the
// transports emit a debug "provider request" event per HTTP round trip:
//
//	ctx = logging.WithOperation(ctx, "list_models")
//	logging.FromContext(ctx).Debug().Int("usable", n).Msg("listed models")
//
// Events never carry the API key, the request URL query or the request
// headers.
package logging

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger backs FromContext when the context carries no logger.
var defaultLogger = newDefaultLogger()

// newDefaultLogger writes to stderr, as console output on a terminal unless
// LOG_FORMAT=json, at the level named by LOG_LEVEL.
func newDefaultLogger() zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	level := ParseLevel(os.Getenv("LOG_LEVEL"))

	var logger zerolog.Logger
	if isTerminal(os.Stderr) && os.Getenv("LOG_FORMAT") != "json" {
		logger = zerolog.New(writer)
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// Default returns the process-wide fallback logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the fallback logger and zerolog's global one.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
