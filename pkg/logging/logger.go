// Package logging provides structured logging for bookmap using zerolog.
// Console output is used when stderr is a terminal and JSON output otherwise.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Int("page", 2).Msg("Fetching catalog page")
//
//	ctx := logging.WithRequestID(context.Background(), id)
//	logging.Ctx(ctx).Debug().Msg("Request sent")
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	mu            sync.RWMutex
	defaultLogger = createDefaultLogger()

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

func createDefaultLogger() zerolog.Logger {
	var writer io.Writer = os.Stderr
	if stderrIsTerminal() && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	level := parseLevel(os.Getenv("LOG_LEVEL"))
	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := defaultLogger
	return &l
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	mu.Lock()
	defaultLogger = logger
	mu.Unlock()
	log.Logger = logger
}

// New creates a new JSON logger writing to w.
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).
		With().
		Timestamp().
		Logger()
}

// Debug starts a new debug level event on the default logger.
func Debug() *zerolog.Event {
	return Default().Debug()
}

// Info starts a new info level event on the default logger.
func Info() *zerolog.Event {
	return Default().Info()
}

// Warn starts a new warning level event on the default logger.
func Warn() *zerolog.Event {
	return Default().Warn()
}

// Error starts a new error level event on the default logger.
func Error() *zerolog.Event {
	return Default().Error()
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
