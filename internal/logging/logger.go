// Package logging provides the diagnostic logger. Operator-facing output
// goes through package printer; this logger carries the details behind it.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w (stderr when nil).
// Debug events are emitted only when verbose is set.
func New(w io.Writer, verbose, noColor bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything; used as the default in tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
