// Package logging adapts zerolog to the engine's Logger interface.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// ZerologAdapter wraps a zerolog.Logger behind the engine's Logger interface.
type ZerologAdapter struct {
	log zerolog.Logger
}

// New creates an adapter writing human-readable output to w. Verbose enables
// debug-level messages.
func New(w io.Writer, verbose bool) *ZerologAdapter {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
	return &ZerologAdapter{log: logger}
}

// NewWithLogger wraps an existing zerolog.Logger.
func NewWithLogger(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{log: logger}
}

func (z *ZerologAdapter) Debugf(format string, args ...any) {
	z.log.Debug().Msgf(format, args...)
}

func (z *ZerologAdapter) Infof(format string, args ...any) {
	z.log.Info().Msgf(format, args...)
}

func (z *ZerologAdapter) Warnf(format string, args ...any) {
	z.log.Warn().Msgf(format, args...)
}

func (z *ZerologAdapter) Errorf(format string, args ...any) {
	z.log.Error().Msgf(format, args...)
}
