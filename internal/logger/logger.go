// Package logger builds the process logger and carries it through contexts.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

// New returns a logger writing to w at the named level. An unknown level
// falls back to info. pretty switches to the human console format.
func New(w io.Writer, level string, pretty bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Nop discards everything. The terminal UI uses it when no log file is set.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func Set(ctx context.Context, lg zerolog.Logger) context.Context {
	return lg.WithContext(ctx)
}

// Get returns the logger carried by ctx, or a disabled one.
func Get(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
