// Package logging carries a *slog.Logger through a context
package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/sicilica/slogging"
)

type loggerKeyType int

var loggerKey loggerKeyType

// Logger returns the logger stored in ctx, or slog.Default()
func Logger(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(loggerKey).(*slog.Logger)
	if ok {
		return l
	}
	return slog.Default()
}

// WithLogger returns a context carrying logger
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// New returns a pretty-printing logger writing to w, or a logger that
// discards everything when quiet is set
func New(w io.Writer, quiet bool) *slog.Logger {
	if quiet {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slogging.NewPrettyHandler(w, nil))
}
