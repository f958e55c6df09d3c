// Package logging builds the slog loggers used across ltask.
package logging

import (
	"context"
	"io"
	"log/slog"

	"go.trai.ch/zerr"
)

// New returns a text logger writing to w. Debug records are only emitted
// when debug is set.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Error logs err together with the metadata attached along its chain.
// Only emitted at debug level; the user-facing message is printed by the
// command itself.
func Error(ctx context.Context, logger *slog.Logger, err error) {
	if err == nil || !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	zerr.Log(ctx, logger, err)
}
