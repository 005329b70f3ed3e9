package logging

import (
	"context"
	"log/slog"
)

// runHandler writes every record to the console and to the run log file.
// Each sink keeps its own level, so the file can capture debug detail while
// the console stays at the configured level.
type runHandler struct {
	console slog.Handler
	file    slog.Handler
}

// newRunHandler joins the two sinks. A nil file returns console unchanged.
func newRunHandler(console, file slog.Handler) slog.Handler {
	switch {
	case console == nil && file == nil:
		return NoopHandler{}
	case file == nil:
		return console
	case console == nil:
		return file
	}
	return &runHandler{console: console, file: file}
}

func (h *runHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.console.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

// Handle returns the console error first; a broken log file must not hide
// console output.
func (h *runHandler) Handle(ctx context.Context, record slog.Record) error {
	var consoleErr, fileErr error
	if h.file.Enabled(ctx, record.Level) {
		fileErr = h.file.Handle(ctx, record.Clone())
	}
	if h.console.Enabled(ctx, record.Level) {
		consoleErr = h.console.Handle(ctx, record)
	}
	if consoleErr != nil {
		return consoleErr
	}
	return fileErr
}

func (h *runHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &runHandler{console: h.console.WithAttrs(attrs), file: h.file.WithAttrs(attrs)}
}

func (h *runHandler) WithGroup(name string) slog.Handler {
	return &runHandler{console: h.console.WithGroup(name), file: h.file.WithGroup(name)}
}
