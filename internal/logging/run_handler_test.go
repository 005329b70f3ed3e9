package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewRunHandlerCollapses(t *testing.T) {
	if _, ok := newRunHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when both sinks are nil")
	}
	var buf bytes.Buffer
	console := slog.NewJSONHandler(&buf, nil)
	if h := newRunHandler(console, nil); h != console {
		t.Fatal("expected console handler returned unwrapped without a file")
	}
}

func TestRunHandlerRespectsPerSinkLevel(t *testing.T) {
	var consoleBuf, fileBuf bytes.Buffer
	console := slog.NewTextHandler(&consoleBuf, &slog.HandlerOptions{Level: slog.LevelInfo})
	file := slog.NewTextHandler(&fileBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	logger := slog.New(newRunHandler(console, file)).With("run_id", "r1")
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug enabled through the file sink")
	}
	logger.Debug("detail")
	logger.Info("summary")

	if strings.Contains(consoleBuf.String(), "detail") {
		t.Fatalf("console received debug record: %q", consoleBuf.String())
	}
	if !strings.Contains(fileBuf.String(), "detail") {
		t.Fatalf("file missed debug record: %q", fileBuf.String())
	}
	for _, out := range []string{consoleBuf.String(), fileBuf.String()} {
		if !strings.Contains(out, "summary") || !strings.Contains(out, "run_id=r1") {
			t.Fatalf("expected info record with attrs in both sinks, got %q", out)
		}
	}
}
