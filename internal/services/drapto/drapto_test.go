package drapto

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	draptolib "github.com/five82/drapto"
)

func TestOutputPath(t *testing.T) {
	got := OutputPath("/media/in/clip.mov", "/media/in")
	if got != filepath.Join("/media/in", "clip.mkv") {
		t.Fatalf("unexpected output path %q", got)
	}
}

func TestLibraryEncodeRequiresArguments(t *testing.T) {
	lib := NewLibrary(nil)
	if _, err := lib.Encode(context.Background(), "", "/tmp"); err == nil {
		t.Fatal("expected error when input path is empty")
	}
	if _, err := lib.Encode(context.Background(), "/media/movie.mov", " "); err == nil {
		t.Fatal("expected error when output directory is empty")
	}
}

func TestLogReporterThrottlesProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rep := newLogReporter(logger)

	rep.EncodingStarted(1000)
	rep.EncodingProgress(draptolib.ProgressSnapshot{Percent: 1})
	rep.EncodingProgress(draptolib.ProgressSnapshot{Percent: 2})
	rep.EncodingProgress(draptolib.ProgressSnapshot{Percent: 9})
	rep.EncodingProgress(draptolib.ProgressSnapshot{Percent: 10})
	rep.EncodingProgress(draptolib.ProgressSnapshot{Percent: 11})
	rep.EncodingProgress(draptolib.ProgressSnapshot{Percent: 25})
	rep.EncodingProgress(draptolib.ProgressSnapshot{Percent: 26})
	rep.EncodingProgress(draptolib.ProgressSnapshot{Percent: 100})

	lines := strings.Count(buf.String(), "encoding progress")
	// 1 -> 0%, 10 -> 10%, 25 -> 20%, 100 -> 100%
	if lines != 4 {
		t.Fatalf("expected 4 progress lines, got %d:\n%s", lines, buf.String())
	}
}

func TestLogReporterWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	rep := newLogReporter(logger)

	rep.Warning("audio track missing")
	rep.OperationComplete("done")
	out := buf.String()
	if !strings.Contains(out, "audio track missing") {
		t.Fatalf("expected warning logged, got %q", out)
	}
	if strings.Contains(out, "done") {
		t.Fatalf("debug event leaked at warn level: %q", out)
	}
}
