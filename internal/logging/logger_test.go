package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"reclaim/internal/config"
	"reclaim/internal/logging"
	"reclaim/internal/services"
)

func TestConsoleLoggerOmitsSourceForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message without caller", logging.String("path", "a b.mov"))

	out := buf.String()
	if strings.Contains(out, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", out)
	}
	if !strings.Contains(out, `path="a b.mov"`) {
		t.Fatalf("expected quoted attribute, got %q", out)
	}
}

func TestConsoleLoggerIncludesSourceForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message with caller")
	if !strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerPrefixesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "archive").Info("item archived")
	if !strings.Contains(buf.String(), "archive: item archived") {
		t.Fatalf("expected component prefix, got %q", buf.String())
	}
}

func TestConsoleLoggerMovesJobIntoHeadAndHidesRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.With(logging.String(logging.FieldRunID, "r-1"), logging.String(logging.FieldJob, "rename")).
		Info("item succeeded", logging.Bytes("size", 2048))

	out := buf.String()
	if !strings.Contains(out, "[rename] item succeeded") {
		t.Fatalf("expected job in line head, got %q", out)
	}
	if strings.Contains(out, "r-1") {
		t.Fatalf("run id should stay out of console output, got %q", out)
	}
	if !strings.Contains(out, "size.bytes=2048") || !strings.Contains(out, `size.human="2.0 KiB"`) {
		t.Fatalf("expected flattened size group, got %q", out)
	}
}

func TestJSONLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("json message", logging.String("k", "v"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if record["level"] != "info" || record["msg"] != "json message" || record["k"] != "v" {
		t.Fatalf("unexpected record: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := services.WithRunID(context.Background(), "run-1")
	ctx = services.WithJob(ctx, "rename")
	logging.WithContext(ctx, logger).Info("contextual log")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if record[logging.FieldRunID] != "run-1" || record[logging.FieldJob] != "rename" {
		t.Fatalf("missing context fields: %v", record)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "delete failed", "source_delete_failed",
		logging.String(logging.FieldImpact, "original remains"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if record[logging.FieldEventType] != "source_delete_failed" {
		t.Fatalf("unexpected event type: %v", record)
	}
	if record[logging.FieldImpact] != "original remains" {
		t.Fatalf("impact overwritten: %v", record)
	}
	if record[logging.FieldErrorHint] == nil {
		t.Fatalf("expected default error hint: %v", record)
	}
}

func TestNewFromConfigWritesRunLog(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	var console bytes.Buffer

	run, err := logging.NewFromConfig(&cfg, "transcode", &console, false)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	run.Logger.Debug("debug only in file")
	run.Logger.Info("visible everywhere")
	if err := run.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(run.LogPath), "reclaim-transcode-") {
		t.Fatalf("unexpected log path %q", run.LogPath)
	}
	data, err := os.ReadFile(run.LogPath)
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	if !strings.Contains(string(data), "debug only in file") {
		t.Fatalf("expected debug record in run log, got %q", data)
	}
	if strings.Contains(console.String(), "debug only in file") {
		t.Fatalf("debug record leaked to info console: %q", console.String())
	}
	if !strings.Contains(console.String(), "visible everywhere") {
		t.Fatalf("expected info record on console, got %q", console.String())
	}
}

func TestNewFromConfigVerboseForcesDebug(t *testing.T) {
	cfg := config.Default()
	var console bytes.Buffer
	run, err := logging.NewFromConfig(&cfg, "archive", &console, true)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	run.Logger.Debug("verbose line")
	if !strings.Contains(console.String(), "verbose line") {
		t.Fatalf("expected debug output with verbose, got %q", console.String())
	}
	if run.LogPath != "" {
		t.Fatalf("expected no run log without log_dir, got %q", run.LogPath)
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "reclaim-archive-old.log")
	fresh := filepath.Join(dir, "reclaim-archive-new.log")
	other := filepath.Join(dir, "notes.txt")
	for _, path := range []string{old, fresh, other} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	stale := time.Now().AddDate(0, 0, -10)
	for _, path := range []string{old, other} {
		if err := os.Chtimes(path, stale, stale); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}

	removed := logging.CleanupOldLogs(logging.NewNop(), 5, logging.RetentionTarget{Dir: dir, Pattern: "reclaim-*.log"})
	if removed != 1 {
		t.Fatalf("expected 1 file pruned, got %d", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expected stale log removed, stat err=%v", err)
	}
	for _, path := range []string{fresh, other} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s kept: %v", path, err)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	if got := logging.FormatBytes(512); got != "512 B" {
		t.Fatalf("FormatBytes(512) = %q", got)
	}
	if got := logging.FormatBytes(1536); got != "1.5 KiB" {
		t.Fatalf("FormatBytes(1536) = %q", got)
	}
}
