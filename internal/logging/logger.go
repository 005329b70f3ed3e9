package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reclaim/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level       string
	Format      string
	Writer      io.Writer
	Development bool
}

// New constructs a slog logger using the provided options. Output defaults to
// stderr so stdout stays reserved for command results.
func New(opts Options) (*slog.Logger, error) {
	handler, err := newHandler(opts)
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}

func newHandler(opts Options) (slog.Handler, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}
	addSource := opts.Development || level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}
	switch format {
	case "json":
		return newJSONHandler(writer, levelVar, addSource), nil
	case "console":
		return newPrettyHandler(writer, levelVar, addSource), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// Run bundles a configured logger with the per-run log file it writes to.
type Run struct {
	Logger  *slog.Logger
	LogPath string
	file    *os.File
}

// Close flushes and closes the run log file, if any.
func (r *Run) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	if err := r.file.Sync(); err != nil {
		_ = r.file.Close()
		return err
	}
	return r.file.Close()
}

// NewFromConfig creates a run logger using application config. When
// paths.log_dir is set every run also writes a JSON log named after the job
// and start time, and files older than logging.retention_days are pruned.
func NewFromConfig(cfg *config.Config, job string, console io.Writer, verbose bool) (*Run, error) {
	if cfg == nil {
		logger, err := New(Options{Level: "info", Format: "console", Writer: console})
		if err != nil {
			return nil, err
		}
		return &Run{Logger: logger}, nil
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	consoleHandler, err := newHandler(Options{Level: level, Format: cfg.Logging.Format, Writer: console})
	if err != nil {
		return nil, err
	}

	logDir := strings.TrimSpace(cfg.Paths.LogDir)
	if logDir == "" {
		return &Run{Logger: slog.New(consoleHandler)}, nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	name := fmt.Sprintf("reclaim-%s-%s.log", sanitizeJob(job), time.Now().UTC().Format("20060102T150405Z"))
	logPath := filepath.Join(logDir, name)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", logPath, err)
	}
	fileLevel := new(slog.LevelVar)
	fileLevel.Set(slog.LevelDebug)
	logger := slog.New(newRunHandler(consoleHandler, newJSONHandler(file, fileLevel, false)))

	CleanupOldLogs(logger, cfg.Logging.RetentionDays, RetentionTarget{
		Dir:     logDir,
		Pattern: "reclaim-*.log",
		Exclude: []string{logPath},
	})

	return &Run{Logger: logger, LogPath: logPath, file: file}, nil
}

func sanitizeJob(job string) string {
	job = strings.ToLower(strings.TrimSpace(job))
	if job == "" {
		return "run"
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '-'
	}, job)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
