package staging

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"reclaim/internal/fileutil"
	"reclaim/internal/logging"
	"reclaim/internal/walker"
)

// Partial is an in-progress copy left behind by an interrupted run.
type Partial struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// CleanStaleResult contains the outcome of a stale partial cleanup.
type CleanStaleResult struct {
	Removed []Partial
	Kept    int
	Errors  []CleanupError
}

// Bytes sums the size of every removed partial.
func (r CleanStaleResult) Bytes() int64 {
	var total int64
	for _, p := range r.Removed {
		total += p.Size
	}
	return total
}

// CleanupError pairs a path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

// FindPartials lists every partial copy under dir. Hidden directories are
// searched too; nothing else in the tree is touched.
func FindPartials(ctx context.Context, dir string) ([]Partial, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var partials []Partial
	for entry, err := range walker.Walk(dir, walker.Policy{}, walker.Options{}) {
		if err != nil {
			return partials, err
		}
		if err := ctx.Err(); err != nil {
			return partials, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name, fileutil.PartialSuffix) {
			continue
		}
		info, err := os.Lstat(entry.Path)
		if err != nil {
			continue
		}
		partials = append(partials, Partial{Path: entry.Path, Size: info.Size(), ModTime: info.ModTime()})
	}
	return partials, nil
}

// CleanStale removes partial copies under dirs that are older than maxAge.
// Younger partials may belong to a run still in progress and are kept. With
// dryRun set, candidates are reported in Removed but left on disk.
func CleanStale(ctx context.Context, dirs []string, maxAge time.Duration, dryRun bool, logger *slog.Logger) CleanStaleResult {
	result := CleanStaleResult{}
	if logger == nil {
		logger = logging.NewNop()
	}
	cutoff := time.Now().Add(-maxAge)

	for _, dir := range dirs {
		partials, err := FindPartials(ctx, dir)
		if err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dir, Error: err})
			if ctx.Err() != nil {
				return result
			}
		}
		for _, p := range partials {
			if !p.ModTime.Before(cutoff) {
				result.Kept++
				continue
			}
			if dryRun {
				result.Removed = append(result.Removed, p)
				continue
			}
			if err := os.Remove(p.Path); err != nil {
				result.Errors = append(result.Errors, CleanupError{Path: p.Path, Error: err})
				logger.Warn("failed to remove stale partial copy",
					logging.String(logging.FieldPath, p.Path),
					logging.Error(err),
					logging.String(logging.FieldEventType, "partial_cleanup_failed"),
					logging.String(logging.FieldErrorHint, "check directory permissions"),
					logging.String(logging.FieldImpact, "disk space not reclaimed"),
				)
				continue
			}
			result.Removed = append(result.Removed, p)
			logger.Info("removed stale partial copy",
				logging.String(logging.FieldPath, p.Path),
				logging.Duration("age", time.Since(p.ModTime)),
				logging.String("size", logging.FormatBytes(p.Size)),
				logging.String(logging.FieldEventType, "partial_cleanup"),
			)
		}
	}
	return result
}
