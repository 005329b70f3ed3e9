package staging

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"reclaim/internal/logging"
	"reclaim/internal/testsupport"
)

func age(t *testing.T, path string, d time.Duration) {
	t.Helper()
	old := time.Now().Add(-d)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("set old time: %v", err)
	}
}

func TestCleanStaleInvalidPaths(t *testing.T) {
	result := CleanStale(context.Background(), []string{"", "   ", "/nonexistent/path/12345"}, time.Hour, false, logging.NewNop())
	if len(result.Removed) != 0 || len(result.Errors) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestCleanStaleRemovesOldPartials(t *testing.T) {
	tmpDir := t.TempDir()

	oldPartial := filepath.Join(tmpDir, "nested", "abc.mp4.partial")
	testsupport.WriteContent(t, oldPartial, "half")
	age(t, oldPartial, 2*time.Hour)

	recentPartial := filepath.Join(tmpDir, "def.mp4.partial")
	testsupport.WriteContent(t, recentPartial, "in progress")

	oldRegular := filepath.Join(tmpDir, "keep.mp4")
	testsupport.WriteContent(t, oldRegular, "data")
	age(t, oldRegular, 2*time.Hour)

	result := CleanStale(context.Background(), []string{tmpDir}, time.Hour, false, logging.NewNop())

	if len(result.Removed) != 1 || result.Removed[0].Path != oldPartial {
		t.Fatalf("expected only %s removed, got %+v", oldPartial, result.Removed)
	}
	if result.Kept != 1 {
		t.Fatalf("expected recent partial kept, got %d", result.Kept)
	}
	if result.Bytes() != 4 {
		t.Fatalf("Bytes() = %d, want 4", result.Bytes())
	}
	if testsupport.Exists(t, oldPartial) {
		t.Fatal("old partial should have been removed")
	}
	if !testsupport.Exists(t, recentPartial) || !testsupport.Exists(t, oldRegular) {
		t.Fatal("recent partial and regular files must remain")
	}
}

func TestCleanStaleDryRun(t *testing.T) {
	tmpDir := t.TempDir()
	partial := filepath.Join(tmpDir, "abc.7z.partial")
	testsupport.WriteContent(t, partial, "x")
	age(t, partial, 48*time.Hour)

	result := CleanStale(context.Background(), []string{tmpDir}, time.Hour, true, logging.NewNop())
	if len(result.Removed) != 1 {
		t.Fatalf("expected one candidate, got %+v", result.Removed)
	}
	if !testsupport.Exists(t, partial) {
		t.Fatal("dry run must not delete")
	}
}

func TestFindPartialsSearchesHiddenDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	partial := filepath.Join(tmpDir, ".cache", "abc.bin.partial")
	testsupport.WriteContent(t, partial, "x")

	partials, err := FindPartials(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("FindPartials: %v", err)
	}
	if len(partials) != 1 || partials[0].Path != partial {
		t.Fatalf("unexpected partials: %+v", partials)
	}
}
