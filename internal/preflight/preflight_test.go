package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reclaim/internal/deps"
	"reclaim/internal/jobs"
	"reclaim/internal/services/process"
	"reclaim/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed || !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("expected missing-dir failure, got %+v", result)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDirectoryAccess("test", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCreatableDirectory(t *testing.T) {
	base := t.TempDir()
	result := CheckCreatableDirectory("target", filepath.Join(base, "a", "b"))
	if !result.Passed || !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("expected creatable directory, got %+v", result)
	}
}

func TestCheckFreeSpace(t *testing.T) {
	dir := t.TempDir()
	if result := CheckFreeSpace("space", dir, 0); !result.Passed {
		t.Fatalf("expected pass with zero minimum, got %+v", result)
	}
	if result := CheckFreeSpace("space", dir, 1<<62); result.Passed {
		t.Fatalf("expected failure with huge minimum, got %+v", result)
	}
}

func TestRunAllReportsMissingTool(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	spawner := &testsupport.FakeSpawner{Handler: func(binary string, _ []string) (process.Result, error) {
		if binary == "ffprobe" {
			return process.Result{ExitCode: 1}, nil
		}
		return process.Result{}, nil
	}}
	results := RunAll(context.Background(), cfg, &deps.Locator{Spawner: spawner}, 0, jobs.KindTranscode)

	byName := map[string]Result{}
	for _, r := range results {
		byName[r.Name] = r
	}
	if !byName["Root directory"].Passed {
		t.Fatalf("expected root to pass, got %+v", byName["Root directory"])
	}
	if !byName["ffmpeg"].Passed {
		t.Fatalf("expected ffmpeg resolved, got %+v", byName["ffmpeg"])
	}
	if probe, ok := byName["ffprobe"]; !ok || probe.Passed {
		t.Fatalf("expected ffprobe failure, got %+v", probe)
	}
	if _, ok := byName["archiver"]; ok {
		t.Fatal("archive tools must not be checked for transcode")
	}
	if AllPassed(results) {
		t.Fatal("AllPassed must be false with a missing tool")
	}
}
