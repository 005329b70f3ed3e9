package deps

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"reclaim/internal/services"
	"reclaim/internal/services/process"
	"reclaim/internal/testsupport"
)

func newTestLocator(spawner process.Spawner) *Locator {
	return &Locator{Spawner: spawner}
}

func TestResolvePrefersBareCommand(t *testing.T) {
	spawner := &testsupport.FakeSpawner{}
	loc := newTestLocator(spawner)
	loc.WellKnownDirs = []string{"/opt/tools"}

	binding, err := loc.Resolve(context.Background(), Tool{Name: "7-Zip", Candidates: []string{"7zz", "7z"}, ProbeArgs: []string{"i"}}, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if binding.Command != "7zz" || binding.Source != SourceSearchPath {
		t.Fatalf("unexpected binding %#v", binding)
	}
	calls := spawner.Calls()
	if len(calls) != 1 || calls[0].String() != "7zz i" {
		t.Fatalf("expected single probe, got %v", calls)
	}
}

func TestResolveFallsBackThroughCandidates(t *testing.T) {
	spawner := &testsupport.FakeSpawner{
		Handler: func(binary string, args []string) (process.Result, error) {
			if binary == "7z" {
				return process.Result{}, nil
			}
			return process.Result{}, errors.New("exec: not found")
		},
	}
	binding, err := newTestLocator(spawner).Resolve(context.Background(), Tool{Candidates: []string{"7zz", "7z"}}, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if binding.Command != "7z" {
		t.Fatalf("expected 7z, got %q", binding.Command)
	}
	if binding.Name != "7zz" {
		t.Fatalf("expected first candidate as display name, got %q", binding.Name)
	}
}

func TestResolveRejectsNonZeroProbe(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteScript(t, dir, "ffmpeg", "exit 1")
	t.Setenv("PATH", "")
	loc := newTestLocator(process.Exec{})
	loc.WellKnownDirs = []string{dir}

	_, err := loc.Resolve(context.Background(), Tool{Name: "FFmpeg", Candidates: []string{"ffmpeg"}, ProbeArgs: []string{"-version"}}, nil)
	if !errors.Is(err, services.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
	if !services.IsFatal(err) {
		t.Fatal("expected tool lookup failure to be fatal")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || len(nf.Tried) != 2 {
		t.Fatalf("expected bare and well-known probes, got %v", err)
	}
}

func TestResolveWellKnownAndHomeOrder(t *testing.T) {
	wellKnown := t.TempDir()
	home := t.TempDir()
	homeBin := filepath.Join(home, ".local", "bin")
	testsupport.WriteScript(t, homeBin, "ffmpeg", "exit 0")

	loc := newTestLocator(process.Exec{})
	loc.WellKnownDirs = []string{wellKnown}
	loc.HomeDir = home
	loc.HomeRelDirs = []string{filepath.Join(".local", "bin")}
	t.Setenv("PATH", "")

	binding, err := loc.Resolve(context.Background(), Tool{Name: "FFmpeg", Candidates: []string{"ffmpeg"}, ProbeArgs: []string{"-version"}}, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if binding.Source != SourceHome || binding.Command != filepath.Join(homeBin, "ffmpeg") {
		t.Fatalf("unexpected binding %#v", binding)
	}

	// A well-known install wins over the home directory once present.
	testsupport.WriteScript(t, wellKnown, "ffmpeg", "exit 0")
	binding, err = loc.Resolve(context.Background(), Tool{Name: "FFmpeg", Candidates: []string{"ffmpeg"}}, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if binding.Source != SourceWellKnown {
		t.Fatalf("expected well-known source, got %#v", binding)
	}
}

func TestResolveWithoutHomeHintSkipsHomeDirs(t *testing.T) {
	spawner := &testsupport.FakeSpawner{
		Handler: func(string, []string) (process.Result, error) { return process.Result{ExitCode: 1}, nil },
	}
	loc := newTestLocator(spawner)
	loc.HomeRelDirs = []string{"bin"}

	_, err := loc.Resolve(context.Background(), Tool{Candidates: []string{"7z"}}, nil)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(nf.Tried) != 1 {
		t.Fatalf("expected only the bare command probe, got %v", nf.Tried)
	}
}

func TestResolveExtraRoots(t *testing.T) {
	extra := t.TempDir()
	path := testsupport.WriteScript(t, extra, "custom-7z", "exit 0")
	t.Setenv("PATH", "")

	binding, err := newTestLocator(process.Exec{}).Resolve(context.Background(), Tool{Candidates: []string{"custom-7z"}}, []string{"", extra})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if binding.Command != path || binding.Source != SourceExtra {
		t.Fatalf("unexpected binding %#v", binding)
	}
}

func TestResolveNoCandidates(t *testing.T) {
	_, err := newTestLocator(&testsupport.FakeSpawner{}).Resolve(context.Background(), Tool{Name: "none"}, nil)
	if !errors.Is(err, services.ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
}

func TestCheckReportsEachTool(t *testing.T) {
	binDir := t.TempDir()
	present := testsupport.WriteScript(t, binDir, "present", "exit 0")
	tools := []Tool{
		{Name: "Present", Candidates: []string{present}},
		{Name: "Missing", Candidates: []string{"clearly-not-present-binary"}, Optional: true},
	}

	results := newTestLocator(process.Exec{}).Check(context.Background(), tools, nil)
	if len(results) != len(tools) {
		t.Fatalf("expected %d results, got %d", len(tools), len(results))
	}
	if !results[0].Available || results[0].Command != present || results[0].Detail != "" {
		t.Fatalf("unexpected first status %#v", results[0])
	}
	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" || !results[1].Optional {
		t.Fatalf("unexpected missing status %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
}

func TestSidecarPrefersSibling(t *testing.T) {
	dir := t.TempDir()
	ffmpeg := testsupport.WriteScript(t, dir, "ffmpeg", "exit 0")
	ffprobe := testsupport.WriteScript(t, dir, "ffprobe", "exit 0")
	t.Setenv("PATH", "")

	loc := newTestLocator(process.Exec{})
	primary := Binding{Name: "FFmpeg", Command: ffmpeg, Source: SourceWellKnown}
	binding, err := loc.Sidecar(context.Background(), primary, Tool{Name: "FFprobe", Candidates: []string{"ffprobe"}})
	if err != nil {
		t.Fatalf("Sidecar returned error: %v", err)
	}
	if binding.Command != ffprobe {
		t.Fatalf("expected sibling ffprobe %q, got %q", ffprobe, binding.Command)
	}
}

func TestSidecarFallsBackToResolve(t *testing.T) {
	dir := t.TempDir()
	binDir := filepath.Join(dir, "bin")
	ffprobe := testsupport.WriteScript(t, binDir, "ffprobe", "exit 0")
	if err := os.MkdirAll(filepath.Join(dir, "other"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", "")

	loc := newTestLocator(process.Exec{})
	loc.WellKnownDirs = []string{binDir}
	primary := Binding{Command: filepath.Join(dir, "other", "ffmpeg")}
	binding, err := loc.Sidecar(context.Background(), primary, Tool{Candidates: []string{"ffprobe"}})
	if err != nil {
		t.Fatalf("Sidecar returned error: %v", err)
	}
	if binding.Command != ffprobe {
		t.Fatalf("expected fallback ffprobe %q, got %q", ffprobe, binding.Command)
	}
}
