package deps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"reclaim/internal/services"
	"reclaim/internal/services/process"
)

const (
	SourceSearchPath = "path"
	SourceWellKnown  = "well-known"
	SourceHome       = "home"
	SourceExtra      = "extra"
)

// NotFoundError reports every location probed for a tool.
type NotFoundError struct {
	Tool  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", services.ErrToolNotFound, e.Summary())
}

// Summary is a short human-readable description of the failed lookup.
func (e *NotFoundError) Summary() string {
	return fmt.Sprintf("%s not found (probed %d candidates)", e.Tool, len(e.Tried))
}

func (e *NotFoundError) Unwrap() error { return services.ErrToolNotFound }

// Locator resolves external executables by probing candidates in priority
// order: bare command on the search path, well-known install directories,
// home-relative directories, then caller-supplied roots.
type Locator struct {
	Spawner       process.Spawner
	WellKnownDirs []string
	// HomeDir is the user-profile hint. Empty means home-relative
	// directories are not probed.
	HomeDir     string
	HomeRelDirs []string
}

// NewLocator returns a Locator with platform defaults. A missing home
// directory is not an error; fewer locations are probed.
func NewLocator(spawner process.Spawner) *Locator {
	if spawner == nil {
		spawner = process.Exec{}
	}
	home, _ := os.UserHomeDir()
	return &Locator{
		Spawner:       spawner,
		WellKnownDirs: defaultWellKnownDirs(),
		HomeDir:       strings.TrimSpace(home),
		HomeRelDirs:   defaultHomeRelDirs(),
	}
}

type probe struct {
	command string
	source  string
}

// Resolve returns the first candidate whose probe invocation exits zero.
// It never touches the tree being processed; it only spawns short-lived
// version/help invocations.
func (l *Locator) Resolve(ctx context.Context, tool Tool, extraRoots []string) (Binding, error) {
	name := strings.TrimSpace(tool.Name)
	candidates := cleanCandidates(tool.Candidates)
	if name == "" && len(candidates) > 0 {
		name = candidates[0]
	}
	if len(candidates) == 0 {
		return Binding{}, &NotFoundError{Tool: name}
	}

	probes := l.plan(candidates, extraRoots)
	tried := make([]string, 0, len(probes))
	for _, p := range probes {
		if err := ctx.Err(); err != nil {
			return Binding{}, err
		}
		tried = append(tried, p.command)
		if filepath.IsAbs(p.command) {
			info, err := os.Stat(p.command)
			if err != nil || !isExecutable(info) {
				continue
			}
		}
		result, err := l.Spawner.Run(ctx, p.command, tool.ProbeArgs...)
		if err != nil || !result.Success() {
			continue
		}
		return Binding{Name: name, Command: p.command, Source: p.source}, nil
	}
	return Binding{}, &NotFoundError{Tool: name, Tried: tried}
}

func (l *Locator) plan(candidates []string, extraRoots []string) []probe {
	var probes []probe
	seen := map[string]struct{}{}
	add := func(command, source string) {
		if _, ok := seen[command]; ok {
			return
		}
		seen[command] = struct{}{}
		probes = append(probes, probe{command: command, source: source})
	}

	for _, candidate := range candidates {
		if filepath.IsAbs(candidate) {
			add(candidate, SourceExtra)
			continue
		}
		add(candidate, SourceSearchPath)
	}
	for _, dir := range l.WellKnownDirs {
		for _, candidate := range candidates {
			if filepath.IsAbs(candidate) {
				continue
			}
			add(filepath.Join(dir, executableName(candidate)), SourceWellKnown)
		}
	}
	if l.HomeDir != "" {
		for _, rel := range l.HomeRelDirs {
			for _, candidate := range candidates {
				if filepath.IsAbs(candidate) {
					continue
				}
				add(filepath.Join(l.HomeDir, rel, executableName(candidate)), SourceHome)
			}
		}
	}
	for _, root := range extraRoots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		for _, candidate := range candidates {
			if filepath.IsAbs(candidate) {
				continue
			}
			add(filepath.Join(root, executableName(candidate)), SourceExtra)
		}
	}
	return probes
}

func cleanCandidates(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func defaultWellKnownDirs() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Program Files\7-Zip`,
			`C:\Program Files (x86)\7-Zip`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\ffmpeg\bin`,
		}
	case "darwin":
		return []string{"/opt/homebrew/bin", "/usr/local/bin", "/opt/local/bin", "/usr/bin"}
	default:
		return []string{"/usr/local/bin", "/usr/bin", "/bin", "/snap/bin", "/opt/bin"}
	}
}

func defaultHomeRelDirs() []string {
	if runtime.GOOS == "windows" {
		return []string{filepath.Join("scoop", "shims"), filepath.Join("AppData", "Local", "Microsoft", "WinGet", "Links")}
	}
	return []string{filepath.Join(".local", "bin"), "bin", filepath.Join(".nix-profile", "bin")}
}

func executableName(base string) string {
	if runtime.GOOS == "windows" && filepath.Ext(base) == "" {
		return base + ".exe"
	}
	return base
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
