package transform

import (
	"context"
	"strings"

	"reclaim/internal/fileutil"
	"reclaim/internal/services"
	"reclaim/internal/services/process"
	"reclaim/internal/walker"
)

// ArchiveOptions configures the Archive runner.
type ArchiveOptions struct {
	Spawner process.Spawner
	// Binary is the resolved archiver command.
	Binary string
	// Suffix is appended to the source path, e.g. ".7z".
	Suffix string
	// Flags are passed between the add command and the paths.
	Flags []string
}

// Archive packs each top-level entry into <name><suffix> with an external
// archiver invoked as: <binary> a <flags...> -- <target> <source>.
type Archive struct {
	spawner process.Spawner
	binary  string
	suffix  string
	flags   []string
}

// NewArchive builds an Archive runner.
func NewArchive(opts ArchiveOptions) *Archive {
	spawner := opts.Spawner
	if spawner == nil {
		spawner = process.Exec{}
	}
	suffix := strings.TrimSpace(opts.Suffix)
	if suffix == "" {
		suffix = ".7z"
	}
	return &Archive{
		spawner: spawner,
		binary:  opts.Binary,
		suffix:  suffix,
		flags:   append([]string(nil), opts.Flags...),
	}
}

func (a *Archive) Name() string { return "archive" }

func (a *Archive) Scope() Scope { return ScopeTopLevel }

// Accepts skips existing archives and interrupted copies.
func (a *Archive) Accepts(entry walker.Entry) bool {
	name := strings.ToLower(entry.Name)
	if entry.IsDir() {
		return true
	}
	return !strings.HasSuffix(name, strings.ToLower(a.suffix)) && !strings.HasSuffix(name, fileutil.PartialSuffix)
}

func (a *Archive) Target(_ context.Context, entry walker.Entry) (string, error) {
	return entry.Path + a.suffix, nil
}

func (a *Archive) Apply(ctx context.Context, entry walker.Entry) Outcome {
	target, _ := a.Target(ctx, entry)
	if out := checkTarget(a.Name(), target); out != nil {
		return *out
	}

	// 7-Zip CLI: "a" is its add command and "--" ends switch parsing.
	args := make([]string, 0, len(a.flags)+4)
	args = append(args, "a")
	args = append(args, a.flags...)
	args = append(args, "--", target, entry.Path)

	result, err := a.spawner.Run(ctx, a.binary, args...)
	if err != nil {
		return Failed(target, services.Wrap(services.ErrProcess, a.Name(), "run archiver", entry.RelPath, err))
	}
	if !result.Success() {
		return Failed(target, processFailure(a.binary, result))
	}
	return verified(target)
}

func processFailure(binary string, result process.Result) error {
	return &services.ProcessError{Command: binary, ExitCode: result.ExitCode, Stderr: result.Stderr}
}
