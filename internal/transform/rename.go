package transform

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"reclaim/internal/fileutil"
	"reclaim/internal/hashname"
	"reclaim/internal/services"
	"reclaim/internal/walker"
)

// HashRenameOptions configures the HashRename runner.
type HashRenameOptions struct {
	Namer     *hashname.Namer
	TargetDir string
	// Extensions restricts the runner to these file extensions when set.
	Extensions []string
}

// HashRename copies files into TargetDir as <fingerprint><ext>. Identical
// content converges on one target, so later duplicates are skipped.
type HashRename struct {
	namer      *hashname.Namer
	targetDir  string
	extensions map[string]struct{}
}

// NewHashRename builds a HashRename runner.
func NewHashRename(opts HashRenameOptions) *HashRename {
	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		if ext = walker.NormalizeExtension(ext); ext != "" {
			exts[ext] = struct{}{}
		}
	}
	return &HashRename{
		namer:      opts.Namer,
		targetDir:  filepath.Clean(opts.TargetDir),
		extensions: exts,
	}
}

func (h *HashRename) Name() string { return "rename" }

func (h *HashRename) Scope() Scope { return ScopeFiles }

// Accepts rejects files already inside the target directory and leftover
// partial copies.
func (h *HashRename) Accepts(entry walker.Entry) bool {
	if entry.IsDir() || strings.HasSuffix(entry.Name, fileutil.PartialSuffix) {
		return false
	}
	if within(h.targetDir, entry.Path) {
		return false
	}
	if len(h.extensions) == 0 {
		return true
	}
	_, ok := h.extensions[walker.NormalizeExtension(entry.Ext())]
	return ok
}

// Target hashes the source content.
func (h *HashRename) Target(ctx context.Context, entry walker.Entry) (string, error) {
	f, err := os.Open(entry.Path)
	if err != nil {
		return "", services.Wrap(services.ErrIO, h.Name(), "open source", entry.RelPath, err)
	}
	defer f.Close()

	name, err := h.namer.Name(&ctxReader{ctx: ctx, r: f})
	if err != nil {
		return "", services.Wrap(services.ErrIO, h.Name(), "hash source", entry.RelPath, err)
	}
	return filepath.Join(h.targetDir, name+strings.ToLower(filepath.Ext(entry.Name))), nil
}

func (h *HashRename) Apply(ctx context.Context, entry walker.Entry) Outcome {
	// An empty copy could never verify and would block later runs.
	if entry.Size == 0 {
		return Failed("", services.Wrap(services.ErrEmptyOutput, h.Name(), "copy", entry.RelPath+" is empty", nil))
	}
	target, err := h.Target(ctx, entry)
	if err != nil {
		return Failed("", err)
	}
	if out := checkTarget(h.Name(), target); out != nil {
		return *out
	}
	if err := fileutil.InstallCopy(entry.Path, target); err != nil {
		return Failed(target, services.Wrap(services.ErrIO, h.Name(), "copy", entry.RelPath, err))
	}
	return verified(target)
}

// within reports whether path is dir or lies beneath it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// ctxReader stops a long hash when the run is canceled.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

var (
	_ Runner = (*HashRename)(nil)
	_ Runner = (*Archive)(nil)
)
