package preflight

import (
	"context"

	"reclaim/internal/config"
	"reclaim/internal/deps"
	"reclaim/internal/jobs"
)

// DefaultMinFreeBytes is the headroom below which the free-space check fails.
const DefaultMinFreeBytes = 1 << 30

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check relevant to the given jobs. An empty kinds
// list checks all jobs. minFree of zero skips the free-space threshold.
func RunAll(ctx context.Context, cfg *config.Config, locator *deps.Locator, minFree uint64, kinds ...jobs.Kind) []Result {
	if cfg == nil {
		return nil
	}
	if len(kinds) == 0 {
		kinds = jobs.Kinds()
	}

	var results []Result
	root := CheckDirectoryAccess("Root directory", cfg.Paths.Root)
	results = append(results, root)
	if root.Passed {
		results = append(results, CheckFreeSpace("Free space", cfg.Paths.Root, minFree))
	}
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckCreatableDirectory("Log directory", cfg.Paths.LogDir))
	}

	seen := map[string]struct{}{}
	for _, kind := range kinds {
		if kind == jobs.KindRename {
			results = append(results, CheckCreatableDirectory("Rename target", cfg.RenameTargetDir()))
		}
		for _, tool := range jobs.RequiredTools(cfg, kind) {
			if _, ok := seen[tool.Name]; ok {
				continue
			}
			seen[tool.Name] = struct{}{}
			results = append(results, CheckTool(ctx, locator, tool, jobs.SearchDirs(cfg, kind)))
		}
	}
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
