package deps

import (
	"context"
	"os"
	"path/filepath"
)

// Sidecar resolves a companion tool that ships next to an already resolved
// binary (ffprobe beside ffmpeg). When no sibling exists the tool is resolved
// through the regular probe order.
func (l *Locator) Sidecar(ctx context.Context, primary Binding, tool Tool) (Binding, error) {
	if filepath.IsAbs(primary.Command) {
		dir := filepath.Dir(primary.Command)
		for _, candidate := range cleanCandidates(tool.Candidates) {
			path := filepath.Join(dir, executableName(candidate))
			info, err := os.Stat(path)
			if err != nil || !isExecutable(info) {
				continue
			}
			result, err := l.Spawner.Run(ctx, path, tool.ProbeArgs...)
			if err != nil || !result.Success() {
				continue
			}
			return Binding{Name: tool.Name, Command: path, Source: primary.Source}, nil
		}
	}
	return l.Resolve(ctx, tool, nil)
}
