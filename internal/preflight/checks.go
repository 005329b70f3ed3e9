package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"reclaim/internal/deps"
	"reclaim/internal/logging"
)

// CheckDirectoryAccess verifies that the directory exists and is
// readable, writable, and traversable. Sources are deleted from it, so
// read-only access is a failure.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckCreatableDirectory passes when path exists with write access or its
// nearest existing ancestor is writable, so the run can create it.
func CheckCreatableDirectory(name, path string) Result {
	if _, err := os.Stat(path); err == nil {
		return CheckDirectoryAccess(name, path)
	}
	parent := filepath.Dir(path)
	for {
		if _, err := os.Stat(parent); err == nil {
			break
		}
		next := filepath.Dir(parent)
		if next == parent {
			break
		}
		parent = next
	}
	if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckFreeSpace reports the free space on the filesystem holding path.
// Artifacts are written next to their sources before anything is removed,
// so a run needs headroom of at least minFree bytes.
func CheckFreeSpace(name, path string, minFree uint64) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	detail := fmt.Sprintf("%s free", logging.FormatBytes(int64(free)))
	if free < minFree {
		return Result{Name: name, Detail: fmt.Sprintf("%s (need at least %s)", detail, logging.FormatBytes(int64(minFree)))}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckTool resolves tool through the locator.
func CheckTool(ctx context.Context, locator *deps.Locator, tool deps.Tool, extraRoots []string) Result {
	binding, err := locator.Resolve(ctx, tool, extraRoots)
	if err != nil {
		var nf *deps.NotFoundError
		if errors.As(err, &nf) {
			return Result{Name: tool.Name, Detail: nf.Summary()}
		}
		return Result{Name: tool.Name, Detail: err.Error()}
	}
	return Result{Name: tool.Name, Passed: true, Detail: fmt.Sprintf("%s (%s)", binding.Command, binding.Source)}
}
