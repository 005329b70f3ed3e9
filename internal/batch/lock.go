package batch

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// ErrRunInProgress is returned when another run holds the lock for a root.
var ErrRunInProgress = errors.New("another reclaim run is already processing this root")

// RunLock serialises runs over the same root.
type RunLock struct {
	path string
	lock *flock.Flock
}

// LockPath returns the lock file for root: $XDG_RUNTIME_DIR (or the temp
// directory) holds reclaim-<hash>.lock, keyed by the cleaned absolute root.
func LockPath(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	dir := strings.TrimSpace(os.Getenv("XDG_RUNTIME_DIR"))
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "reclaim-"+hex.EncodeToString(sum[:8])+".lock")
}

// AcquireRunLock takes the lock for root without blocking.
func AcquireRunLock(root string) (*RunLock, error) {
	path := LockPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	l := &RunLock{path: path, lock: flock.New(path)}
	ok, err := l.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrRunInProgress, path)
	}
	return l, nil
}

// Path returns the lock file location.
func (l *RunLock) Path() string {
	return l.path
}

// Release drops the lock.
func (l *RunLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
