package walker

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// Options tunes a walk.
type Options struct {
	// MaxDepth limits recursion; 0 is unlimited and 1 yields only the root's
	// direct children.
	MaxDepth int
}

// Walk returns a lazy sequence of entries under root. Each call re-walks from
// scratch. A directory that cannot be read yields a *DirectoryReadError; the
// walk continues with the remaining siblings if the consumer keeps iterating.
func Walk(root string, policy Policy, opts Options) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		clean := filepath.Clean(root)
		walkDir(clean, clean, 1, policy, opts, yield)
	}
}

func walkDir(root, dir string, depth int, policy Policy, opts Options, yield func(Entry, error) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return yield(Entry{Path: dir, Kind: KindDir}, &DirectoryReadError{Path: dir, Err: err})
	}
	for _, de := range entries {
		entry, ok := toEntry(root, dir, de)
		if !ok {
			continue
		}
		if policy.Excludes(entry.RelPath, entry.IsDir()) {
			continue
		}
		if !yield(entry, nil) {
			return false
		}
		if entry.IsDir() && (opts.MaxDepth == 0 || depth < opts.MaxDepth) {
			if !walkDir(root, entry.Path, depth+1, policy, opts, yield) {
				return false
			}
		}
	}
	return true
}

func toEntry(root, dir string, de fs.DirEntry) (Entry, bool) {
	path := filepath.Join(dir, de.Name())
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = de.Name()
	}
	entry := Entry{Path: path, RelPath: rel, Name: de.Name()}

	switch {
	case de.Type()&fs.ModeSymlink != 0:
		info, err := os.Stat(path)
		if err != nil || info.IsDir() || !info.Mode().IsRegular() {
			return Entry{}, false
		}
		entry.Kind = KindFile
		entry.Size = info.Size()
	case de.IsDir():
		entry.Kind = KindDir
	case de.Type().IsRegular():
		info, err := de.Info()
		if err != nil {
			return Entry{}, false
		}
		entry.Kind = KindFile
		entry.Size = info.Size()
	default:
		// sockets, devices, pipes
		return Entry{}, false
	}
	return entry, true
}
