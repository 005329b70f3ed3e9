package walker

import (
	"errors"
	"fmt"
	"path/filepath"

	"reclaim/internal/services"
)

// Kind discriminates files from directories.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// Entry is a filesystem entry produced by Walk. It is not mutated after being
// yielded.
type Entry struct {
	Path    string
	RelPath string
	Name    string
	Kind    Kind
	Size    int64
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == KindDir
}

// Ext returns the file extension including the leading dot.
func (e Entry) Ext() string {
	if e.IsDir() {
		return ""
	}
	return filepath.Ext(e.Name)
}

// DirectoryReadError reports a directory that could not be enumerated.
type DirectoryReadError struct {
	Path string
	Err  error
}

func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("read directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryReadError) Unwrap() []error {
	return []error{services.ErrDirectoryRead, e.Err}
}

// IsDirectoryReadError reports whether err came from enumerating a directory.
func IsDirectoryReadError(err error) bool {
	var dre *DirectoryReadError
	return errors.As(err, &dre)
}
