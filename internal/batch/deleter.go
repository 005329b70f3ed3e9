package batch

import "os"

// Deleter abstracts source removal so tests can prove that unverified
// sources are never deleted.
type Deleter interface {
	Remove(path string) error
	RemoveAll(path string) error
}

// OSDeleter removes from the real filesystem.
type OSDeleter struct{}

func (OSDeleter) Remove(path string) error { return os.Remove(path) }

func (OSDeleter) RemoveAll(path string) error { return os.RemoveAll(path) }
