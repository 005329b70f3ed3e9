// Package walker enumerates a directory tree lazily, depth-first and
// pre-order, dropping entries rejected by an exclusion Policy before they are
// yielded.
//
// Excluded directories are never descended into. Symlinked directories are
// neither yielded nor followed, so symlink cycles cannot trap a walk;
// symlinked files are yielded as regular files.
package walker
