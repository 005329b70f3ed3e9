// Package logs locates and tails the per-run log files written to
// paths.log_dir. It reads with bounded memory, supports "last N lines", and
// follows a file until the caller's context is cancelled.
package logs
