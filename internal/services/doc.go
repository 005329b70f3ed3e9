// Package services defines shared utilities consumed by the batch jobs and
// their transform runners.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and job names for logging.
//   - Structured error markers plus the Wrap helper that separate fatal
//     failures (missing tools, unreadable directories) from per-item ones.
//   - The process subpackage, a thin abstraction that makes external command
//     execution testable.
//
// Use these helpers when wiring new transform logic so error classification
// stays uniform across jobs.
package services
