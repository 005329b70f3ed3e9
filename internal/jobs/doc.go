// Package jobs wires configuration into runnable batch jobs.
//
// It is the composition root for the archive, transcode, and rename
// commands: it builds the exclusion policy, resolves every external tool
// once before any file is touched, constructs the matching transform.Runner,
// and hands the result to a batch.Orchestrator under the per-root run lock.
package jobs
