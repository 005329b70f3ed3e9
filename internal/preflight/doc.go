// Package preflight provides readiness checks run by "reclaim check" before
// a batch is started: access to the root and output directories, free space,
// and resolution of every external tool a job needs.
package preflight
