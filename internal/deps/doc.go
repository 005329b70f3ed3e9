// Package deps locates the external executables jobs depend on (archivers,
// transcoders, probes).
//
// Resolution happens once per run, before any file is touched. A tool that
// cannot be found is fatal for the run and surfaces as services.ErrToolNotFound.
package deps
