// Package logging assembles structured slog loggers and formatting helpers used
// across reclaim.
//
// It owns the console and JSON handlers, routes console output to stderr so
// command results on stdout stay machine readable, and optionally tees every
// run into a JSON log file under paths.log_dir. Context helpers tag lines
// with the run id and job name.
package logging
