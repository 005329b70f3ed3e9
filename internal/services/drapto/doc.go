// Package drapto integrates the Drapto Go library as an in-process transcode
// engine.
//
// Library encodes one file per call into a target directory and forwards
// Drapto's reporter callbacks to structured logs, throttling encode progress
// to coarse steps.
package drapto
