// Package ffprobe provides a typed wrapper around ffprobe JSON output, used
// to confirm a transcoded file is playable before its source is removed.
package ffprobe
