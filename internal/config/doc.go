// Package config loads, normalizes, and validates reclaim configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// RECLAIM_ROOT. The Config type centralizes every knob the jobs need so the
// archive, transcode, and rename commands agree on exclusions and tool lookup.
//
// Configuration is fixed for the duration of a run; command-line flags are
// applied once, before the run starts.
package config
