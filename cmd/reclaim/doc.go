// Command reclaim runs batch jobs that replace files under a root with
// verified artifacts and delete the originals.
//
//	reclaim archive   [root]  archive each top-level entry into <name>.7z
//	reclaim transcode [root]  re-encode videos with ffmpeg or drapto
//	reclaim rename    [root]  copy files into a content-addressed layout
//
// Supporting commands: deps (tool availability), check (preflight), clean
// (stale .partial copies), logs (latest run log), and config init|validate.
package main
