// Package transform turns one walked entry into one derived artifact.
//
// Each Runner derives a target path, short-circuits when the target already
// exists, performs the transformation, and checks the artifact before
// reporting success. Runners never delete their source; that decision belongs
// to the batch orchestrator. Three runners are provided: Archive (external
// archiver), Transcode (ffmpeg or the Drapto library), and HashRename
// (content-addressed copy).
package transform
