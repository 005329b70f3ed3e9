// Package staging finds and removes leftover ".partial" copies. A copy is
// written under that suffix and renamed into place once verified, so any
// file still carrying it belongs to an interrupted run.
package staging
