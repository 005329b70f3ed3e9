// Package batch drives the safe destructive loop: walk the tree, hand each
// entry to a transform.Runner, verify the artifact independently, and only
// then remove the source.
//
// Items are processed strictly one at a time in walk order. Per-item failures
// are recorded and the batch continues; only an unreadable directory aborts
// the run. Cancellation is honoured between items, never in the middle of
// one. A flock-based RunLock keeps two runs off the same root.
package batch
