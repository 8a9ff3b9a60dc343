// Package ingest discovers importable exam documents on the filesystem.
package ingest

import "context"

// FileResult is the per-file outcome of a directory scan.
type FileResult struct {
	Path     string
	Filename string
	HashHex  string
	Size     int64
	New      bool // no completed import record for (filename, hash)
	Err      string
}

// DirStats summarizes a directory scan.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
	Failed  uint32
}

// Ledger answers whether a document was already fully imported.
type Ledger interface {
	Completed(ctx context.Context, filename, hashHex string) (bool, error)
}
