package constants

// ImportStatus is the canonical status for rows in import_records.
type ImportStatus string

// Stable values (store these exact strings in DB).
const (
	ImportStatusCompleted ImportStatus = "completed" // file fully parsed and imported
	ImportStatusFailed    ImportStatus = "failed"    // terminal failure for this file
)
