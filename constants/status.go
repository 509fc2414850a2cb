package constants

// RecordStatus is the canonical per-document outcome in a batch result.
type RecordStatus string

// Stable values (these exact strings appear in reports and logs).
const (
	RecordStatusOK       RecordStatus = "OK"        // pipeline ran, record populated (fields may still be absent)
	RecordStatusFailed   RecordStatus = "FAILED"    // decode or pipeline failure, record all-absent
	RecordStatusTooLarge RecordStatus = "TOO_LARGE" // rejected before extraction, never read
	RecordStatusSkipped  RecordStatus = "SKIPPED"   // batch stopped before this document was processed
)
