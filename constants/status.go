package constants

// JobStatus is the canonical status for rows in fill_job.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusRunning JobStatus = "RUNNING" // in progress
	JobStatusFilled  JobStatus = "FILLED"  // text extracted and a row produced
	JobStatusEmpty   JobStatus = "EMPTY"   // no text came out; file skipped
	JobStatusFailed  JobStatus = "FAILED"  // terminal failure
)
