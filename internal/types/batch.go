package types

// BatchState is the lifecycle state of a resume processing batch
type BatchState string

// Batch lifecycle states. A batch moves starting -> processing and ends in
// completed or failed; failed is reached only by a batch-level precondition
// failure, never by individual document failures.
const (
	BatchStarting   BatchState = "starting"
	BatchProcessing BatchState = "processing"
	BatchCompleted  BatchState = "completed"
	BatchFailed     BatchState = "failed"
	// BatchUnknown is reported for job ids that never ran a batch
	BatchUnknown BatchState = "unknown"
)

// BatchStatus is the per-job progress record for a batch. It is written only
// by the orchestrator running that batch and read by status queries. Counters
// are cumulative and never decrease.
type BatchStatus struct {
	JobID     string     `json:"job_id"`
	State     BatchState `json:"state"`
	Total     int        `json:"total"`
	Processed int        `json:"processed"`
	Failed    int        `json:"failed"`
	Error     string     `json:"error,omitempty"` // set only when State is failed
}
