// Package batch orchestrates the per-document matching pipeline for a
// submitted set of resumes and tracks per-job progress.
package batch

import (
	"sync"

	"github.com/jonathan/resume-matcher/internal/types"
)

// StatusStore holds the BatchStatus entry for each job id. It is an explicit
// injected value, not process-global state. Each entry has exactly one
// writer (the orchestrator goroutine running that job's batch) and any
// number of polling readers; entries for different job ids never contend on
// anything but the map lock. Entries are overwritten by the next batch for
// the same job id, never deleted.
type StatusStore struct {
	mu       sync.RWMutex
	statuses map[string]types.BatchStatus
}

// NewStatusStore creates an empty status store
func NewStatusStore() *StatusStore {
	return &StatusStore{statuses: make(map[string]types.BatchStatus)}
}

// Get returns a snapshot of the status for a job id. A job id that never
// ran a batch reports the unknown state.
func (s *StatusStore) Get(jobID string) types.BatchStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if status, ok := s.statuses[jobID]; ok {
		return status
	}
	return types.BatchStatus{JobID: jobID, State: types.BatchUnknown}
}

// begin installs a fresh entry in the starting state
func (s *StatusStore) begin(jobID string, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[jobID] = types.BatchStatus{
		JobID: jobID,
		State: types.BatchStarting,
		Total: total,
	}
}

// setState transitions the lifecycle state, keeping counters intact
func (s *StatusStore) setState(jobID string, state types.BatchState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := s.statuses[jobID]
	status.JobID = jobID
	status.State = state
	s.statuses[jobID] = status
}

// fail marks the batch failed with a batch-level error message
func (s *StatusStore) fail(jobID, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := s.statuses[jobID]
	status.JobID = jobID
	status.State = types.BatchFailed
	status.Error = message
	s.statuses[jobID] = status
}

// recordDocument counts one attempted document. Counters only ever grow.
func (s *StatusStore) recordDocument(jobID string, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := s.statuses[jobID]
	if failed {
		status.Failed++
	} else {
		status.Processed++
	}
	s.statuses[jobID] = status
}
