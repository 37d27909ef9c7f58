// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package model

// Export job statuses as reported by the remote export service.
const (
	ExportStatusInProgress = "inProgress"
	ExportStatusComplete   = "complete"
	ExportStatusFailed     = "failed"
)

// ExportJob is the transient state of one asynchronous bulk-export
// operation. It is created by the trigger call, mutated only by polling,
// and discarded once the resulting file has been downloaded and decoded.
type ExportJob struct {
	// ProgressID is the opaque token tracking the job remotely
	ProgressID string `json:"progressId"`

	// Status is one of the ExportStatus values
	Status string `json:"status"`

	// PercentComplete is the remote completion percentage
	PercentComplete float64 `json:"percentComplete"`

	// FileID names the downloadable archive once the job completes
	FileID string `json:"fileId,omitempty"`
}

// Done reports whether the job reached a terminal state.
func (j *ExportJob) Done() bool {
	return j.Status == ExportStatusComplete || j.Status == ExportStatusFailed
}

// ResponseTable is the decoded tabular payload of a completed export.
type ResponseTable struct {
	// Header holds the column names in file order
	Header []string

	// Rows holds the data rows in file order, each aligned with Header
	Rows [][]string
}
