// Package models holds the ytbatch data types.
package models

import (
	"time"
	"ytbatch/internal/errs"
)

// DownloadJob is one CSV-derived unit of work.
type DownloadJob struct {
	Line        int    // 1-based line in the CSV file
	DisplayName string // Target output name, non-empty
	SourceURL   string
}

// JobStatus is the final state of a job.
type JobStatus string

const (
	JobSuccess JobStatus = "success"
	JobFailed  JobStatus = "failed"
	JobSkipped JobStatus = "skipped"
)

// String returns the string representation of JobStatus.
func (s JobStatus) String() string {
	return string(s)
}

// IsFailure returns true if the status should fail the run.
func (s JobStatus) IsFailure() bool {
	return s == JobFailed
}

// Outcome records the result of one DownloadJob.
type Outcome struct {
	Job        DownloadJob
	Status     JobStatus
	Kind       errs.Kind
	Reason     string
	Path       string
	Degraded   bool
	Attempts   int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns the time spent on the job.
func (o *Outcome) Duration() time.Duration {
	if o.FinishedAt.IsZero() || o.StartedAt.IsZero() {
		return 0
	}
	return o.FinishedAt.Sub(o.StartedAt)
}

// RowError records a CSV row which could not become a job.
type RowError struct {
	Line   int
	Reason string
}
