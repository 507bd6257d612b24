package models

import "time"

// BatchResult aggregates the outcomes of one run, in input order.
type BatchResult struct {
	RunID       string
	CSVPath     string
	Outcomes    []Outcome
	RowErrors   []RowError
	Aborted     bool
	AbortReason string
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Succeeded returns the number of successful jobs (degraded included).
func (b *BatchResult) Succeeded() int {
	return b.count(JobSuccess)
}

// Failed returns the number of failed jobs.
func (b *BatchResult) Failed() int {
	return b.count(JobFailed)
}

// Skipped returns the number of skipped jobs.
func (b *BatchResult) Skipped() int {
	return b.count(JobSkipped)
}

// Degraded returns the number of jobs which fell back to a single stream.
func (b *BatchResult) Degraded() int {
	n := 0
	for i := range b.Outcomes {
		if b.Outcomes[i].Degraded {
			n++
		}
	}
	return n
}

// Malformed returns the number of rows which were skipped as malformed.
func (b *BatchResult) Malformed() int {
	return len(b.RowErrors)
}

// HasFailures returns true if any job failed, any row was malformed, or the run aborted.
func (b *BatchResult) HasFailures() bool {
	return b.Aborted || b.Failed() > 0 || len(b.RowErrors) > 0
}

// FailedOutcomes returns the failed outcomes in input order.
func (b *BatchResult) FailedOutcomes() []Outcome {
	var out []Outcome
	for _, o := range b.Outcomes {
		if o.Status.IsFailure() {
			out = append(out, o)
		}
	}
	return out
}

func (b *BatchResult) count(s JobStatus) int {
	n := 0
	for i := range b.Outcomes {
		if b.Outcomes[i].Status == s {
			n++
		}
	}
	return n
}
