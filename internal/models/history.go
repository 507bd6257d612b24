package models

import (
	"time"
	"ytbatch/internal/errs"
)

// DownloadRecord is one stored outcome from the history database.
type DownloadRecord struct {
	ID         int64
	RunID      string
	Line       int
	Name       string
	URL        string
	Status     JobStatus
	Kind       errs.Kind
	Reason     string
	Path       string
	Degraded   bool
	Attempts   int
	StartedAt  time.Time
	FinishedAt time.Time
}

// HistoryFilter narrows a history listing.
type HistoryFilter struct {
	Since  time.Time
	Status JobStatus
	Limit  int
}
