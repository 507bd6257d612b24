// Package contracts defines interfaces that decouple the application layer from storage implementations.
package contracts

import (
	"context"
	"time"
	"ytbatch/internal/models"
)

// HistoryStore records batch runs and their job outcomes.
type HistoryStore interface {
	// Run operations.
	StartRun(ctx context.Context, runID, csvPath string, startedAt time.Time) error
	FinishRun(ctx context.Context, res *models.BatchResult) error

	// Outcome operations.
	RecordOutcome(ctx context.Context, runID string, o *models.Outcome) error

	// Lookups.
	HasSucceeded(ctx context.Context, url string) (bool, error)
	ListDownloads(ctx context.Context, f models.HistoryFilter) ([]*models.DownloadRecord, error)
}
