package models_test

import (
	"testing"
	"time"
	"ytbatch/internal/models"
)

func TestBatchResultCounts(t *testing.T) {
	b := &models.BatchResult{
		Outcomes: []models.Outcome{
			{Job: models.DownloadJob{Line: 1, DisplayName: "a"}, Status: models.JobSuccess},
			{Job: models.DownloadJob{Line: 2, DisplayName: "b"}, Status: models.JobSuccess, Degraded: true},
			{Job: models.DownloadJob{Line: 3, DisplayName: "c"}, Status: models.JobFailed},
			{Job: models.DownloadJob{Line: 4, DisplayName: "d"}, Status: models.JobSkipped},
		},
	}

	if got := b.Succeeded(); got != 2 {
		t.Errorf("Succeeded() = %d, want 2", got)
	}
	if got := b.Failed(); got != 1 {
		t.Errorf("Failed() = %d, want 1", got)
	}
	if got := b.Skipped(); got != 1 {
		t.Errorf("Skipped() = %d, want 1", got)
	}
	if got := b.Degraded(); got != 1 {
		t.Errorf("Degraded() = %d, want 1", got)
	}
	if !b.HasFailures() {
		t.Error("expected HasFailures() with a failed job")
	}

	failed := b.FailedOutcomes()
	if len(failed) != 1 || failed[0].Job.DisplayName != "c" {
		t.Errorf("unexpected failed outcomes: %+v", failed)
	}
}

func TestBatchResultHasFailures(t *testing.T) {
	empty := &models.BatchResult{}
	if empty.HasFailures() {
		t.Error("empty batch should not report failures")
	}

	malformed := &models.BatchResult{RowErrors: []models.RowError{{Line: 2, Reason: "missing url"}}}
	if !malformed.HasFailures() {
		t.Error("malformed rows should report failures")
	}

	aborted := &models.BatchResult{Aborted: true}
	if !aborted.HasFailures() {
		t.Error("aborted run should report failures")
	}

	skippedOnly := &models.BatchResult{Outcomes: []models.Outcome{{Status: models.JobSkipped}}}
	if skippedOnly.HasFailures() {
		t.Error("skipped jobs should not report failures")
	}
}

func TestOutcomeDuration(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	o := models.Outcome{StartedAt: start, FinishedAt: start.Add(3 * time.Second)}
	if o.Duration() != 3*time.Second {
		t.Errorf("Duration() = %v, want 3s", o.Duration())
	}
	if (&models.Outcome{}).Duration() != 0 {
		t.Error("expected zero duration for unset times")
	}
}
