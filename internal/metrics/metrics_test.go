package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"ytbatch/internal/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveOutcome(t *testing.T) {
	m := NewMetrics()
	start := time.Now()

	m.ObserveOutcome(&models.Outcome{Status: models.JobSuccess, StartedAt: start, FinishedAt: start.Add(3 * time.Second)})
	m.ObserveOutcome(&models.Outcome{Status: models.JobFailed})
	m.ObserveOutcome(&models.Outcome{Status: models.JobFailed})
	m.IncAttempt()
	m.IncAttempt()
	m.IncMalformed()

	if got := testutil.ToFloat64(m.JobsTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("success = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.JobsTotal.WithLabelValues("failed")); got != 2 {
		t.Errorf("failed = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.AttemptsTotal); got != 2 {
		t.Errorf("attempts = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.MalformedTotal); got != 1 {
		t.Errorf("malformed = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.JobDuration); got != 1 {
		t.Errorf("duration histogram count = %d, want 1", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.ObserveOutcome(&models.Outcome{Status: models.JobSkipped})

	path := filepath.Join(t.TempDir(), "nested", "ytbatch.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `ytbatch_jobs_total{status="skipped"} 1`) {
		t.Errorf("textfile missing skipped counter:\n%s", b)
	}
}
