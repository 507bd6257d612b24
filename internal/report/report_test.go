package report

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"ytbatch/internal/errs"
	"ytbatch/internal/models"
)

func TestSummary(t *testing.T) {
	res := &models.BatchResult{
		Outcomes: []models.Outcome{
			{Job: models.DownloadJob{Line: 1, DisplayName: "intro"}, Status: models.JobSuccess},
			{Job: models.DownloadJob{Line: 3, DisplayName: "broken"}, Status: models.JobFailed, Kind: errs.KindInvalidURL, Reason: "Unsupported URL"},
			{Job: models.DownloadJob{Line: 4, DisplayName: "finale"}, Status: models.JobSuccess, Degraded: true},
		},
		RowErrors: []models.RowError{{Line: 2, Reason: "empty URL"}},
	}

	var buf bytes.Buffer
	Summary(&buf, res)
	out := buf.String()

	for _, want := range []string{"broken", "Unsupported URL", "empty URL", "Malformed rows", "Degraded"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "empty URL") > strings.Index(out, "Unsupported URL") {
		t.Errorf("rows should be listed in line order:\n%s", out)
	}
	if strings.Contains(out, "aborted") {
		t.Errorf("summary should not report an abort:\n%s", out)
	}
}

func TestSummary_AllSucceeded(t *testing.T) {
	res := &models.BatchResult{
		Outcomes: []models.Outcome{{Job: models.DownloadJob{Line: 1, DisplayName: "intro"}, Status: models.JobSuccess}},
	}

	var buf bytes.Buffer
	Summary(&buf, res)
	if strings.Contains(buf.String(), "intro") {
		t.Errorf("successful jobs should not be listed:\n%s", buf.String())
	}
}

func TestSummary_Aborted(t *testing.T) {
	res := &models.BatchResult{Aborted: true, AbortReason: "yt-dlp not found"}

	var buf bytes.Buffer
	Summary(&buf, res)
	if !strings.Contains(buf.String(), "yt-dlp not found") {
		t.Errorf("summary missing abort reason:\n%s", buf.String())
	}
}

func TestHistory(t *testing.T) {
	var buf bytes.Buffer
	History(&buf, nil)
	if !strings.Contains(buf.String(), "No downloads") {
		t.Errorf("unexpected empty history output: %q", buf.String())
	}

	buf.Reset()
	History(&buf, []*models.DownloadRecord{
		{Name: "intro", URL: "https://youtu.be/abc123", Status: models.JobSuccess, Path: "downloads/intro.mp4", FinishedAt: time.Now()},
		{Name: "gone", URL: "https://youtu.be/gone", Status: models.JobFailed, Reason: "Video unavailable"},
	})
	out := buf.String()
	for _, want := range []string{"downloads/intro.mp4", "Video unavailable", "https://youtu.be/gone"} {
		if !strings.Contains(out, want) {
			t.Errorf("history missing %q:\n%s", want, out)
		}
	}
}
