package csvjobs_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"ytbatch/internal/csvjobs"
	"ytbatch/internal/errs"
	"ytbatch/internal/models"
)

// collect drains a sequence into jobs, malformed row errors and a fatal error.
func collect(t *testing.T, src *csvjobs.Source) (jobs []*models.DownloadJob, malformed []*errs.MalformedRowError, fatal error) {
	t.Helper()
	for job, err := range src.Jobs() {
		if err != nil {
			var mre *errs.MalformedRowError
			if errors.As(err, &mre) {
				malformed = append(malformed, mre)
				continue
			}
			fatal = err
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, malformed, fatal
}

func writeCSV(t *testing.T, content string) *csvjobs.Source {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write CSV: %v", err)
	}
	src, err := csvjobs.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return src
}

func TestJobs_Positional(t *testing.T) {
	src := writeCSV(t, "intro,https://youtu.be/abc123\nfinale,https://youtu.be/xyz789\n")

	jobs, malformed, fatal := collect(t, src)
	if fatal != nil {
		t.Fatalf("unexpected fatal error: %v", fatal)
	}
	if len(malformed) != 0 {
		t.Fatalf("unexpected malformed rows: %v", malformed)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	want := []models.DownloadJob{
		{Line: 1, DisplayName: "intro", SourceURL: "https://youtu.be/abc123"},
		{Line: 2, DisplayName: "finale", SourceURL: "https://youtu.be/xyz789"},
	}
	for i, w := range want {
		if *jobs[i] != w {
			t.Errorf("job %d = %+v, want %+v", i, *jobs[i], w)
		}
	}
}

func TestJobs_Header(t *testing.T) {
	src := writeCSV(t, "\xEF\xBB\xBFid,URL,Title\n1,https://youtu.be/abc123,Intro\n2,https://youtu.be/xyz789,Finale\n")

	jobs, malformed, fatal := collect(t, src)
	if fatal != nil || len(malformed) != 0 {
		t.Fatalf("unexpected errors: fatal=%v malformed=%v", fatal, malformed)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].DisplayName != "Intro" || jobs[0].SourceURL != "https://youtu.be/abc123" {
		t.Errorf("unexpected first job: %+v", jobs[0])
	}
	if jobs[1].Line != 3 {
		t.Errorf("expected header on line 1, got line %d", jobs[1].Line)
	}
}

func TestJobs_HeaderMissingColumn(t *testing.T) {
	src := writeCSV(t, "title,description\nIntro,first\n")

	jobs, _, fatal := collect(t, src)
	if fatal == nil {
		t.Fatal("expected fatal error for header without URL column")
	}
	if len(jobs) != 0 {
		t.Errorf("expected no jobs, got %d", len(jobs))
	}
}

func TestJobs_MalformedRowsContinue(t *testing.T) {
	content := strings.Join([]string{
		"intro,https://youtu.be/abc123",
		"only-a-name",
		",https://youtu.be/noname",
		"nourl,",
		`bad"quote,https://youtu.be/q`,
		"# a comment",
		"",
		"finale,https://youtu.be/xyz789",
	}, "\n")
	src := writeCSV(t, content)

	jobs, malformed, fatal := collect(t, src)
	if fatal != nil {
		t.Fatalf("unexpected fatal error: %v", fatal)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 valid jobs, got %d", len(jobs))
	}
	if jobs[0].DisplayName != "intro" || jobs[1].DisplayName != "finale" {
		t.Errorf("jobs out of order: %+v, %+v", jobs[0], jobs[1])
	}
	if jobs[1].Line != 8 {
		t.Errorf("expected finale on file line 8, got %d", jobs[1].Line)
	}
	// "# a comment" has a single field, so it is malformed rather than skipped
	if len(malformed) != 5 {
		t.Fatalf("expected 5 malformed rows, got %d: %v", len(malformed), malformed)
	}
	for i, line := range []int{2, 3, 4, 5, 6} {
		if malformed[i].Line != line {
			t.Errorf("malformed[%d].Line = %d, want %d", i, malformed[i].Line, line)
		}
	}
}

func TestJobs_HashPrefixedName(t *testing.T) {
	src := writeCSV(t, "#1 Hits,https://youtu.be/a\n#2 Hits,https://youtu.be/b\n")

	jobs, malformed, fatal := collect(t, src)
	if fatal != nil || len(malformed) != 0 {
		t.Fatalf("unexpected errors: fatal=%v malformed=%v", fatal, malformed)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].DisplayName != "#1 Hits" || jobs[1].DisplayName != "#2 Hits" {
		t.Errorf("unexpected names: %q, %q", jobs[0].DisplayName, jobs[1].DisplayName)
	}
}

func TestJobs_AliasNamedFirstRowIsData(t *testing.T) {
	tests := []struct {
		name    string
		content string
		first   string
	}{
		{"title", "Title,https://youtu.be/a\nOutro,https://youtu.be/b\n", "Title"},
		{"url", "URL,https://youtu.be/a\nOutro,https://youtu.be/b\n", "URL"},
		{"filename", "filename,http://example.com/v.mp4\n", "filename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, malformed, fatal := collect(t, writeCSV(t, tt.content))
			if fatal != nil || len(malformed) != 0 {
				t.Fatalf("unexpected errors: fatal=%v malformed=%v", fatal, malformed)
			}
			if len(jobs) == 0 || jobs[0].DisplayName != tt.first || jobs[0].Line != 1 {
				t.Fatalf("expected first row %q as data on line 1, got %+v", tt.first, jobs)
			}
		})
	}
}

func TestJobs_LineNumbersFollowFile(t *testing.T) {
	content := "a,https://youtu.be/1\n\n\nb,https://youtu.be/2\n\"multi\nline\",https://youtu.be/3\nc,https://youtu.be/4\n"
	src := writeCSV(t, content)

	jobs, malformed, fatal := collect(t, src)
	if fatal != nil || len(malformed) != 0 {
		t.Fatalf("unexpected errors: fatal=%v malformed=%v", fatal, malformed)
	}
	want := []int{1, 4, 5, 7}
	if len(jobs) != len(want) {
		t.Fatalf("expected %d jobs, got %d", len(want), len(jobs))
	}
	for i, line := range want {
		if jobs[i].Line != line {
			t.Errorf("job %d (%q) line = %d, want %d", i, jobs[i].DisplayName, jobs[i].Line, line)
		}
	}
}

func TestJobs_EmptyFile(t *testing.T) {
	src := writeCSV(t, "")

	jobs, malformed, fatal := collect(t, src)
	if fatal != nil || len(malformed) != 0 || len(jobs) != 0 {
		t.Fatalf("expected empty sequence, got jobs=%d malformed=%d fatal=%v", len(jobs), len(malformed), fatal)
	}
}

func TestJobs_Restartable(t *testing.T) {
	src := writeCSV(t, "a,https://youtu.be/1\nb,https://youtu.be/2\nc,https://youtu.be/3\n")

	// Stop early on the first pass
	for job, err := range src.Jobs() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if job.DisplayName == "b" {
			break
		}
	}

	jobs, _, _ := collect(t, src)
	if len(jobs) != 3 || jobs[0].DisplayName != "a" {
		t.Fatalf("expected full sequence from the start on second pass, got %d jobs", len(jobs))
	}
}

func TestOpen_Errors(t *testing.T) {
	if _, err := csvjobs.Open(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := csvjobs.Open(t.TempDir()); err == nil {
		t.Error("expected error for directory")
	}
}

func TestJobs_FileRemovedAfterOpen(t *testing.T) {
	src := writeCSV(t, "a,https://youtu.be/1\n")
	if err := os.Remove(src.Path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	_, _, fatal := collect(t, src)
	if fatal == nil {
		t.Fatal("expected fatal error when the file disappears")
	}
}
