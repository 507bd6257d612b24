package execute_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
	"ytbatch/internal/command/builder"
	"ytbatch/internal/command/execute"
	"ytbatch/internal/errs"
	"ytbatch/internal/testutil"
)

func argsFor(t *testing.T, dir, name, url string) []string {
	t.Helper()
	args, err := builder.NewVideoDLCommandBuilder(&builder.DownloadRequest{
		URL:         url,
		OutputDir:   dir,
		OutputName:  name,
		Format:      "bestvideo+bestaudio/best",
		Merge:       true,
		MergeFormat: "mp4",
	}).VideoFetchArgs()
	if err != nil {
		t.Fatalf("failed to build args: %v", err)
	}
	return args
}

func TestRunVideoDownload_Success(t *testing.T) {
	bin, logPath := testutil.FakeYtdlp(t)
	dir := t.TempDir()
	url := "https://youtu.be/abc123"

	res, err := execute.RunVideoDownload(context.Background(), bin, url, argsFor(t, dir, "intro", url))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := filepath.Join(dir, "intro.mp4")
	if res.OutputPath != want {
		t.Errorf("OutputPath = %q, want %q", res.OutputPath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected output file: %v", err)
	}
	if got := testutil.Invocations(t, logPath); len(got) != 1 || got[0] != url {
		t.Errorf("unexpected invocations: %v", got)
	}
}

func TestRunVideoDownload_Classified(t *testing.T) {
	bin, _ := testutil.FakeYtdlp(t)
	dir := t.TempDir()

	tests := []struct {
		url  string
		want errs.Kind
	}{
		{"https://example.com/unsupported", errs.KindInvalidURL},
		{"https://youtu.be/unavailable", errs.KindInvalidURL},
		{"https://youtu.be/timeout", errs.KindNetwork},
	}

	for _, tt := range tests {
		res, err := execute.RunVideoDownload(context.Background(), bin, tt.url, argsFor(t, dir, "x", tt.url))
		if got := errs.KindOf(err); got != tt.want {
			t.Errorf("%s: kind = %q, want %q (err: %v)", tt.url, got, tt.want, err)
		}
		if res == nil || res.Output == "" {
			t.Errorf("%s: expected captured output", tt.url)
		}
	}
}

func TestRunVideoDownload_MissingBinary(t *testing.T) {
	_, err := execute.RunVideoDownload(context.Background(), "ytbatch-no-such-binary", "https://youtu.be/a", []string{"--", "https://youtu.be/a"})

	var unavailable *errs.DownloaderUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected DownloaderUnavailableError, got %v", err)
	}
}

func TestRunVideoDownload_Cancelled(t *testing.T) {
	bin, _ := testutil.FakeYtdlp(t)
	url := "https://youtu.be/sleep"

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := execute.RunVideoDownload(ctx, bin, url, argsFor(t, t.TempDir(), "slow", url))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 4*time.Second {
		t.Errorf("cancellation did not stop the process promptly")
	}
}
