package downloader_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/downloader"
	"ytbatch/internal/errs"
	"ytbatch/internal/models"
	"ytbatch/internal/testutil"
)

func TestNew_Backends(t *testing.T) {
	lib, err := downloader.New(&models.Settings{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lib.Name() != consts.BackendYtdlpExec {
		t.Errorf("default backend = %q, want %q", lib.Name(), consts.BackendYtdlpExec)
	}

	lib, err = downloader.New(&models.Settings{Backend: consts.BackendGoYtdlp})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lib.Name() != consts.BackendGoYtdlp {
		t.Errorf("backend = %q, want %q", lib.Name(), consts.BackendGoYtdlp)
	}

	if _, err := downloader.New(&models.Settings{Backend: "wget"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestExecLibrary_Available(t *testing.T) {
	bin, _ := testutil.FakeYtdlp(t)
	if err := downloader.NewExecLibrary(bin).Available(); err != nil {
		t.Errorf("expected fake yt-dlp to be available: %v", err)
	}

	err := downloader.NewExecLibrary("ytbatch-no-such-binary").Available()
	var unavailable *errs.DownloaderUnavailableError
	if !errors.As(err, &unavailable) {
		t.Errorf("expected DownloaderUnavailableError, got %v", err)
	}
}

func TestExecLibrary_Download(t *testing.T) {
	bin, _ := testutil.FakeYtdlp(t)
	dir := t.TempDir()

	path, err := downloader.NewExecLibrary(bin).Download(context.Background(), &downloader.Request{
		URL:         "https://youtu.be/abc123",
		OutputDir:   dir,
		OutputName:  "intro",
		Format:      consts.DefaultFormat,
		Merge:       true,
		MergeFormat: "mkv",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(dir, "intro.mkv"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestExecLibrary_DownloadMissingBinary(t *testing.T) {
	_, err := downloader.NewExecLibrary("ytbatch-no-such-binary").Download(context.Background(), &downloader.Request{
		URL:        "https://youtu.be/abc123",
		OutputDir:  t.TempDir(),
		OutputName: "intro",
	})
	if !errs.IsFatal(err) {
		t.Errorf("expected fatal unavailable error, got %v", err)
	}
}
