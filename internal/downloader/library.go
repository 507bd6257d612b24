// Package downloader holds the Download Library capability and its backends.
package downloader

import (
	"context"
	"fmt"
	"ytbatch/internal/command/builder"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/models"
)

// Request describes one download.
type Request = builder.DownloadRequest

// Library is the external downloader capability.
type Library interface {
	// Name identifies the backend in logs.
	Name() string

	// Available returns a *errs.DownloaderUnavailableError if the backend cannot run.
	Available() error

	// Download fetches req.URL into req.OutputDir. The returned path may be
	// empty if the backend could not report it.
	Download(ctx context.Context, req *Request) (string, error)
}

// New returns the backend selected in settings.
func New(s *models.Settings) (Library, error) {
	switch s.Backend {
	case "", consts.BackendYtdlpExec:
		return NewExecLibrary(s.YtdlpPath), nil
	case consts.BackendGoYtdlp:
		return NewGoYtdlpLibrary(s.InstallDeps), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want %q or %q)", s.Backend, consts.BackendYtdlpExec, consts.BackendGoYtdlp)
	}
}
