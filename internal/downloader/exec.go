package downloader

import (
	"context"
	"os/exec"
	"ytbatch/internal/command/builder"
	"ytbatch/internal/command/execute"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/errs"
)

// ExecLibrary runs the yt-dlp binary directly.
type ExecLibrary struct {
	Binary string
}

// NewExecLibrary returns an ExecLibrary for binary, defaulting to yt-dlp.
func NewExecLibrary(binary string) *ExecLibrary {
	if binary == "" {
		binary = consts.DefaultYtdlpBinary
	}
	return &ExecLibrary{Binary: binary}
}

// Name returns the backend name.
func (e *ExecLibrary) Name() string {
	return consts.BackendYtdlpExec
}

// Available checks the binary can be found.
func (e *ExecLibrary) Available() error {
	if _, err := exec.LookPath(e.Binary); err != nil {
		return &errs.DownloaderUnavailableError{Tool: e.Binary, Err: err}
	}
	return nil
}

// Download runs yt-dlp for the request.
func (e *ExecLibrary) Download(ctx context.Context, req *Request) (string, error) {
	args, err := builder.NewVideoDLCommandBuilder(req).VideoFetchArgs()
	if err != nil {
		return "", err
	}

	res, err := execute.RunVideoDownload(ctx, e.Binary, req.URL, args)
	if err != nil {
		return "", err
	}
	return res.OutputPath, nil
}
