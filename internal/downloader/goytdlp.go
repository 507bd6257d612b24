package downloader

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"
	"ytbatch/internal/command/builder"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/domain/logger"
	"ytbatch/internal/errs"

	"github.com/lrstanley/go-ytdlp"
)

// GoYtdlpLibrary drives yt-dlp through github.com/lrstanley/go-ytdlp.
type GoYtdlpLibrary struct {
	install bool

	once       sync.Once
	installErr error
}

// NewGoYtdlpLibrary returns the go-ytdlp backend.
//
// If install is true, yt-dlp and ffmpeg are fetched on first use.
func NewGoYtdlpLibrary(install bool) *GoYtdlpLibrary {
	return &GoYtdlpLibrary{install: install}
}

// Name returns the backend name.
func (g *GoYtdlpLibrary) Name() string {
	return consts.BackendGoYtdlp
}

// Available installs the tools if requested, otherwise checks yt-dlp is on PATH.
func (g *GoYtdlpLibrary) Available() error {
	if !g.install {
		if _, err := exec.LookPath(consts.DefaultYtdlpBinary); err != nil {
			return &errs.DownloaderUnavailableError{Tool: consts.DefaultYtdlpBinary, Err: err}
		}
		return nil
	}

	g.once.Do(func() {
		g.installErr = installTools(context.Background())
	})
	return g.installErr
}

// installTools installs yt-dlp and ffmpeg, converting install panics to errors.
func installTools(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &errs.DownloaderUnavailableError{
				Tool: consts.DefaultYtdlpBinary,
				Err:  fmt.Errorf("install failed: %v", r),
			}
		}
	}()

	logger.Pl.I("Installing yt-dlp and ffmpeg (if not already cached)...")
	ytdlp.MustInstall(ctx, nil)
	ytdlp.MustInstallFFmpeg(ctx, nil)
	return nil
}

// Download runs the request through go-ytdlp.
func (g *GoYtdlpLibrary) Download(ctx context.Context, req *Request) (string, error) {
	if err := g.Available(); err != nil {
		return "", err
	}

	// PrintJSON is --print-json, which still downloads and lets GetExtractedInfo see the result
	dl := ytdlp.New().
		Output(builder.NewVideoDLCommandBuilder(req).OutputTemplate()).
		NoPlaylist().
		PrintJSON()

	if req.Format != "" {
		dl = dl.Format(req.Format)
	}
	if req.Merge && req.MergeFormat != "" {
		dl = dl.MergeOutputFormat(req.MergeFormat)
	}
	if req.Overwrite {
		dl = dl.ForceOverwrites()
	} else {
		dl = dl.NoOverwrites().Continue()
	}
	if req.CookieFile != "" {
		dl = dl.Cookies(req.CookieFile)
	}
	if req.FFmpegPath != "" {
		dl = dl.FFmpegLocation(req.FFmpegPath)
	}

	dl.ProgressFunc(time.Second, func(update ytdlp.ProgressUpdate) {
		if update.TotalBytes > 0 {
			logger.Pl.D(2, "%s: %.1f%%", req.OutputName,
				float64(update.DownloadedBytes)/float64(update.TotalBytes)*100)
		}
	})

	result, err := dl.Run(ctx, req.URL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		var output string
		if result != nil {
			output = result.Stdout + "\n" + result.Stderr
		}
		return "", errs.ClassifyDownloaderOutput(req.URL, output, err)
	}

	return extractedPath(result), nil
}

// extractedPath returns the output file reported in the JSON info, or "" so the
// caller falls back to looking for <name>.<ext>.
func extractedPath(result *ytdlp.Result) string {
	info, err := result.GetExtractedInfo()
	if err != nil || len(info) == 0 {
		return ""
	}
	for _, p := range []*string{info[0].Filename, info[0].AltFilename} {
		if p == nil || *p == "" {
			continue
		}
		// Pre-merge names do not survive the merge
		if _, err := os.Stat(*p); err == nil {
			return *p
		}
	}
	return ""
}
