// Package builder builds yt-dlp argument lists.
package builder

import (
	"errors"
	"path/filepath"
	"ytbatch/internal/domain/command"
	"ytbatch/internal/domain/logger"
)

// DownloadRequest holds everything needed to build one yt-dlp invocation.
type DownloadRequest struct {
	URL         string
	OutputDir   string
	OutputName  string // Sanitised base name, no extension
	Format      string
	Merge       bool
	MergeFormat string
	Overwrite   bool
	CookieFile  string
	FFmpegPath  string // Passed as --ffmpeg-location when set
	Extra       []string
}

// VideoDLCommandBuilder builds yt-dlp arguments for a request.
type VideoDLCommandBuilder struct {
	Req *DownloadRequest
}

// NewVideoDLCommandBuilder returns a builder for the request.
func NewVideoDLCommandBuilder(r *DownloadRequest) *VideoDLCommandBuilder {
	return &VideoDLCommandBuilder{
		Req: r,
	}
}

// OutputTemplate returns the yt-dlp output template for the request.
//
// The extension is left to yt-dlp.
func (vb *VideoDLCommandBuilder) OutputTemplate() string {
	return filepath.Join(vb.Req.OutputDir, vb.Req.OutputName+command.OutputTemplateExt)
}

// VideoFetchArgs builds the argument list for yt-dlp.
func (vb *VideoDLCommandBuilder) VideoFetchArgs() ([]string, error) {
	if vb.Req == nil {
		return nil, errors.New("request passed in nil, returning no command")
	}
	r := vb.Req
	if r.URL == "" {
		return nil, errors.New("request has no URL")
	}
	if r.OutputName == "" {
		return nil, errors.New("request has no output name")
	}

	args := make([]string, 0, 24)
	args = append(args, command.Output, vb.OutputTemplate())

	if r.Format != "" {
		args = append(args, command.Format, r.Format)
	}
	if r.Merge && r.MergeFormat != "" {
		args = append(args, command.YtDLPOutput, r.MergeFormat)
	}

	if r.Overwrite {
		args = append(args, command.ForceOverwrites)
	} else {
		args = append(args, command.NoOverwrites, command.Continue)
	}

	args = append(args, command.NoPlaylist, command.Newline, command.NoWarnings)
	args = append(args, command.Print, command.AfterMove)

	if r.CookieFile != "" {
		args = append(args, command.CookiePath, r.CookieFile)
	}

	if r.FFmpegPath != "" {
		args = append(args, command.FFmpegLocation, r.FFmpegPath)
	}

	args = append(args, r.Extra...)

	// End option parsing so URLs starting with '-' are never read as flags
	args = append(args, command.EndOfFlags, r.URL)

	logger.Pl.D(1, "Built argument list: %v", args)
	return args, nil
}
