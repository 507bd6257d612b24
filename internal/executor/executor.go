// Package executor turns one DownloadJob into one downloaded file.
package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/domain/logger"
	"ytbatch/internal/downloader"
	"ytbatch/internal/errs"
	"ytbatch/internal/models"
	"ytbatch/internal/parsing"
)

// MergeTool reports whether the stream merge tool is present.
type MergeTool interface {
	Name() string
	IsInstalled() bool
}

// CookieSource returns a cookie file for a URL, or "" for none.
type CookieSource interface {
	CookieFileFor(ctx context.Context, rawURL string) (string, error)
}

// Result is the outcome of a successful or skipped job.
type Result struct {
	Path       string
	Degraded   bool
	Skipped    bool
	SkipReason string
}

// Executor runs jobs against a Download Library.
type Executor struct {
	settings *models.Settings
	lib      downloader.Library
	merge    MergeTool
	cookies  CookieSource
}

// New returns an Executor. cookies may be nil.
func New(s *models.Settings, lib downloader.Library, merge MergeTool, cookies CookieSource) *Executor {
	return &Executor{
		settings: s,
		lib:      lib,
		merge:    merge,
		cookies:  cookies,
	}
}

// Execute downloads one job.
//
// A missing merge tool degrades the job to a single stream rather than failing it.
func (e *Executor) Execute(ctx context.Context, job *models.DownloadJob) (*Result, error) {
	if job == nil {
		return nil, errors.New("job passed in nil")
	}

	if _, err := parsing.ValidateURL(job.SourceURL); err != nil {
		return nil, err
	}

	name := parsing.SanitizeFilename(job.DisplayName)
	if name != job.DisplayName {
		logger.Pl.D(1, "Sanitized name %q to %q", job.DisplayName, name)
	}

	if !e.settings.Overwrite {
		existing, err := findOutput(e.settings.OutputDir, name)
		if err != nil {
			return nil, err
		}
		if existing != "" {
			logger.Pl.I("[skip] %s (file exists: %s)", name, existing)
			return &Result{Path: existing, Skipped: true, SkipReason: "file exists"}, nil
		}
	}

	req := &downloader.Request{
		URL:         job.SourceURL,
		OutputDir:   e.settings.OutputDir,
		OutputName:  name,
		Format:      e.settings.Format,
		Merge:       e.settings.Merge,
		MergeFormat: e.settings.MergeFormat,
		Overwrite:   e.settings.Overwrite,
		CookieFile:  e.settings.CookieFile,
	}
	if ff := e.settings.FFmpegPath; ff != "" && ff != consts.DefaultFFmpeg {
		req.FFmpegPath = ff
	}

	res := new(Result)
	if req.Merge && e.merge != nil && !e.merge.IsInstalled() {
		mErr := &errs.MergeToolMissingError{Tool: e.merge.Name()}
		logger.Pl.W("%s: %v", name, mErr)
		req.Merge = false
		req.MergeFormat = ""
		req.Format = consts.SingleStreamFormat
		res.Degraded = true
	}

	if req.CookieFile == "" && e.cookies != nil {
		cookieFile, err := e.cookies.CookieFileFor(ctx, job.SourceURL)
		if err != nil {
			logger.Pl.W("Could not prepare cookies for %q: %v", job.SourceURL, err)
		}
		req.CookieFile = cookieFile
	}

	logger.Pl.I("[download] %s  <-  %s", name, job.SourceURL)
	path, err := e.lib.Download(ctx, req)
	if err != nil {
		return nil, err
	}

	path, err = verifyOutput(path, e.settings.OutputDir, name)
	if err != nil {
		return nil, err
	}
	res.Path = path

	return res, nil
}

// findOutput returns an existing media file named <name>.<ext> in dir, if any.
func findOutput(dir, name string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(globEscape(dir), globEscape(name)+".*"))
	if err != nil {
		return "", fmt.Errorf("failed to check for existing output %q: %w", name, err)
	}
	for _, m := range matches {
		// Only <name>.<ext>, so "intro" never matches "intro.v2.mp4" or "intro.f137.mp4"
		base := filepath.Base(m)
		if strings.TrimSuffix(base, filepath.Ext(base)) != name {
			continue
		}
		// yt-dlp partial and intermediate files
		if strings.HasSuffix(m, ".part") || strings.HasSuffix(m, ".ytdl") || strings.Contains(filepath.Base(m), ".part-") {
			continue
		}
		if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
			return m, nil
		}
	}
	return "", nil
}

// verifyOutput checks the reported (or discovered) output file exists and is non-empty.
func verifyOutput(reported, dir, name string) (string, error) {
	path := reported
	if path == "" {
		found, err := findOutput(dir, name)
		if err != nil {
			return "", err
		}
		if found == "" {
			return "", &errs.OutputMissingError{Err: fmt.Errorf("no file matching %q in %q", name+".*", dir)}
		}
		path = found
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", &errs.OutputMissingError{Path: path, Err: err}
	}
	if info.Size() == 0 {
		return "", &errs.OutputMissingError{Path: path, Err: errors.New("file is empty")}
	}
	return path, nil
}

// globEscape escapes glob metacharacters in s.
func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
