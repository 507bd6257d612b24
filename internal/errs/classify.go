package errs

import (
	"context"
	"errors"
	"strings"
	"ytbatch/internal/domain/regex"
)

var (
	invalidURLMarkers = []string{
		"unsupported url",
		"is not a valid url",
		"video unavailable",
		"private video",
		"this video has been removed",
		"this video is not available",
		"http error 404",
		"http error 410",
		"incomplete youtube id",
	}

	networkMarkers = []string{
		"unable to download",
		"timed out",
		"connection reset",
		"connection refused",
		"temporary failure in name resolution",
		"name or service not known",
		"network is unreachable",
		"http error 429",
		"incompleteread",
		"remote end closed connection",
	}
)

// ClassifyDownloaderOutput maps a failed downloader invocation to the taxonomy.
//
// output is the tool's combined diagnostic output, runErr the process error.
func ClassifyDownloaderOutput(url, output string, runErr error) error {
	if runErr == nil {
		return nil
	}
	if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
		return runErr
	}

	output = regex.AnsiEscapeCompile().ReplaceAllString(output, "")
	lower := strings.ToLower(output)

	for _, m := range invalidURLMarkers {
		if strings.Contains(lower, m) {
			return &InvalidURLError{URL: url, Reason: lastErrorLine(output)}
		}
	}

	if regex.HTTP5xxCompile().MatchString(lower) {
		return &NetworkError{URL: url, Err: errors.New(lastErrorLine(output))}
	}
	for _, m := range networkMarkers {
		if strings.Contains(lower, m) {
			return &NetworkError{URL: url, Err: errors.New(lastErrorLine(output))}
		}
	}

	if line := lastErrorLine(output); line != "" {
		return &DownloadError{URL: url, Err: errors.New(line)}
	}
	return &DownloadError{URL: url, Err: runErr}
}

// lastErrorLine returns the last "ERROR:" line, or the last non-empty line.
func lastErrorLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")

	for i := len(lines) - 1; i >= 0; i-- {
		l := strings.TrimSpace(lines[i])
		if strings.HasPrefix(l, "ERROR:") {
			return strings.TrimSpace(strings.TrimPrefix(l, "ERROR:"))
		}
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
