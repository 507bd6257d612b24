// Package errs holds the download error taxonomy.
//
// Every per-job failure is one of the typed errors below. Callers should use
// KindOf, IsRetryable and IsFatal rather than matching on messages.
package errs

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	KindNone                  Kind = ""
	KindMalformedRow          Kind = "malformed_row"
	KindInvalidURL            Kind = "invalid_url"
	KindNetwork               Kind = "network"
	KindDownloaderUnavailable Kind = "downloader_unavailable"
	KindMergeToolMissing      Kind = "merge_tool_missing"
	KindDownloadFailed        Kind = "download_failed"
	KindOutputMissing         Kind = "output_missing"
	KindCanceled              Kind = "canceled"
)

// MalformedRowError reports a CSV row which could not become a job.
type MalformedRowError struct {
	Line   int
	Reason string
	Err    error
}

func (e *MalformedRowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed row %d: %s: %v", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed row %d: %s", e.Line, e.Reason)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

// InvalidURLError is permanent and never retried.
type InvalidURLError struct {
	URL    string
	Reason string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid URL %q: %s", e.URL, e.Reason)
}

// NetworkError is transient and may be retried.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error downloading %q: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DownloaderUnavailableError aborts the whole run.
type DownloaderUnavailableError struct {
	Tool string
	Err  error
}

func (e *DownloaderUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("downloader %q unavailable: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("downloader %q unavailable", e.Tool)
}

func (e *DownloaderUnavailableError) Unwrap() error { return e.Err }

// MergeToolMissingError is recoverable: the job degrades to a single stream.
type MergeToolMissingError struct {
	Tool string
}

func (e *MergeToolMissingError) Error() string {
	return fmt.Sprintf("merge tool %q not installed, falling back to best single stream", e.Tool)
}

// DownloadError is an unclassified downloader failure. It is not retried.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download of %q failed: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// OutputMissingError means the downloader reported success but no file is present.
type OutputMissingError struct {
	Path string
	Err  error
}

func (e *OutputMissingError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("no output file produced: %v", e.Err)
	}
	return fmt.Sprintf("output file %q not usable: %v", e.Path, e.Err)
}

func (e *OutputMissingError) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindNone for nil.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	var (
		malformed   *MalformedRowError
		invalid     *InvalidURLError
		network     *NetworkError
		unavailable *DownloaderUnavailableError
		merge       *MergeToolMissingError
		output      *OutputMissingError
	)

	switch {
	case errors.As(err, &unavailable):
		return KindDownloaderUnavailable
	case errors.As(err, &malformed):
		return KindMalformedRow
	case errors.As(err, &invalid):
		return KindInvalidURL
	case errors.As(err, &network):
		return KindNetwork
	case errors.As(err, &merge):
		return KindMergeToolMissing
	case errors.As(err, &output):
		return KindOutputMissing
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindDownloadFailed
	}
}

// IsRetryable reports whether a retry may succeed.
func IsRetryable(err error) bool {
	return KindOf(err) == KindNetwork
}

// IsFatal reports whether err must abort the whole batch.
func IsFatal(err error) bool {
	return KindOf(err) == KindDownloaderUnavailable
}
