// Package csvjobs reads download jobs from a CSV file.
//
// Rows are either positional (<display_name>,<url>) or, when the first record
// names both columns, matched by header. Malformed rows are reported as
// *errs.MalformedRowError and iteration continues.
package csvjobs

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/url"
	"os"
	"slices"
	"strings"
	"ytbatch/internal/domain/logger"
	"ytbatch/internal/errs"
	"ytbatch/internal/models"
)

var (
	nameKeys = []string{"name", "title", "video_name", "filename", "display_name"}
	urlKeys  = []string{"link", "url", "video_url", "youtube_url", "source_url"}

	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
)

// Source is a restartable job sequence backed by a CSV file.
type Source struct {
	Path string
}

// Open validates the CSV path and returns a Source.
func Open(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat CSV file %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("CSV path %q is a directory, should be a file", path)
	}
	return &Source{Path: path}, nil
}

// String returns the CSV path.
func (s *Source) String() string {
	return s.Path
}

// Jobs returns a lazy sequence of jobs.
//
// Each call reopens the file and starts from the first row. A yielded error is
// either a *errs.MalformedRowError (skip and continue) or a fatal error, after
// which the sequence ends.
func (s *Source) Jobs() iter.Seq2[*models.DownloadJob, error] {
	return func(yield func(*models.DownloadJob, error) bool) {
		f, err := os.Open(s.Path)
		if err != nil {
			yield(nil, fmt.Errorf("failed to open CSV file %q: %w", s.Path, err))
			return
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Pl.E("Failed to close file %q: %v", s.Path, err)
			}
		}()

		for job, err := range Parse(f) {
			if !yield(job, err) {
				return
			}
		}
	}
}

// Parse returns a lazy sequence of jobs read from r.
func Parse(r io.Reader) iter.Seq2[*models.DownloadJob, error] {
	return func(yield func(*models.DownloadJob, error) bool) {
		br := bufio.NewReader(r)
		if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			if _, err := br.Discard(len(utf8BOM)); err != nil {
				yield(nil, fmt.Errorf("failed to skip byte-order mark: %w", err))
				return
			}
		}

		cr := csv.NewReader(br)
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true

		var (
			cols  *columns
			first = true
		)

		for {
			row, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}

			if err != nil {
				var pe *csv.ParseError
				if errors.As(err, &pe) {
					if !yield(nil, &errs.MalformedRowError{Line: pe.StartLine, Reason: "CSV syntax error", Err: err}) {
						return
					}
					continue
				}
				yield(nil, fmt.Errorf("failed to read CSV: %w", err))
				return
			}

			line, _ := cr.FieldPos(0)

			if first {
				first = false
				var isHeader bool
				cols, isHeader, err = detectHeader(row)
				if err != nil {
					yield(nil, err)
					return
				}
				if isHeader {
					logger.Pl.D(1, "CSV header detected: name column %d, URL column %d", cols.name, cols.url)
					continue
				}
			}

			job, err := cols.job(line, row)
			if !yield(job, err) {
				return
			}
		}
	}
}

// columns holds the field indexes for name and URL.
type columns struct {
	name, url int
}

// detectHeader inspects the first record.
//
// A record that names only one column is still data when another field holds
// an http(s) URL, so a video titled "Title" does not abort the run.
func detectHeader(row []string) (*columns, bool, error) {
	nameIdx, urlIdx := -1, -1
	for i, field := range row {
		key := strings.ToLower(strings.TrimSpace(field))
		if nameIdx < 0 && slices.Contains(nameKeys, key) {
			nameIdx = i
			continue
		}
		if urlIdx < 0 && slices.Contains(urlKeys, key) {
			urlIdx = i
		}
	}

	switch {
	case nameIdx >= 0 && urlIdx >= 0:
		return &columns{name: nameIdx, url: urlIdx}, true, nil
	case nameIdx >= 0 || urlIdx >= 0:
		if slices.ContainsFunc(row, isWebURL) {
			return &columns{name: 0, url: 1}, false, nil
		}
		return nil, false, fmt.Errorf("CSV header must include one of %v and one of %v, found columns: %v",
			nameKeys, urlKeys, row)
	default:
		return &columns{name: 0, url: 1}, false, nil
	}
}

// isWebURL reports whether field parses as an absolute http(s) URL.
func isWebURL(field string) bool {
	u, err := url.Parse(strings.TrimSpace(field))
	if err != nil || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// job builds a DownloadJob from a record.
func (c *columns) job(line int, row []string) (*models.DownloadJob, error) {
	need := max(c.name, c.url) + 1
	if len(row) < need {
		return nil, &errs.MalformedRowError{
			Line:   line,
			Reason: fmt.Sprintf("expected at least %d columns, got %d", need, len(row)),
		}
	}

	name := strings.TrimSpace(row[c.name])
	u := strings.TrimSpace(row[c.url])

	switch {
	case name == "" && u == "":
		return nil, &errs.MalformedRowError{Line: line, Reason: "empty name and URL"}
	case name == "":
		return nil, &errs.MalformedRowError{Line: line, Reason: "empty name"}
	case u == "":
		return nil, &errs.MalformedRowError{Line: line, Reason: "empty URL"}
	}

	return &models.DownloadJob{Line: line, DisplayName: name, SourceURL: u}, nil
}
