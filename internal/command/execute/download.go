// Package execute runs external download commands.
package execute

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/domain/logger"
	"ytbatch/internal/errs"
)

// maxOutputBytes caps how much diagnostic output is kept per command.
const maxOutputBytes = 64 * 1024

// Result holds what was learned from one yt-dlp run.
type Result struct {
	OutputPath string
	Output     string
}

// RunVideoDownload runs the yt-dlp binary with args and captures the printed output path.
//
// The process is killed if ctx is cancelled.
func RunVideoDownload(ctx context.Context, binary, url string, args []string) (*Result, error) {
	if _, err := exec.LookPath(binary); err != nil {
		return nil, &errs.DownloaderUnavailableError{Tool: binary, Err: err}
	}

	cmd := exec.CommandContext(ctx, binary, args...)

	stderr := &tailBuffer{limit: maxOutputBytes}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	logger.Pl.D(1, "Executing download command: %s", cmd.String())
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, &errs.DownloaderUnavailableError{Tool: binary, Err: err}
		}
		return nil, fmt.Errorf("failed to start download: %w", err)
	}

	res := new(Result)
	stdoutTail := &tailBuffer{limit: maxOutputBytes}

	// Read all of stdout before Wait
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		logger.Pl.D(2, "%s", line)
		stdoutTail.WriteString(line + "\n")

		if p := outputPathFromLine(line); p != "" {
			res.OutputPath = p
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Pl.E("Scanner error: %v", err)
	}

	waitErr := cmd.Wait()
	res.Output = stdoutTail.String() + stderr.String()

	if waitErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		return res, errs.ClassifyDownloaderOutput(url, res.Output, waitErr)
	}
	return res, nil
}

// outputPathFromLine returns line if it looks like a printed media file path.
func outputPathFromLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "[") {
		return ""
	}
	if slices.Contains(consts.AllVidExtensions, strings.ToLower(filepath.Ext(line))) {
		return line
	}
	return ""
}

// tailBuffer keeps the most recent limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	buf   []byte
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.limit; over > 0 {
		t.buf = t.buf[over:]
	}
	return len(p), nil
}

func (t *tailBuffer) WriteString(s string) {
	_, _ = t.Write([]byte(s))
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
