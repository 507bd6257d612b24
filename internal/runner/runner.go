// Package runner drives a whole batch: one job at a time, in CSV order.
package runner

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"time"
	"ytbatch/internal/contracts"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/domain/logger"
	"ytbatch/internal/errs"
	"ytbatch/internal/executor"
	"ytbatch/internal/models"

	"github.com/google/uuid"
)

// Source yields jobs, or errors for rows that could not become jobs.
type Source interface {
	Jobs() iter.Seq2[*models.DownloadJob, error]
}

// JobExecutor runs a single job.
type JobExecutor interface {
	Execute(ctx context.Context, job *models.DownloadJob) (*executor.Result, error)
}

// Collector receives run metrics.
type Collector interface {
	IncAttempt()
	IncMalformed()
	ObserveOutcome(o *models.Outcome)
}

// Runner owns the batch loop and its retry policy.
type Runner struct {
	settings *models.Settings
	exec     JobExecutor
	history  contracts.HistoryStore
	metrics  Collector
	newID    func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithHistory records runs and outcomes, and enables SkipArchived lookups.
func WithHistory(h contracts.HistoryStore) Option {
	return func(r *Runner) {
		r.history = h
	}
}

// WithMetrics sends attempts and outcomes to c.
func WithMetrics(c Collector) Option {
	return func(r *Runner) {
		r.metrics = c
	}
}

// New returns a Runner for the given settings and executor.
func New(s *models.Settings, exec JobExecutor, opts ...Option) *Runner {
	r := &Runner{
		settings: s,
		exec:     exec,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes every job from src.
//
// The returned result is always non-nil and holds every outcome produced so far.
// A non-nil error means the run was aborted: the downloader is unavailable, the
// source could not be read, or ctx was cancelled.
func (r *Runner) Run(ctx context.Context, src Source) (*models.BatchResult, error) {
	res := &models.BatchResult{
		RunID:     r.newID(),
		StartedAt: time.Now(),
	}
	if s, ok := src.(fmt.Stringer); ok {
		res.CSVPath = s.String()
	}

	if err := os.MkdirAll(r.settings.OutputDir, consts.PermsVideoDir); err != nil {
		err = fmt.Errorf("failed to create output directory %q: %w", r.settings.OutputDir, err)
		abort(res, err)
		res.FinishedAt = time.Now()
		return res, err
	}

	// History writes must survive an interrupt
	recCtx := context.WithoutCancel(ctx)

	if r.history != nil {
		if err := r.history.StartRun(recCtx, res.RunID, res.CSVPath, res.StartedAt); err != nil {
			logger.Pl.W("Could not record run start, disabling history for this run: %v", err)
			r.history = nil
		}
	}

	logger.Pl.D(1, "Starting run %s for %q", res.RunID, res.CSVPath)

	var runErr error
	for job, err := range src.Jobs() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			runErr = ctxErr
			break
		}

		if err != nil {
			var mErr *errs.MalformedRowError
			if errors.As(err, &mErr) {
				logger.Pl.W("Skipping %v", mErr)
				res.RowErrors = append(res.RowErrors, models.RowError{Line: mErr.Line, Reason: mErr.Reason})
				if r.metrics != nil {
					r.metrics.IncMalformed()
				}
				continue
			}
			runErr = err
			break
		}

		o, fatal := r.runJob(ctx, job)
		res.Outcomes = append(res.Outcomes, *o)
		r.record(recCtx, res.RunID, o)

		if fatal != nil {
			runErr = fatal
			break
		}
	}

	if runErr == nil && ctx.Err() != nil {
		runErr = ctx.Err()
	}
	if runErr != nil {
		abort(res, runErr)
	}
	res.FinishedAt = time.Now()

	if r.history != nil {
		if err := r.history.FinishRun(recCtx, res); err != nil {
			logger.Pl.W("Could not record run end: %v", err)
		}
	}
	return res, runErr
}

// runJob executes job with retries. A non-nil error is fatal to the run.
func (r *Runner) runJob(ctx context.Context, job *models.DownloadJob) (*models.Outcome, error) {
	o := &models.Outcome{
		Job:       *job,
		StartedAt: time.Now(),
	}
	defer func() {
		o.FinishedAt = time.Now()
	}()

	if r.settings.SkipArchived && r.history != nil {
		done, err := r.history.HasSucceeded(ctx, job.SourceURL)
		switch {
		case err != nil:
			logger.Pl.W("Could not check history for %q: %v", job.SourceURL, err)
		case done:
			logger.Pl.I("[skip] %s (already downloaded in an earlier run)", job.DisplayName)
			o.Status = models.JobSkipped
			o.Reason = "already downloaded"
			return o, nil
		}
	}

	for {
		o.Attempts++
		if r.metrics != nil {
			r.metrics.IncAttempt()
		}

		res, err := r.exec.Execute(ctx, job)
		if err == nil {
			o.Path = res.Path
			o.Degraded = res.Degraded
			if res.Skipped {
				o.Status = models.JobSkipped
				o.Reason = res.SkipReason
			} else {
				o.Status = models.JobSuccess
				logger.Pl.S("Downloaded %q to %q", job.DisplayName, res.Path)
			}
			return o, nil
		}

		if errs.IsRetryable(err) && o.Attempts <= r.settings.Retries {
			logger.Pl.W("Attempt %d/%d for %q failed, retrying in %v: %v",
				o.Attempts, r.settings.Retries+1, job.DisplayName, r.settings.RetryDelay, err)

			if waitErr := wait(ctx, r.settings.RetryDelay); waitErr != nil {
				fail(o, fmt.Errorf("retry interrupted after %v: %w", err, waitErr))
				return o, nil
			}
			continue
		}

		fail(o, err)
		if errs.IsFatal(err) {
			return o, err
		}
		return o, nil
	}
}

// record writes o to history and metrics. Failures here never fail the job.
func (r *Runner) record(ctx context.Context, runID string, o *models.Outcome) {
	if r.metrics != nil {
		r.metrics.ObserveOutcome(o)
	}
	if r.history != nil {
		if err := r.history.RecordOutcome(ctx, runID, o); err != nil {
			logger.Pl.W("Could not record outcome for %q in history: %v", o.Job.SourceURL, err)
		}
	}
}

// fail marks o as failed with err.
func fail(o *models.Outcome, err error) {
	o.Status = models.JobFailed
	o.Kind = errs.KindOf(err)
	o.Reason = err.Error()
	logger.Pl.E("Line %d: %q failed: %v", o.Job.Line, o.Job.DisplayName, err)
}

// abort marks the result as aborted with err as the reason.
func abort(res *models.BatchResult, err error) {
	res.Aborted = true
	res.AbortReason = err.Error()
}

// wait sleeps for d, returning early with ctx.Err() on cancellation.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
