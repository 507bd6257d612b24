// Package repo is used for performing database repository operations.
package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/domain/logger"
	"ytbatch/internal/errs"
	"ytbatch/internal/models"
	"ytbatch/internal/parsing"

	"github.com/Masterminds/squirrel"
)

// HistoryStore holds a pointer to the sql.DB.
type HistoryStore struct {
	DB *sql.DB
}

// GetHistoryStore returns a history store instance with injected database.
func GetHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{
		DB: db,
	}
}

// StartRun inserts a run row.
func (hs *HistoryStore) StartRun(ctx context.Context, runID, csvPath string, startedAt time.Time) error {
	query := squirrel.
		Insert(consts.DBRuns).
		Columns(consts.QRunID, consts.QRunCSVPath, consts.QRunStartedAt).
		Values(runID, csvPath, startedAt.UTC()).
		RunWith(hs.DB)

	if _, err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to insert run %q: %w", runID, err)
	}
	return nil
}

// FinishRun stores the final tallies of a run.
func (hs *HistoryStore) FinishRun(ctx context.Context, res *models.BatchResult) error {
	finished := res.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}

	query := squirrel.
		Update(consts.DBRuns).
		Set(consts.QRunFinishedAt, finished.UTC()).
		Set(consts.QRunSucceeded, res.Succeeded()).
		Set(consts.QRunFailed, res.Failed()).
		Set(consts.QRunSkipped, res.Skipped()).
		Set(consts.QRunMalformed, res.Malformed()).
		Set(consts.QRunAborted, res.Aborted).
		Where(squirrel.Eq{consts.QRunID: res.RunID}).
		RunWith(hs.DB)

	result, err := query.ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to finish run %q: %w", res.RunID, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run %q does not exist", res.RunID)
	}
	return nil
}

// RecordOutcome inserts one job outcome under runID.
func (hs *HistoryStore) RecordOutcome(ctx context.Context, runID string, o *models.Outcome) (err error) {
	tx, err := hs.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Pl.E("Panic rollback failed for outcome of %q: %v", o.Job.SourceURL, rbErr)
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Pl.E("Error rolling back outcome of %q (original error: %v): %v", o.Job.SourceURL, err, rbErr)
			}
		}
	}()

	query := squirrel.
		Insert(consts.DBDownloads).
		Columns(
			consts.QDLRunID,
			consts.QDLLine,
			consts.QDLName,
			consts.QDLURL,
			consts.QDLURLKey,
			consts.QDLStatus,
			consts.QDLKind,
			consts.QDLReason,
			consts.QDLPath,
			consts.QDLDegraded,
			consts.QDLAttempts,
			consts.QDLStartedAt,
			consts.QDLFinishedAt,
		).
		Values(
			runID,
			o.Job.Line,
			o.Job.DisplayName,
			o.Job.SourceURL,
			parsing.NormalizeURL(o.Job.SourceURL),
			string(o.Status),
			string(o.Kind),
			o.Reason,
			o.Path,
			o.Degraded,
			o.Attempts,
			nullTime(o.StartedAt),
			nullTime(o.FinishedAt),
		).
		RunWith(tx)

	if _, err = query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to record outcome for %q: %w", o.Job.SourceURL, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// HasSucceeded returns true if any earlier run downloaded url.
//
// URLs are compared by parsing.NormalizeURL, so scheme and trailing slash differences match.
func (hs *HistoryStore) HasSucceeded(ctx context.Context, url string) (bool, error) {
	query := squirrel.
		Select("COUNT(1)").
		From(consts.DBDownloads).
		Where(squirrel.Eq{
			consts.QDLURLKey: parsing.NormalizeURL(url),
			consts.QDLStatus: string(models.JobSuccess),
		}).
		RunWith(hs.DB)

	var count int
	if err := query.QueryRowContext(ctx).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check history for %q: %w", url, err)
	}
	return count > 0, nil
}

// ListDownloads returns stored outcomes, newest first.
func (hs *HistoryStore) ListDownloads(ctx context.Context, f models.HistoryFilter) ([]*models.DownloadRecord, error) {
	query := squirrel.
		Select(
			consts.QDLID,
			consts.QDLRunID,
			consts.QDLLine,
			consts.QDLName,
			consts.QDLURL,
			consts.QDLStatus,
			consts.QDLKind,
			consts.QDLReason,
			consts.QDLPath,
			consts.QDLDegraded,
			consts.QDLAttempts,
			consts.QDLStartedAt,
			consts.QDLFinishedAt,
		).
		From(consts.DBDownloads).
		OrderBy(consts.QDLFinishedAt+" DESC", consts.QDLID+" DESC")

	if !f.Since.IsZero() {
		query = query.Where(squirrel.GtOrEq{consts.QDLFinishedAt: f.Since.UTC()})
	}
	if f.Status != "" {
		query = query.Where(squirrel.Eq{consts.QDLStatus: string(f.Status)})
	}
	if f.Limit > 0 {
		query = query.Limit(uint64(f.Limit))
	}

	rows, err := query.RunWith(hs.DB).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query download history: %w", err)
	}
	defer rows.Close()

	var records []*models.DownloadRecord
	for rows.Next() {
		var (
			r                     models.DownloadRecord
			status                string
			kind, reason, path    sql.NullString
			startedAt, finishedAt sql.NullTime
		)
		if err := rows.Scan(
			&r.ID,
			&r.RunID,
			&r.Line,
			&r.Name,
			&r.URL,
			&status,
			&kind,
			&reason,
			&path,
			&r.Degraded,
			&r.Attempts,
			&startedAt,
			&finishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan download row: %w", err)
		}

		r.Status = models.JobStatus(status)
		r.Kind = errs.Kind(kind.String)
		r.Reason = reason.String
		r.Path = path.String
		if startedAt.Valid {
			r.StartedAt = startedAt.Time
		}
		if finishedAt.Valid {
			r.FinishedAt = finishedAt.Time
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating download rows: %w", err)
	}
	return records, nil
}

// nullTime stores zero times as NULL.
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
