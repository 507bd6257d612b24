package consts

// Tables
const (
	DBRuns      = "runs"
	DBDownloads = "downloads"
)

// Runs
const (
	QRunID         = "id"
	QRunCSVPath    = "csv_path"
	QRunStartedAt  = "started_at"
	QRunFinishedAt = "finished_at"
	QRunSucceeded  = "succeeded"
	QRunFailed     = "failed"
	QRunSkipped    = "skipped"
	QRunMalformed  = "malformed"
	QRunAborted    = "aborted"
)

// Downloads
const (
	QDLID         = "id"
	QDLRunID      = "run_id"
	QDLLine       = "line"
	QDLName       = "name"
	QDLURL        = "url"
	QDLURLKey     = "url_key"
	QDLStatus     = "status"
	QDLKind       = "kind"
	QDLReason     = "reason"
	QDLPath       = "path"
	QDLDegraded   = "degraded"
	QDLAttempts   = "attempts"
	QDLStartedAt  = "started_at"
	QDLFinishedAt = "finished_at"
)
