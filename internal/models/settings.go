package models

import "time"

// Settings is the explicit configuration handed to the batch runner and executor.
type Settings struct {
	OutputDir   string
	Format      string
	Merge       bool
	MergeFormat string
	Overwrite   bool

	Retries    int
	RetryDelay time.Duration

	Backend     string
	YtdlpPath   string
	FFmpegPath  string
	InstallDeps bool

	CookieFile         string
	CookiesFromBrowser bool

	SkipArchived bool
	HistoryDB    string
	NoHistory    bool
	MetricsFile  string

	DebugLevel int
}
