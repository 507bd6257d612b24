// Package keys holds the viper/flag keys used across ytbatch.
package keys

// Download
const (
	OutputDir   string = "output-dir"
	Format      string = "format"
	Merge       string = "merge"
	MergeFormat string = "merge-format"
	Overwrite   string = "overwrite"
	Retries     string = "retries"
	RetryDelay  string = "retry-delay"
)

// External tools
const (
	Backend     string = "backend"
	YtdlpPath   string = "ytdlp-path"
	FFmpegPath  string = "ffmpeg-path"
	InstallDeps string = "install-deps"
)

// Auth
const (
	CookieFile         string = "cookie-file"
	CookiesFromBrowser string = "cookies-from-browser"
)

// History & metrics
const (
	SkipArchived string = "skip-archived"
	HistoryDB    string = "history-db"
	NoHistory    string = "no-history"
	MetricsFile  string = "metrics-file"
)

// Program
const (
	ConfigFile string = "config-file"
	DebugLevel string = "debug-level"
)

// History command
const (
	HistorySince  string = "since"
	HistoryStatus string = "status"
	HistoryLimit  string = "limit"
)

// Set by commands for main
const (
	CSVFile string = "csv-file"
	RunMode string = "run-mode"
)
