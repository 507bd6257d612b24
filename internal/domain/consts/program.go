// Package consts holds program-wide constant values.
package consts

// Program
const (
	ProgramName    = "ytbatch"
	EnvPrefix      = "YTBATCH"
	TimeFormatLong = "2006-01-02 15:04:05.00 MST"
)

// Backends
const (
	BackendYtdlpExec = "ytdlp-exec"
	BackendGoYtdlp   = "go-ytdlp"
)

// Download defaults, matching yt-dlp conventions.
const (
	DefaultOutputDir   = "downloads"
	DefaultFormat      = "bestvideo+bestaudio/best"
	SingleStreamFormat = "best"
	DefaultMergeFormat = "mp4"
	DefaultYtdlpBinary = "yt-dlp"
	DefaultFFmpeg      = "ffmpeg"
	MaxFilenameRunes   = 180
	FallbackFilename   = "video"
)

// Exit codes
const (
	ExitOK         = 0
	ExitJobsFailed = 1
	ExitFatal      = 2
)

// AllVidExtensions lists the media extensions yt-dlp may produce.
var AllVidExtensions = []string{".3gp", ".avi", ".f4v", ".flv", ".m4a", ".m4v", ".mkv",
	".mov", ".mp3", ".mp4", ".mpeg", ".mpg", ".ogg", ".ogm", ".ogv", ".opus",
	".ts", ".vob", ".wav", ".webm", ".wmv"}
