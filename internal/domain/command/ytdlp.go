// Package command holds yt-dlp command-line tokens.
package command

// General
const (
	AfterMove   = "after_move:%(filepath)s"
	CookiePath  = "--cookies"
	EndOfFlags  = "--"
	Format      = "-f"
	Output      = "-o"
	Print       = "--print"
	YtDLPOutput = "--merge-output-format"
)

// Overwrite behaviour
const (
	ForceOverwrites = "--force-overwrites"
	NoOverwrites    = "--no-overwrites"
	Continue        = "--continue"
)

// Output shaping
const (
	NoPlaylist = "--no-playlist"
	Newline    = "--newline"
	NoWarnings = "--no-warnings"
)

// FFmpeg
const (
	FFmpegLocation = "--ffmpeg-location"
)

// OutputTemplateExt is the extension placeholder yt-dlp fills in.
const OutputTemplateExt = ".%(ext)s"
