package cfg

import (
	"time"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// initProgramFlags initializes flags related to the core program. E.g. logging level.
func initProgramFlags(cmd *cobra.Command) error {
	flags := cmd.PersistentFlags()

	flags.String(keys.ConfigFile, "", "Config file (any format viper reads, e.g. YAML, TOML, JSON)")
	flags.Int(keys.DebugLevel, 0, "Debugging level (0 - 5)")

	return bindFlags(flags, keys.ConfigFile, keys.DebugLevel)
}

// initDownloadFlags initializes flags for how each video is fetched and named.
func initDownloadFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()

	flags.StringP(keys.OutputDir, "o", consts.DefaultOutputDir, "Directory to save videos in (created if missing)")
	flags.StringP(keys.Format, "f", consts.DefaultFormat, "yt-dlp format selector")
	flags.Bool(keys.Merge, true, "Merge separate video and audio streams (needs ffmpeg)")
	flags.String(keys.MergeFormat, consts.DefaultMergeFormat, "Container for merged output")
	flags.Bool(keys.Overwrite, false, "Re-download videos whose output file already exists")
	flags.Int(keys.Retries, 0, "Retries per video after a network error")
	flags.Duration(keys.RetryDelay, 2*time.Second, "Wait between retries")
	flags.String(keys.CookieFile, "", "Netscape cookie file passed to yt-dlp")
	flags.Bool(keys.CookiesFromBrowser, false, "Read cookies from local browsers for each video's site")

	return bindFlags(flags,
		keys.OutputDir,
		keys.Format,
		keys.Merge,
		keys.MergeFormat,
		keys.Overwrite,
		keys.Retries,
		keys.RetryDelay,
		keys.CookieFile,
		keys.CookiesFromBrowser,
	)
}

// initToolFlags initializes flags for the external downloader and merge tool.
func initToolFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()

	flags.String(keys.Backend, consts.BackendYtdlpExec, "Download backend ('"+consts.BackendYtdlpExec+"' or '"+consts.BackendGoYtdlp+"')")
	flags.String(keys.YtdlpPath, consts.DefaultYtdlpBinary, "yt-dlp binary for the exec backend")
	flags.String(keys.FFmpegPath, consts.DefaultFFmpeg, "ffmpeg binary used to merge streams")
	flags.Bool(keys.InstallDeps, false, "Let the go-ytdlp backend install yt-dlp and ffmpeg if missing")

	return bindFlags(flags, keys.Backend, keys.YtdlpPath, keys.FFmpegPath, keys.InstallDeps)
}

// initHistoryFlags initializes flags for the run history and metrics.
func initHistoryFlags(cmd *cobra.Command) error {
	flags := cmd.PersistentFlags()

	flags.String(keys.HistoryDB, "", "History database path (default ~/.ytbatch/ytbatch.db)")
	flags.Bool(keys.NoHistory, false, "Do not record this run in the history database")
	flags.Bool(keys.SkipArchived, false, "Skip URLs already downloaded in an earlier run")
	flags.String(keys.MetricsFile, "", "Write Prometheus metrics to this file when the run ends")

	return bindFlags(flags, keys.HistoryDB, keys.NoHistory, keys.SkipArchived, keys.MetricsFile)
}

// bindFlags binds each named flag to its viper key.
func bindFlags(flags *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}
