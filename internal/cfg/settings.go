package cfg

import (
	"fmt"
	"slices"
	"strings"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/domain/keys"
	"ytbatch/internal/domain/logger"
	"ytbatch/internal/domain/paths"
	"ytbatch/internal/models"

	"github.com/spf13/viper"
)

// Containers yt-dlp can merge into.
var mergeFormats = []string{"avi", "flv", "mkv", "mov", "mp4", "webm"}

// LoadSettings builds the run settings from flags, environment and config file.
func LoadSettings() (*models.Settings, error) {
	s := &models.Settings{
		OutputDir:   strings.TrimSpace(viper.GetString(keys.OutputDir)),
		Format:      strings.TrimSpace(viper.GetString(keys.Format)),
		Merge:       viper.GetBool(keys.Merge),
		MergeFormat: strings.ToLower(strings.TrimSpace(viper.GetString(keys.MergeFormat))),
		Overwrite:   viper.GetBool(keys.Overwrite),

		Retries:    viper.GetInt(keys.Retries),
		RetryDelay: viper.GetDuration(keys.RetryDelay),

		Backend:     strings.ToLower(strings.TrimSpace(viper.GetString(keys.Backend))),
		YtdlpPath:   viper.GetString(keys.YtdlpPath),
		FFmpegPath:  viper.GetString(keys.FFmpegPath),
		InstallDeps: viper.GetBool(keys.InstallDeps),

		CookieFile:         viper.GetString(keys.CookieFile),
		CookiesFromBrowser: viper.GetBool(keys.CookiesFromBrowser),

		SkipArchived: viper.GetBool(keys.SkipArchived),
		HistoryDB:    viper.GetString(keys.HistoryDB),
		NoHistory:    viper.GetBool(keys.NoHistory),
		MetricsFile:  viper.GetString(keys.MetricsFile),

		DebugLevel: viper.GetInt(keys.DebugLevel),
	}

	if s.HistoryDB == "" {
		s.HistoryDB = paths.DBFilePath
	}

	if err := validateSettings(s); err != nil {
		return nil, err
	}
	return s, nil
}

// validateSettings checks s, filling defaults where a value was left empty.
func validateSettings(s *models.Settings) error {
	if s.OutputDir == "" {
		s.OutputDir = consts.DefaultOutputDir
	}
	if s.Format == "" {
		s.Format = consts.DefaultFormat
	}
	if s.Backend == "" {
		s.Backend = consts.BackendYtdlpExec
	}

	switch s.Backend {
	case consts.BackendYtdlpExec, consts.BackendGoYtdlp:
	default:
		return fmt.Errorf("invalid --%s %q (want %q or %q)", keys.Backend, s.Backend, consts.BackendYtdlpExec, consts.BackendGoYtdlp)
	}

	if s.Merge {
		if s.MergeFormat == "" {
			s.MergeFormat = consts.DefaultMergeFormat
		}
		if !slices.Contains(mergeFormats, s.MergeFormat) {
			return fmt.Errorf("invalid --%s %q (want one of %v)", keys.MergeFormat, s.MergeFormat, mergeFormats)
		}
	}

	if s.Retries < 0 {
		return fmt.Errorf("--%s cannot be negative, got %d", keys.Retries, s.Retries)
	}
	if s.RetryDelay < 0 {
		return fmt.Errorf("--%s cannot be negative, got %v", keys.RetryDelay, s.RetryDelay)
	}

	if s.CookieFile != "" && s.CookiesFromBrowser {
		logger.Pl.W("Both --%s and --%s set, using the cookie file", keys.CookieFile, keys.CookiesFromBrowser)
		s.CookiesFromBrowser = false
	}

	if s.SkipArchived && s.NoHistory {
		return fmt.Errorf("--%s needs the history database, but --%s is set", keys.SkipArchived, keys.NoHistory)
	}

	switch {
	case s.DebugLevel < 0:
		s.DebugLevel = 0
	case s.DebugLevel > 5:
		s.DebugLevel = 5
	}
	return nil
}
