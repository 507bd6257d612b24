package cfg

import (
	"fmt"
	"strings"
	"ytbatch/internal/domain/keys"
	"ytbatch/internal/models"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultHistoryLimit = 50

// newHistoryCmd returns the 'history' command, which lists recorded downloads.
func newHistoryCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List downloads recorded by earlier runs.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set(keys.RunMode, ModeHistory)
			return nil
		},
	}

	cmd.Flags().String(keys.HistorySince, "", "Only show downloads finished on or after this date (e.g. '2025-03-01', 'Mar 1 2025 14:00')")
	cmd.Flags().String(keys.HistoryStatus, "", "Only show downloads with this status (success, failed, skipped)")
	cmd.Flags().Int(keys.HistoryLimit, defaultHistoryLimit, "Maximum number of downloads to list (0 for all)")

	if err := bindFlags(cmd.Flags(), keys.HistorySince, keys.HistoryStatus, keys.HistoryLimit); err != nil {
		return nil, err
	}
	return cmd, nil
}

// LoadHistoryFilter builds the history filter from flags.
func LoadHistoryFilter() (models.HistoryFilter, error) {
	var f models.HistoryFilter

	if since := strings.TrimSpace(viper.GetString(keys.HistorySince)); since != "" {
		t, err := dateparse.ParseLocal(since)
		if err != nil {
			return f, fmt.Errorf("invalid --%s date %q: %w", keys.HistorySince, since, err)
		}
		f.Since = t
	}

	if status := strings.ToLower(strings.TrimSpace(viper.GetString(keys.HistoryStatus))); status != "" {
		switch s := models.JobStatus(status); s {
		case models.JobSuccess, models.JobFailed, models.JobSkipped:
			f.Status = s
		default:
			return f, fmt.Errorf("invalid --%s %q (want %s, %s or %s)",
				keys.HistoryStatus, status, models.JobSuccess, models.JobFailed, models.JobSkipped)
		}
	}

	f.Limit = viper.GetInt(keys.HistoryLimit)
	if f.Limit < 0 {
		return f, fmt.Errorf("--%s cannot be negative", keys.HistoryLimit)
	}
	return f, nil
}
