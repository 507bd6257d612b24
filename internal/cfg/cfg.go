// Package cfg provides configuration and command-line interface setup for ytbatch.
package cfg

import (
	"fmt"
	"os"
	"strings"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/domain/keys"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Run modes set by the commands.
const (
	ModeNone    = ""
	ModeRun     = "run"
	ModeHistory = "history"
)

var rootCmd *cobra.Command

// InitCommands initializes all commands and their flags.
func InitCommands() error {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	initViper()

	cmd, err := newRootCmd()
	if err != nil {
		return err
	}
	rootCmd = cmd
	return nil
}

// initViper sets up environment variable lookups.
func initViper() {
	viper.SetEnvPrefix(consts.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_")) // "output-dir" reads YTBATCH_OUTPUT_DIR
	viper.AutomaticEnv()
}

// Execute parses the command line. Call Mode afterwards to see what to run.
func Execute() error {
	if rootCmd == nil {
		if err := InitCommands(); err != nil {
			return err
		}
	}
	return rootCmd.Execute()
}

// Mode returns the run mode chosen by the command line.
func Mode() string {
	return viper.GetString(keys.RunMode)
}

// CSVPath returns the positional CSV argument.
func CSVPath() string {
	return viper.GetString(keys.CSVFile)
}

// newRootCmd builds the root command and its subcommands.
func newRootCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   consts.ProgramName + " [flags] <csv-file>",
		Short: "ytbatch downloads every video listed in a CSV file.",
		Long: "ytbatch reads rows of 'name,url' from a CSV file and downloads each video\n" +
			"with yt-dlp, saving it as <output-dir>/<name>.<ext>.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if viper.IsSet(keys.ConfigFile) {
				if configFile := viper.GetString(keys.ConfigFile); configFile != "" {
					if err := loadConfigFile(configFile); err != nil {
						return fmt.Errorf("failed loading config file: %w", err)
					}
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set(keys.CSVFile, args[0])
			viper.Set(keys.RunMode, ModeRun)
			return nil
		},
	}

	if err := initProgramFlags(cmd); err != nil {
		return nil, err
	}
	if err := initDownloadFlags(cmd); err != nil {
		return nil, err
	}
	if err := initToolFlags(cmd); err != nil {
		return nil, err
	}
	if err := initHistoryFlags(cmd); err != nil {
		return nil, err
	}

	history, err := newHistoryCmd()
	if err != nil {
		return nil, err
	}
	cmd.AddCommand(history)

	return cmd, nil
}
