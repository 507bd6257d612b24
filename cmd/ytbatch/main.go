// Package main is the entrypoint of ytbatch.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	"ytbatch/internal/cfg"
	"ytbatch/internal/csvjobs"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/domain/logger"
	"ytbatch/internal/domain/paths"
	"ytbatch/internal/models"
	"ytbatch/internal/report"
	"ytbatch/internal/utils/logging"
)

// init runs before the program begins.
func init() {
	if err := paths.InitProgFilesDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "ytbatch: program files unavailable, history and log file disabled: %v\n", err)
	}
}

// main is the main entrypoint of the program (duh!).
func main() {
	os.Exit(run())
}

// run executes the chosen command and returns the process exit code.
func run() int {
	startTime := time.Now()

	if err := cfg.InitCommands(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return consts.ExitFatal
	}
	if err := cfg.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return consts.ExitFatal
	}

	mode := cfg.Mode()
	if mode == cfg.ModeNone {
		return consts.ExitOK // help or version output
	}

	// Setup ytbatch logging
	pl, err := logging.SetupLogging(logging.LoggingConfig{
		LogFilePath: paths.LogFilePath,
		Console:     os.Stderr,
		Program:     consts.ProgramName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ytbatch exiting with error: %v\n", err)
		return consts.ExitFatal
	}
	logger.Pl = pl
	defer func() {
		if err := pl.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}()

	s, err := cfg.LoadSettings()
	if err != nil {
		logger.Pl.E("Invalid configuration: %v", err)
		return consts.ExitFatal
	}
	pl.SetLevel(s.DebugLevel)

	// create cancellable context for shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch mode {
	case cfg.ModeHistory:
		return runHistory(ctx, s)
	default:
		return runBatch(ctx, s, startTime)
	}
}

// runBatch downloads every job in the CSV file.
func runBatch(ctx context.Context, s *models.Settings, startTime time.Time) int {
	src, err := csvjobs.Open(cfg.CSVPath())
	if err != nil {
		logger.Pl.E("%v", err)
		return consts.ExitFatal
	}

	app, err := initializeApplication(s)
	if err != nil {
		logger.Pl.E("Error initializing ytbatch: %v", err)
		return consts.ExitFatal
	}
	defer app.close()

	logger.Pl.I("ytbatch started at: %v (backend %s, output %q)",
		startTime.Format(consts.TimeFormatLong), s.Backend, s.OutputDir)

	res, runErr := app.runner.Run(ctx, src)
	if runErr != nil {
		logger.Pl.E("Run aborted: %v", runErr)
	}

	report.Summary(os.Stdout, res)

	if s.MetricsFile != "" {
		if err := app.metrics.WriteTextfile(s.MetricsFile); err != nil {
			logger.Pl.W("%v", err)
		}
	}

	endTime := time.Now()
	logger.Pl.I("ytbatch finished at: %v", endTime.Format(consts.TimeFormatLong))
	logger.Pl.D(1, "Time elapsed: %.2f seconds", endTime.Sub(startTime).Seconds())

	return exitCode(res, runErr)
}

// runHistory lists recorded downloads.
func runHistory(ctx context.Context, s *models.Settings) int {
	filter, err := cfg.LoadHistoryFilter()
	if err != nil {
		logger.Pl.E("%v", err)
		return consts.ExitFatal
	}

	store, closeDB, err := openHistory(s.HistoryDB)
	if err != nil {
		logger.Pl.E("%v", err)
		return consts.ExitFatal
	}
	defer closeDB()

	records, err := store.ListDownloads(ctx, filter)
	if err != nil {
		logger.Pl.E("%v", err)
		return consts.ExitFatal
	}

	report.History(os.Stdout, records)
	return consts.ExitOK
}

// exitCode maps a run result to the process exit code.
func exitCode(res *models.BatchResult, runErr error) int {
	switch {
	case runErr != nil:
		return consts.ExitFatal
	case res.HasFailures():
		return consts.ExitJobsFailed
	default:
		return consts.ExitOK
	}
}
