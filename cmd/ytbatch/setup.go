package main

import (
	"errors"
	"ytbatch/internal/cookies"
	"ytbatch/internal/database"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/domain/logger"
	"ytbatch/internal/domain/paths"
	"ytbatch/internal/downloader"
	"ytbatch/internal/executor"
	"ytbatch/internal/merge"
	"ytbatch/internal/metrics"
	"ytbatch/internal/models"
	"ytbatch/internal/repo"
	"ytbatch/internal/runner"
)

// application holds the components wired for one run.
type application struct {
	runner  *runner.Runner
	metrics *metrics.Metrics
	closeDB func()

	// unavailable is set when the download backend failed its preflight check
	unavailable error
}

// initializeApplication sets up the application for the current run.
func initializeApplication(s *models.Settings) (*application, error) {
	lib, err := downloader.New(s)
	if err != nil {
		return nil, err
	}
	logger.Pl.D(1, "Using download backend %q", lib.Name())

	// Not fatal here: an empty CSV still succeeds, and the first job aborts the run
	unavailable := lib.Available()
	if unavailable != nil {
		logger.Pl.W("Download backend %q is not usable: %v", lib.Name(), unavailable)
	}

	// go-ytdlp installs its own ffmpeg outside PATH
	var mergeTool executor.MergeTool
	if !(s.Backend == consts.BackendGoYtdlp && s.InstallDeps) {
		mergeTool = merge.NewTool(s.FFmpegPath)
	}

	var cookieSrc executor.CookieSource
	if s.CookiesFromBrowser {
		if paths.CookiesDir == "" {
			return nil, errors.New("cannot read browser cookies: no program directory for cookie files")
		}
		cookieSrc = cookies.NewManager(paths.CookiesDir)
	}

	app := &application{
		metrics:     metrics.NewMetrics(),
		closeDB:     func() {},
		unavailable: unavailable,
	}
	opts := []runner.Option{runner.WithMetrics(app.metrics)}

	switch {
	case s.NoHistory:
	case s.HistoryDB == "":
		if s.SkipArchived {
			return nil, errors.New("cannot skip archived URLs: no history database path")
		}
		logger.Pl.W("No history database path, this run will not be recorded")
	default:
		store, closeDB, err := openHistory(s.HistoryDB)
		if err != nil {
			if s.SkipArchived {
				return nil, err
			}
			logger.Pl.W("History disabled for this run: %v", err)
			break
		}
		app.closeDB = closeDB
		opts = append(opts, runner.WithHistory(store))
	}

	app.runner = runner.New(s, executor.New(s, lib, mergeTool, cookieSrc), opts...)
	return app, nil
}

// close releases the application's resources.
func (a *application) close() {
	a.closeDB()
}

// openHistory opens the history database and returns its store.
func openHistory(path string) (*repo.HistoryStore, func(), error) {
	if path == "" {
		return nil, nil, errors.New("no history database path")
	}

	db, err := database.InitDB(path)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Pl.E("Failed to close database: %v", err)
		}
	}
	return repo.GetHistoryStore(db.DB), closeDB, nil
}
