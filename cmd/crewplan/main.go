package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/crewplan/internal/cli"
	"github.com/alexanderramin/crewplan/internal/config"
	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/repository"
	"github.com/alexanderramin/crewplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg)

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	repos := service.ScheduleRepos{
		Projects:  repository.NewSQLiteProjectRepo(database),
		Estimates: repository.NewSQLiteEstimateRepo(database),
		Catalog:   repository.NewSQLiteCatalogRepo(database),
		Capacity:  repository.NewSQLiteCapacityRepo(database),
		Tasks:     repository.NewSQLiteScheduleTaskRepo(database),
		Changes:   repository.NewSQLiteChangeLogRepo(database),
	}

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	scheduleOpts := []service.ScheduleOption{service.WithHistoryLimit(cfg.HistoryLimit)}
	for _, o := range observers {
		scheduleOpts = append(scheduleOpts, service.WithScheduleObserver(o))
	}

	app := &cli.App{
		Schedule:  service.NewScheduleService(repos, uow, scheduleOpts...),
		Summary:   service.NewSummaryService(repos.Projects, repos.Tasks, cfg.MaxSummaryRangeDays, observers...),
		Capacity:  service.NewCapacityService(repos.Projects, repos.Capacity, observers...),
		Import:    service.NewImportService(uow, observers...),
		Export:    service.NewExportService(repos, cfg.HistoryLimit, observers...),
		CompanyID: cfg.CompanyID,
		ActorID:   cfg.ActorID,
	}

	// Spinners and other progress output go to stderr, so only it needs a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	}

	logger.Debug("crewplan starting", "db_path", cfg.DBPath, "company_id", cfg.CompanyID)

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.JSONLogs() {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
