package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/dealflow/internal/cli"
	"github.com/alexanderramin/dealflow/internal/config"
	"github.com/alexanderramin/dealflow/internal/db"
	"github.com/alexanderramin/dealflow/internal/outbox"
	"github.com/alexanderramin/dealflow/internal/pipeline"
	"github.com/alexanderramin/dealflow/internal/repository"
	"github.com/alexanderramin/dealflow/internal/server"
	"github.com/alexanderramin/dealflow/internal/service"
	"github.com/alexanderramin/dealflow/internal/source"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine config path: env var or ./dealflow.yml
	cfgPath := os.Getenv("DEALFLOW_CONFIG")
	if cfgPath == "" {
		cfgPath = "dealflow.yml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger := newLogger()

	// Open database
	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	leadRepo := repository.NewSQLiteLeadRepo(database)
	dealRepo := repository.NewSQLiteDealRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)

	// Wire unit of work for the lead-to-deal handoff
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	observer := service.NewLogUseCaseObserver(os.Stderr)
	leadSvc := service.NewLeadService(leadRepo, cfg.Qualification, observer)
	dealSvc := service.NewDealService(leadRepo, dealRepo, uow, cfg.Negotiation,
		cfg.Pipeline.MaxNegotiationRounds, observer)
	projectSvc := service.NewProjectService(dealRepo, projectRepo, observer)
	statsSvc := service.NewStatsService(leadRepo, dealRepo, projectRepo)

	// Wire pipeline collaborators
	sourcing, err := source.NewDirSource(cfg.Intake.LeadsDir, logger)
	if err != nil {
		return err
	}
	messenger, err := outbox.New(cfg.Intake.OutboxDir, logger)
	if err != nil {
		return err
	}

	app := &cli.App{
		Leads:    leadSvc,
		Deals:    dealSvc,
		Projects: projectSvc,
		Stats:    statsSvc,

		Orchestrator: pipeline.NewOrchestrator(sourcing, messenger, leadSvc, dealSvc,
			projectSvc, pipeline.NewSLAPolicy(cfg.Pipeline.SLA), logger),
		Server: server.New(database, statsSvc, logger),
		Config: cfg,
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// newLogger writes human-readable logs to an interactive terminal and JSON
// lines otherwise, so piped output stays machine-parseable.
func newLogger() *slog.Logger {
	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}
