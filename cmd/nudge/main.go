package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/nudgekit/nudge/internal/cli"
	"github.com/nudgekit/nudge/internal/config"
	"github.com/nudgekit/nudge/internal/db"
	"github.com/nudgekit/nudge/internal/delivery"
	"github.com/nudgekit/nudge/internal/repository"
	"github.com/nudgekit/nudge/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	logRepo := repository.NewSQLiteReminderLogRepo(database)

	// Wire unit of work for the send-and-record transaction
	uow := db.NewSQLiteUnitOfWork(database)

	deliverer := delivery.NewLogDeliverer(os.Stderr)

	var observers []service.UseCaseObserver
	if cfg.LogTicks {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	projectSvc := service.NewProjectService(projectRepo)
	app := &cli.App{
		Projects:  projectSvc,
		Sessions:  service.NewSessionService(sessionRepo, projectSvc),
		Reminders: service.NewReminderService(sessionRepo, projectRepo, logRepo, uow, deliverer, cfg.AppBaseURL, cfg.SenderName, observers...),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
