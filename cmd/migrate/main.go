package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/folio/backend/internal/config"
	"github.com/folio/backend/internal/database"
	"github.com/folio/backend/internal/logging"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  up        apply all pending migrations (default)
  down      roll back the most recent migration
  version   print the current schema version`)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logging.Fatal("failed to load config", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			logging.Fatal("migration failed", "error", err)
		}
		slog.Info("migrations completed")
	case "down":
		if err := database.RollbackOne(cfg.DatabaseURL); err != nil {
			logging.Fatal("rollback failed", "error", err)
		}
		slog.Info("rolled back one migration")
	case "version":
		v, dirty, err := database.Version(cfg.DatabaseURL)
		if err != nil {
			logging.Fatal("read version failed", "error", err)
		}
		slog.Info("schema version", "version", v, "dirty", dirty)
	default:
		usage()
	}
}
