// Package main is the entry point for the Planta schema migration tool.
// It applies the embedded schema to the configured database backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/planta-io/planta/internal/config"
	"github.com/planta-io/planta/internal/repository/postgres"
	"github.com/planta-io/planta/internal/repository/sqlite"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	flags := flag.NewFlagSet(command, flag.ExitOnError)
	configPath := flags.String("config", "", "path to config file")
	_ = flags.Parse(os.Args[2:])

	switch command {
	case "version":
		fmt.Printf("Planta Migration Tool\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "up":
		if err := runUp(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
			os.Exit(1)
		}

	case "status":
		if err := runStatus(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "status failed: %v\n", err)
			os.Exit(1)
		}

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runUp(configPath string) error {
	cfg := config.MustLoad(configPath)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlite.NewDB(ctx, sqlite.DefaultConfig(cfg.Database.Path), logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			return err
		}
		version, err := db.SchemaVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("sqlite schema at version %d (%s)\n", version, cfg.Database.Path)
		return nil

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			return err
		}
		fmt.Printf("postgres schema up to date (%s/%s)\n", cfg.Database.Host, cfg.Database.Database)
		return nil

	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

func runStatus(configPath string) error {
	cfg := config.MustLoad(configPath)
	logger := zerolog.Nop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlite.NewDB(ctx, sqlite.DefaultConfig(cfg.Database.Path), logger)
		if err != nil {
			return err
		}
		defer db.Close()

		version, err := db.SchemaVersion(ctx)
		if err != nil {
			return err
		}
		if version == 0 {
			fmt.Println("sqlite: no migrations applied")
		} else {
			fmt.Printf("sqlite: schema at version %d\n", version)
		}
		return nil

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Ping(ctx); err != nil {
			return fmt.Errorf("database unreachable: %w", err)
		}
		fmt.Printf("postgres: reachable at %s\n", cfg.Database.Host)
		return nil

	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

func printUsage() {
	fmt.Println(`Planta Migration Tool

Usage:
  planta-migrate <command> [arguments]

Commands:
  up          Apply all pending migrations
  status      Show current schema status
  version     Print version information
  help        Show this help message

Flags:
  -config     Path to a config file (defaults to ./config.yaml lookup)

Environment Variables:
  PLANTA_DATABASE_DRIVER    "sqlite" (default) or "postgres"
  PLANTA_DATABASE_PATH      SQLite database file path
  PLANTA_DATABASE_HOST      PostgreSQL host

Examples:
  planta-migrate up
  planta-migrate up -config ./configs/config.yaml
  planta-migrate status`)
}
