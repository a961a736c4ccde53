// Package main is the entry point for the Planta admin CLI.
// It provides account management commands against the configured
// database backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/planta-io/planta/internal/config"
	"github.com/planta-io/planta/internal/repository"
	"github.com/planta-io/planta/internal/repository/postgres"
	"github.com/planta-io/planta/internal/repository/sqlite"
	"github.com/planta-io/planta/internal/service"
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

	switch command {
	case "version":
		fmt.Printf("Planta Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "user":
		if len(os.Args) < 3 {
			printUsage()
			os.Exit(1)
		}
		if err := runUser(os.Args[2], os.Args[3:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

	case "token":
		if len(os.Args) < 3 {
			printUsage()
			os.Exit(1)
		}
		if err := runToken(os.Args[2], os.Args[3:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
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

func runUser(sub string, args []string) error {
	flags := flag.NewFlagSet("user "+sub, flag.ExitOnError)
	configPath := flags.String("config", "", "path to config file")
	username := flags.String("username", "", "username")
	email := flags.String("email", "", "email address")
	password := flags.String("password", "", "password (min 8 characters)")
	id := flags.Int64("id", 0, "user id")
	_ = flags.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, closeDB, err := openRepositories(ctx, *configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	userService := service.NewUserService(repos.User, zerolog.Nop())

	switch sub {
	case "create":
		output, err := userService.Register(ctx, service.RegisterInput{
			Username: *username,
			Email:    *email,
			Password: *password,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created user %d (%s)\n", output.User.ID, output.User.Username)
		fmt.Printf("access token: %s\n", output.User.AccessToken)
		return nil

	case "list":
		output, err := userService.List(ctx, service.ListUsersInput{Limit: 100})
		if err != nil {
			return err
		}
		fmt.Printf("%-6s  %-24s  %-32s  %s\n", "ID", "USERNAME", "EMAIL", "CREATED")
		for _, u := range output.Users {
			fmt.Printf("%-6d  %-24s  %-32s  %s\n", u.ID, u.Username, u.Email, u.CreatedAt.Format(time.RFC3339))
		}
		fmt.Printf("%d user(s)\n", output.TotalCount)
		return nil

	case "delete":
		if *id == 0 {
			return fmt.Errorf("-id is required")
		}
		if err := userService.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("deleted user %d\n", *id)
		return nil

	default:
		return fmt.Errorf("unknown user subcommand: %s", sub)
	}
}

func runToken(sub string, args []string) error {
	flags := flag.NewFlagSet("token "+sub, flag.ExitOnError)
	configPath := flags.String("config", "", "path to config file")
	username := flags.String("username", "", "username")
	_ = flags.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, closeDB, err := openRepositories(ctx, *configPath)
	if err != nil {
		return err
	}
	defer closeDB()

	switch sub {
	case "show":
		if *username == "" {
			return fmt.Errorf("-username is required")
		}
		user, err := repos.User.GetByUsername(ctx, *username)
		if err != nil {
			return err
		}
		fmt.Println(user.AccessToken)
		return nil

	default:
		return fmt.Errorf("unknown token subcommand: %s", sub)
	}
}

// openRepositories opens the configured database backend.
func openRepositories(ctx context.Context, configPath string) (repository.Repositories, func(), error) {
	cfg := config.MustLoad(configPath)
	logger := zerolog.Nop()

	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlite.NewDB(ctx, sqlite.DefaultConfig(cfg.Database.Path), logger)
		if err != nil {
			return repository.Repositories{}, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return repository.Repositories{}, nil, err
		}
		return repository.Repositories{
			User:  sqlite.NewUserRepository(db),
			Plant: sqlite.NewPlantRepository(db),
			Event: sqlite.NewEventRepository(db),
		}, func() { _ = db.Close() }, nil

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return repository.Repositories{}, nil, err
		}
		return repository.Repositories{
			User:  postgres.NewUserRepository(db),
			Plant: postgres.NewPlantRepository(db),
			Event: postgres.NewEventRepository(db),
		}, func() { db.Close() }, nil

	default:
		return repository.Repositories{}, nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

func printUsage() {
	fmt.Println(`Planta Admin CLI

Usage:
  planta-admin <command> <subcommand> [arguments]

Commands:
  user create   Create an account (-username, -email, -password)
  user list     List accounts
  user delete   Delete an account (-id)
  token show    Print an account's access token (-username)
  version       Print version information
  help          Show this help message

Flags:
  -config       Path to a config file (defaults to ./config.yaml lookup)

Examples:
  planta-admin user create -username ada -email ada@example.com -password longpass1
  planta-admin user list
  planta-admin token show -username ada`)
}
