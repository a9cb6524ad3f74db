// AngelaMos | 2026
// main.go

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	//nolint:errcheck // .env is optional
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			slog.Warn("closing migration resources",
				"source_error", sourceErr,
				"db_error", dbErr,
			)
		}
	}()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				slog.Info("database already up to date")
				return nil
			}
			return fmt.Errorf("migrate up: %w", err)
		}
		slog.Info("migrations applied")

	case "down":
		if err := m.Steps(-1); err != nil {
			return fmt.Errorf("rollback last migration: %w", err)
		}
		slog.Info("last migration rolled back")

	case "goto":
		if len(args) < 1 {
			return errors.New("goto requires a version number")
		}
		version, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		if err := m.Migrate(uint(version)); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				slog.Info("database already at version", "version", version)
				return nil
			}
			return fmt.Errorf("migrate to version %d: %w", version, err)
		}
		slog.Info("migrated to version", "version", version)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				slog.Info("no migrations applied yet")
				return nil
			}
			return fmt.Errorf("read version: %w", err)
		}
		slog.Info("current migration version",
			"version", version,
			"dirty", dirty,
		)

	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}

	return nil
}

func printUsage() {
	fmt.Println("usage: migrate [command]")
	fmt.Println("commands:")
	fmt.Println("  up       apply all pending migrations")
	fmt.Println("  down     roll back the last migration")
	fmt.Println("  goto N   migrate to version N")
	fmt.Println("  version  show the current migration version")
}
