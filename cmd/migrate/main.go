// Command migrate applies the provider directory schema to PostgreSQL and
// optionally inserts the sample providers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"hvac-finder/internal/config"
	"hvac-finder/internal/database"
	"hvac-finder/internal/repository"
)

func main() {
	seed := flag.Bool("seed", false, "insert sample providers when the directory is empty")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	if err := run(*seed, *timeout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(seed bool, timeout time.Duration) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	dbConfig, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	logger := config.NewLogger(config.LoggerConfig{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: "console",
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	info, err := database.Describe(ctx, pool)
	if err != nil {
		return err
	}

	if err := repository.Migrate(ctx, pool); err != nil {
		return err
	}
	logger.Info().
		Str("database", info.Database).
		Str("server_version", info.Version).
		Msg("schema applied")

	if seed {
		dir := repository.NewProviderRepository(pool, logger)
		added, err := repository.Seed(ctx, dir, logger)
		if err != nil {
			return err
		}
		logger.Info().Int("providers_added", added).Msg("seed completed")
	}

	return nil
}
