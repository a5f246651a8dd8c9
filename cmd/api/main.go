package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hvac-finder/internal/config"
	"hvac-finder/internal/database"
	"hvac-finder/internal/handler"
	"hvac-finder/internal/metrics"
	"hvac-finder/internal/repository"
	"hvac-finder/internal/router"
	"hvac-finder/internal/service"
	"hvac-finder/internal/zipcode"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("directory_backend", cfg.Directory.Backend).Msg("starting hvac-finder API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics registry served on /metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Load the ZIP code reference table before accepting traffic
	zipDataset := zipcode.NewLazyDataset(newZipLoader(ctx, cfg, logger), cfg.ZipData.ResourceName)
	dataset, err := zipDataset.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load zip code dataset: %w", err)
	}
	if !dataset.IsComplete() {
		logger.Warn().
			Int("zip_codes", dataset.Size()).
			Msg("zip code dataset is a sample; set ZIP_DATA_DIR or enable S3 to load the full table")
	}
	zipValidator := zipcode.NewValidator(dataset, m, logger)

	// Initialize provider directory and service request store
	stores, err := newStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stores.close()
	directory := stores.directory

	if cfg.Directory.Seed {
		if _, err := repository.Seed(ctx, directory, logger); err != nil {
			return fmt.Errorf("failed to seed provider directory: %w", err)
		}
	}

	// Initialize services
	providerService := service.NewProviderService(directory, m, logger)
	serviceRequestService := service.NewServiceRequestService(stores.requests, zipValidator, m, logger)

	// Initialize HTTP handlers
	providerHandler := handler.NewProviderHandler(providerService, logger)
	zipCodeHandler := handler.NewZipCodeHandler(zipValidator, logger)
	serviceRequestHandler := handler.NewServiceRequestHandler(serviceRequestService, logger)

	// Initialize router
	mux := router.New(providerHandler, zipCodeHandler, serviceRequestHandler, cfg.Auth.APIKey, reg, m, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Int("zip_codes", dataset.Size()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newZipLoader picks the local source (a directory or the bundled table) and
// puts S3 in front of it when enabled.
func newZipLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) zipcode.Loader {
	local := zipcode.NewEmbeddedLoader(logger)
	if cfg.ZipData.Dir != "" {
		local = zipcode.NewFileLoader(cfg.ZipData.Dir, logger)
	}

	if !cfg.S3.Enabled {
		logger.Info().Msg("using local zip code dataset (S3 disabled)")
		return local
	}

	s3Loader, err := zipcode.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local zip code dataset only")
		return local
	}

	return zipcode.NewFallbackLoader(s3Loader, local, logger)
}

// storeSet groups the configured persistence backends.
type storeSet struct {
	directory repository.ProviderDirectory
	requests  repository.ServiceRequestStore
	close     func()
}

// newStores builds the provider directory and service request store for the
// configured backend. Both share one pool when postgres is selected.
func newStores(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*storeSet, error) {
	if cfg.Directory.Backend != config.BackendPostgres {
		return &storeSet{
			directory: repository.NewMemoryProviderDirectory(logger),
			requests:  repository.NewMemoryServiceRequestStore(logger),
			close:     func() {},
		}, nil
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := repository.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &storeSet{
		directory: repository.NewProviderRepository(pool, logger),
		requests:  repository.NewServiceRequestRepository(pool, logger),
		close:     pool.Close,
	}, nil
}
