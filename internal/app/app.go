// Package app wires configuration, datasets, services and transport
// into a runnable dashboard server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"chartboard/internal/config"
	"chartboard/internal/dataset"
	"chartboard/internal/errors"
	"chartboard/internal/infrastructure"
	customMiddleware "chartboard/internal/middleware"
	"chartboard/internal/services"
	handlers "chartboard/internal/transport/http"
)

const (
	// Version is reported by the health endpoint.
	Version = "1.0.0"
	AppName = "chartboard"
)

// Application is the main application container.
type Application struct {
	Config  *config.Config
	Router  *chi.Mux
	Server  *http.Server
	Logger  *slog.Logger
	Store   *dataset.Store
	Metrics *infrastructure.Metrics

	MovieService   *services.MovieService
	SpeciesService *services.SpeciesService

	errorHandler *errors.ErrorHandler
}

// NewApplication creates a new application instance with all services wired.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewApplicationWithConfig(cfg)
}

// NewApplicationWithConfig creates an application from an explicit config.
func NewApplicationWithConfig(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version))

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: infrastructure.NewMetrics(),
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices builds the dataset store and the domain services.
func (a *Application) initializeServices() {
	a.Store = dataset.NewStore(a.Config.MoviesPath(), a.Config.SpeciesPath(), a.Logger)
	a.MovieService = services.NewMovieService(a.Store, a.Logger)
	a.SpeciesService = services.NewSpeciesService(a.Store, a.Logger)
	a.errorHandler = errors.NewErrorHandler(a.Logger, false)
}

// setupRouter configures the HTTP router with all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StripSlashes)
	r.Use(a.Metrics.Middleware)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.Compress(5))

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			Logger:         a.Logger,
		}))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.Use(customMiddleware.Timeout(a.Config.Server.WriteTimeout, a.Logger))

	movieHandler := handlers.NewMovieHandler(a.MovieService, a.Logger, a.errorHandler)
	speciesHandler := handlers.NewSpeciesHandler(a.SpeciesService, a.Logger, a.errorHandler)
	chartHandler := handlers.NewChartHandler(a.MovieService, a.SpeciesService, a.Logger, a.errorHandler, a.Metrics)
	exportHandler := handlers.NewExportHandler(a.MovieService, a.Logger, a.errorHandler)
	healthHandler := handlers.NewHealthHandler(a.Store, a.Logger, Version)
	dashboardHandler := handlers.NewDashboardHandler(a.MovieService, a.SpeciesService, a.Logger, a.errorHandler)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/movies", movieHandler.Routes())
		r.Mount("/species", speciesHandler.Routes())
		r.Mount("/export", exportHandler.Routes())
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
	})

	r.Mount("/charts", chartHandler.Routes())
	r.Get("/", dashboardHandler.Dashboard)

	r.Handle("/metrics", a.Metrics.Handler())

	r.NotFound(a.errorHandler.NotFound)
	r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

	a.Router = r
}

// createServer creates the HTTP server.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// warmupDatasets loads both CSVs ahead of the first request and records
// the row gauges. Load failures are logged, not fatal: the dashboard
// serves error banners for the affected dataset.
func (a *Application) warmupDatasets(ctx context.Context) {
	if err := a.Store.Warmup(ctx); err != nil {
		a.Logger.WarnContext(ctx, "dataset warmup incomplete",
			slog.String("error", err.Error()))
	}

	if movies, err := a.Store.Movies(); err != nil {
		a.Metrics.IncDatasetError("movies")
	} else {
		a.Metrics.SetDatasetRows("movies", len(movies))
	}
	if species, err := a.Store.Species(); err != nil {
		a.Metrics.IncDatasetError("species")
	} else {
		a.Metrics.SetDatasetRows("species", len(species))
	}
}

// Start starts the HTTP server and warms the dataset cache.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "starting server",
		slog.Int("port", a.Config.Server.Port),
		slog.String("movies_path", a.Config.MoviesPath()),
		slog.String("species_path", a.Config.SpeciesPath()))

	go a.warmupDatasets(ctx)

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully stops the application.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	infrastructure.CloseLogFile()
	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run runs the application until interrupted.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
