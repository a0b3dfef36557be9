package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/alimgiray/persondir/internal/handlers"
	"github.com/alimgiray/persondir/internal/middleware"
	"github.com/alimgiray/persondir/internal/repositories"
	"github.com/alimgiray/persondir/internal/services"
	"github.com/alimgiray/persondir/pkg/config"
	"github.com/alimgiray/persondir/pkg/database"
	"github.com/alimgiray/persondir/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "persondir",
		Short:         "Person directory and arithmetic HTTP service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration
			if err := config.Load(); err != nil {
				return err
			}
			logger.Init(config.AppConfig.Log.Level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Open(config.AppConfig.Database.Path)
			if err != nil {
				logger.WithError(err).Error("Failed to initialize database")
				return err
			}
			defer db.Close()

			if err := database.Migrate(cmd.Context(), db); err != nil {
				logger.WithError(err).Error("Failed to run migrations")
				return err
			}
			logger.Info("Migrations applied")
			return nil
		},
	})

	return root
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.AppConfig
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize database")
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.WithError(err).Error("Failed to run migrations")
		return err
	}

	// Initialize dependencies
	personRepo := repositories.NewPersonRepository(db)
	personService := services.NewPersonService(personRepo)
	mathService := services.NewMathService()

	routerCfg := handlers.RouterConfig{
		PersonService: personService,
		MathService:   mathService,
		DB:            db,
	}
	if cfg.Metrics.Enabled {
		routerCfg.Metrics = middleware.NewHTTPMetrics(prometheus.DefaultRegisterer)
		routerCfg.Gatherer = prometheus.DefaultGatherer
		routerCfg.MetricsPath = cfg.Metrics.Path
	}

	// Setup server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handlers.NewRouter(routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			logger.WithError(err).Error("Server failed to start")
			return err
		}
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
		return err
	}

	logger.Info("Server stopped")
	return nil
}
