package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/christophersalem/hebard-hot-tub/internal/config"
	"github.com/christophersalem/hebard-hot-tub/internal/handlers"
	"github.com/christophersalem/hebard-hot-tub/internal/logger"
	"github.com/christophersalem/hebard-hot-tub/internal/repository"
	"github.com/christophersalem/hebard-hot-tub/internal/repository/db"
	"github.com/christophersalem/hebard-hot-tub/internal/server"
	"github.com/christophersalem/hebard-hot-tub/internal/service"
)

const (
	configDir       = "configs"
	shutdownTimeout = 10 * time.Second
	startupTimeout  = 5 * time.Second
)

// @title        Hot tub event log
// @version      1.0
// @description  Webhook that records pool and spa controller events, newest first, capped at 500 rows.
// @BasePath     /
func main() {
	// load configs/config.yml, .env and HOTTUB_* overrides
	cfg, err := config.Load(configDir)
	if err != nil {
		logger.Get(logger.InfoLevel, logger.ConsoleFormat).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.Log.Level, cfg.Log.Format)

	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	if err := prepareSheet(repos, cfg, log); err != nil {
		log.Fatalw("failed to prepare event log", "err", err)
	}
	services := service.NewService(repos, service.RecorderConfig{
		Revision: cfg.Sheet.Revision,
		MaxRows:  cfg.Sheet.MaxRows,
	})
	apiHandler := handlers.NewHandler(services, log,
		handlers.WithRateLimit(cfg.HTTP.RateLimitPerMinute, cfg.HTTP.RateLimitBurst),
	)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	srv := server.New(port, apiHandler.InitRoutes(), server.Timeouts{
		ReadHeader: cfg.HTTP.ReadHeaderTimeout,
		Write:      cfg.HTTP.WriteTimeout,
		Idle:       cfg.HTTP.IdleTimeout,
	})
	runHTTPServer(srv, port, log)

	waitForShutdown(srv, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	path := cfg.DB.Path
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "hottub.db")
		path = "hottub.db"
	}
	return db.InitDB(path)
}

// prepareSheet writes the header row when configured to and reports the log state.
func prepareSheet(repos *repository.Repository, cfg *config.Config, log *logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if cfg.Sheet.InitHeader {
		created, err := repos.Sheet.EnsureHeader(ctx, cfg.Sheet.Revision.Columns())
		if err != nil {
			return err
		}
		if created {
			log.Infow("event_log_header_created", "revision", cfg.Sheet.Revision.String())
		}
	}

	header, err := repos.Sheet.Header(ctx)
	if err != nil {
		return err
	}
	if len(header) == 0 {
		log.Warnw("event_log_header_missing", "hint", "writes fail until the header row exists")
		return nil
	}
	if want := cfg.Sheet.Revision.Columns(); strings.Join(header, "|") != strings.Join(want, "|") {
		log.Warnw("event_log_header_mismatch",
			"header", header, "revision", cfg.Sheet.Revision.String(), "revision_columns", want)
	}
	return nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, log *logger.Logger) {
	go func() {
		log.Infow("http_server_starting", "port", port)
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
