// Command rwy-assign watches arrival traffic around a configured airport
// and classifies which runway direction each descending aircraft is most
// likely approaching, serving the results over an HTTP API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	_ "modernc.org/sqlite"

	"github.com/yegors/rwy-assign/internal/adsb"
	"github.com/yegors/rwy-assign/internal/api"
	"github.com/yegors/rwy-assign/internal/config"
	"github.com/yegors/rwy-assign/internal/runways"
	"github.com/yegors/rwy-assign/internal/sequencer"
	"github.com/yegors/rwy-assign/internal/storage/sqlite"
	"github.com/yegors/rwy-assign/pkg/logger"
)

func main() {
	var configPath string
	var logLevel string

	pflag.StringVarP(&configPath, "config", "c", "config.toml", "path to the TOML configuration file")
	pflag.StringVarP(&logLevel, "log-level", "l", "", "override the configured log level (debug, info, warn, error)")
	pflag.Parse()

	if err := run(configPath, logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "rwy-assign: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logLevel string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	log.Info("Starting rwy-assign",
		logger.String("airport", cfg.Station.Airport),
		logger.String("config", configPath),
	)

	table, err := runways.Load(cfg.Station.RunwaysPath, log)
	if err != nil {
		return err
	}

	db, err := sql.Open("sqlite", cfg.Storage.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	storage, err := sqlite.NewAssignmentStorage(db, log)
	if err != nil {
		return err
	}

	client := adsb.NewClient(
		cfg.ADSB.BaseURL,
		cfg.Station.Latitude,
		cfg.Station.Longitude,
		cfg.ADSB.SearchRadiusNM,
		cfg.ADSB.Timeout(),
		log,
	)

	service := sequencer.NewService(
		client,
		table,
		cfg.Scoring.Params(),
		storage,
		cfg.ADSB.FetchInterval(),
		cfg.ADSB.MinSpeedMPS,
		cfg.ADSB.MaxThresholdDistNM,
		log,
	)

	router := api.NewRouter(service, storage, cfg, log)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router.Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := service.Start(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP server listening", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		service.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("Shutdown complete")
	return nil
}
