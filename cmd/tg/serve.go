package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/todograph/internal/config"
	"github.com/alfredjeanlab/todograph/internal/events"
	"github.com/alfredjeanlab/todograph/internal/graph"
	"github.com/alfredjeanlab/todograph/internal/server"
	"github.com/alfredjeanlab/todograph/internal/store/postgres"
	tgsync "github.com/alfredjeanlab/todograph/internal/sync"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the todograph HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (TODOGRAPH_NATS_URL not set)")
		}
		defer publisher.Close()

		srv := server.New(store, graph.NewService(store), publisher)
		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: srv.NewHTTPHandler(cfg.AuthToken),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Background JSONL backups to S3 when a bucket is configured.
		syncCtx, syncCancel := context.WithCancel(context.Background())
		defer syncCancel()
		if cfg.SyncInterval > 0 && cfg.SyncS3Bucket != "" {
			dest, err := tgsync.NewS3Destination(syncCtx, tgsync.S3Options{
				Bucket:   cfg.SyncS3Bucket,
				Key:      cfg.SyncS3Key,
				Region:   cfg.SyncS3Region,
				Endpoint: cfg.SyncS3Endpoint,
			})
			if err != nil {
				logger.Error("failed to create S3 sync destination", "err", err)
			} else {
				scheduler := tgsync.NewScheduler(store, dest, cfg.SyncInterval, logger)
				go scheduler.Run(syncCtx)
			}
		}

		// Block until SIGINT/SIGTERM, then drain.
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP shutdown error", "err", err)
		}
		return nil
	},
}
