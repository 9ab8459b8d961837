package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nkapre/paperforge/internal/api"
	"github.com/nkapre/paperforge/internal/config"
	"github.com/nkapre/paperforge/internal/ocr"
	"github.com/nkapre/paperforge/internal/pipeline"
	"github.com/nkapre/paperforge/internal/schema"
	"github.com/nkapre/paperforge/internal/session"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := schema.NewRegistry()
	sess, err := session.New(registry, cfg.DefaultSchema)
	if err != nil {
		log.Error("invalid default schema", "error", err)
		os.Exit(1)
	}

	client := ocr.NewClient(cfg.OCRBaseURL, cfg.OCRAPIKey, cfg.OCRModel, cfg.OCRTimeout)

	orch := pipeline.NewOrchestrator(cfg, client, sess, log)
	orch.Start(ctx)

	srv := api.NewServer(sess, registry, orch, log, cfg)

	httpServer := &http.Server{
		Addr:         "127.0.0.1:" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		client.Close()
	}()

	log.Info("starting paperforge", "addr", httpServer.Addr, "schema", cfg.DefaultSchema)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
