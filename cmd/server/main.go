package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dnordby/reportscan/internal/analyze"
	"github.com/dnordby/reportscan/internal/api"
	"github.com/dnordby/reportscan/internal/config"
	"github.com/dnordby/reportscan/internal/pipeline"
	"github.com/dnordby/reportscan/internal/policy"
	"github.com/dnordby/reportscan/internal/resultstore"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	pol := policy.Default()
	if cfg.PolicyPath != "" {
		var err error
		pol, err = policy.Load(cfg.PolicyPath)
		if err != nil {
			log.Error("invalid scoring policy", "path", cfg.PolicyPath, "error", err)
			os.Exit(1)
		}
		log.Info("loaded scoring policy", "path", cfg.PolicyPath, "version", pol.Version)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients.
	store := resultstore.NewClient(cfg.ResultStoreURL, cfg.ResultStoreAPIKey)
	claude := analyze.NewClaudeClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	stats := analyze.NewLLMStats(cfg.StatsWindow)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, claude, store, stats, pol, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, claude, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
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

		claude.Close()
		store.Close()
	}()

	log.Info("starting reportscan", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
