package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/prochunk/internal/api"
	"github.com/dgallion1/prochunk/internal/config"
	"github.com/dgallion1/prochunk/internal/embed"
	"github.com/dgallion1/prochunk/internal/pipeline"
	"github.com/dgallion1/prochunk/internal/store"
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

	// Initialize clients.
	embedder, err := embed.New(embed.Config{
		BaseURL:           cfg.OllamaURL,
		Model:             cfg.EmbedModel,
		RequestsPerSecond: cfg.EmbedRPS,
	})
	if err != nil {
		log.Error("failed to init embedder", "error", err)
		os.Exit(1)
	}

	st, err := store.New(ctx, store.Config{
		ConnString: cfg.DatabaseURL,
		TableName:  cfg.ChunkTable,
		VectorDim:  cfg.VectorDim,
	})
	if err != nil {
		log.Error("failed to init chunk store", "error", err)
		os.Exit(1)
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, embedder, st, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, embedder, st, log, cfg)

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

		st.Close()
	}()

	log.Info("starting prochunk", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
