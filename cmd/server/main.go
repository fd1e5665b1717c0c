package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/talkgest/internal/api"
	"github.com/dgallion1/talkgest/internal/cache"
	"github.com/dgallion1/talkgest/internal/config"
	"github.com/dgallion1/talkgest/internal/parsoid"
	"github.com/dgallion1/talkgest/internal/stats"
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
	fetcher := parsoid.NewClient(cfg.ParsoidURL, cfg.ParsoidTimeout, cfg.MaxHTMLBytes, log)

	var outputCache cache.Cache = cache.Noop{}
	var redisCache *cache.Redis
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Error("redis unavailable", "error", err)
			os.Exit(1)
		}
		redisCache = rc
		outputCache = rc
		log.Info("output cache enabled", "ttl", cfg.CacheTTL.String())
	}

	// Initialize HTTP server.
	srv := api.NewServer(fetcher, outputCache, stats.NewWindow(cfg.StatsWindow), log, cfg)

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

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		fetcher.Close()
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	log.Info("starting talkgest", "port", cfg.Port, "workers", cfg.TopicWorkers)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
