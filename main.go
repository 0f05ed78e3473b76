package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "net/http/pprof"

	"github.com/giygas/kegg-api/config"
	"github.com/giygas/kegg-api/data"
	"github.com/giygas/kegg-api/keggclient"
	"github.com/giygas/kegg-api/logging"
	"github.com/giygas/kegg-api/scheduler"
	"github.com/giygas/kegg-api/server"
	"github.com/joho/godotenv"
)

func main() {
	// Read the env file; fall back to the executable directory so the
	// binary can be started from anywhere
	if err := godotenv.Load(); err != nil {
		if ex, exErr := os.Executable(); exErr == nil {
			godotenv.Load(filepath.Join(filepath.Dir(ex), ".env"))
		}
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLoggerWithRetention("logs", cfg.LogRetentionWeeks)

	logging.Info("Configuration loaded",
		"env", cfg.Env,
		"organism", cfg.Organism,
		"kegg_base_url", cfg.KeggBaseURL)

	dataContainer := data.NewContainer()
	dataContainer.SetServerStartTime(time.Now())

	cache := keggclient.NewResponseCache(cfg.CacheMaxEntries,
		time.Duration(cfg.CacheTTLHours)*time.Hour)
	fetcher := keggclient.New(cfg.KeggBaseURL,
		time.Duration(cfg.HTTPTimeoutSecs)*time.Second, cache)

	sched := scheduler.NewScheduler(dataContainer, fetcher, cfg.Organism)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	srv := server.NewServer(cfg, dataContainer, fetcher)

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}
}
