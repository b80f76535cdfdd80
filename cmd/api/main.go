package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"railcanvas/application/proposals"
	"railcanvas/application/registry"
	"railcanvas/application/store"
	"railcanvas/domain/services"
	"railcanvas/infrastructure/assistant"
	"railcanvas/infrastructure/config"
	badgerstore "railcanvas/infrastructure/persistence/badger"
	"railcanvas/interfaces/http/rest"
	"railcanvas/pkg/observability"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Metrics registry
	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector())
	metrics := observability.NewMetrics(promReg)

	// Persistence
	snapshots, err := badgerstore.Open(cfg.DataDir, logger)
	if err != nil {
		logger.Fatal("Failed to open snapshot store", zap.Error(err))
	}
	defer snapshots.Close()

	// Core components
	graphStore := store.NewGraphStore(services.NewConnectionService(logger), logger, metrics)
	reg := registry.NewRegistry(graphStore, snapshots, logger, metrics)
	reg.SetAutosaveDelay(cfg.AutosaveDelay())
	reg.LoadOrDefault(ctx)

	// Advisory source: live channel when configured, rule table always
	rules := assistant.NewRuleResponder(logger)
	var source *assistant.FallbackSource
	if cfg.AssistantEndpoint != "" {
		live := assistant.NewLiveResponder(cfg.AssistantEndpoint, cfg.AssistantSendTimeout(), logger)
		source = assistant.NewFallbackSource(live, rules, logger, metrics)
	} else {
		source = assistant.NewFallbackSource(nil, rules, logger, metrics)
	}

	gateway := proposals.NewGateway(graphStore, logger, metrics)

	// Runtime-tunable overrides
	if cfg.DynamicConfigPath != "" {
		watcher, err := config.NewWatcher(cfg.DynamicConfigPath, logger)
		if err != nil {
			logger.Warn("Dynamic config disabled", zap.Error(err))
		} else {
			defer watcher.Stop()
			watcher.OnChange(func(dc config.DynamicConfig) {
				if dc.AutosaveDelayMS > 0 {
					reg.SetAutosaveDelay(time.Duration(dc.AutosaveDelayMS) * time.Millisecond)
				}
			})
		}
	}

	// HTTP server
	router := rest.NewRouter(graphStore, reg, gateway, source, metricsRegistry(cfg, promReg), logger, cfg.EnableCORS)
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("assistantMode", source.Mode()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	// Flush the working set before the process exits
	reg.Close(shutdownCtx)

	if err := logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}
	log.Println("Server stopped")
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func metricsRegistry(cfg *config.Config, reg *prometheus.Registry) *prometheus.Registry {
	if !cfg.EnableMetrics {
		return nil
	}
	return reg
}
