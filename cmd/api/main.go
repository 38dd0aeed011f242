package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gufengmap/explore-engine/internal/config"
	"github.com/gufengmap/explore-engine/internal/handlers"
	"github.com/gufengmap/explore-engine/internal/logger"
	"github.com/gufengmap/explore-engine/internal/middleware"
	"github.com/gufengmap/explore-engine/internal/services"
	"github.com/gufengmap/explore-engine/internal/storage"
	"github.com/gufengmap/explore-engine/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Explore Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"storage", cfg.Storage)

	var store storage.Storage
	switch strings.ToLower(cfg.Storage) {
	case "redis":
		redisStore := storage.NewRedisStorage(cfg.RedisURL, log)
		storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer storageCancel()
		if err := redisStore.WaitForConnection(storageCtx); err != nil {
			log.Error("Failed to connect to storage", "error", err)
			os.Exit(1)
		}
		log.Info("Storage connection established successfully")
		store = redisStore
	case "memory":
		store = storage.NewMemoryStorage()
		log.Info("Using in-memory storage")
	default:
		log.Error("Invalid storage backend specified", "storage", cfg.Storage, "supported", []string{"memory", "redis"})
		os.Exit(1)
	}

	var llm services.LLMService
	if cfg.DeepSeekAPIKey != "" {
		llm = services.NewDeepSeekService(cfg.DeepSeekAPIKey, cfg.DeepSeekBaseURL)
		log.Info("Using DeepSeek for task generation")
	} else {
		log.Warn("No DeepSeek API key configured, task generation will use templates")
	}

	geo := services.NewAmapService(cfg.AmapAPIKey, cfg.AmapBaseURL, log)
	envService := services.NewEnvironmentService(geo, log)
	taskGen := services.NewTaskGenerator(llm, log)

	sweeper := worker.NewSweeper(store, cfg.SweepInterval, log)
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()
	go sweeper.Run(sweepCtx)

	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler(store, log))

	sessionHandler := handlers.NewSessionHandler(store, log)
	mux.Handle("/v1/session", sessionHandler)
	mux.Handle("/v1/session/", sessionHandler)

	mux.Handle("/v1/action", handlers.NewActionHandler(store, log))
	mux.Handle("/v1/quest", handlers.NewQuestHandler(store, log))
	mux.Handle("/v1/environment/refresh", handlers.NewEnvironmentHandler(store, envService, log))
	mux.Handle("/v1/task/generate", handlers.NewTaskGenHandler(store, envService, taskGen, log))

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")
	sweepCancel()

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
