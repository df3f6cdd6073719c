package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"weekly-meal-planner/internal/catalog"
	"weekly-meal-planner/internal/config"
	"weekly-meal-planner/internal/server"
)

func main() {
	// .env is optional, real env vars win.
	_ = godotenv.Load()

	cfg := config.NewFromEnv()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// A broken or missing catalog degrades to an empty meal list with a
	// diagnostic instead of refusing to start.
	cat, catErr := loadCatalog(cfg.CatalogPath, logger)

	srv := server.New(logger, cat, catErr, cfg.CatalogPath)

	httpSrv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("starting meal planner",
			zap.String("addr", cfg.ListenAddr),
			zap.String("catalog", cfg.CatalogPath),
			zap.Int("meals", cat.Len()),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func loadCatalog(path string, logger *zap.Logger) (*catalog.Catalog, string) {
	cat, err := catalog.Load(path)
	if err != nil {
		logger.Warn("catalog unavailable, starting with no meals", zap.Error(err))
		return catalog.Empty(), err.Error()
	}
	return cat, ""
}
