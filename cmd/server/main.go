package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brandhub/core/internal/app"
	"github.com/brandhub/core/internal/config"
	"github.com/brandhub/core/internal/pkg/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	flag.Parse()

	envErr := godotenv.Load()

	cfg, cfgErr := loadConfig(*configPath)
	dev := cfgErr != nil || cfg.IsDev()
	dir := logger.ResolveDir()
	if cfgErr == nil {
		dir = cfg.LogDir()
	}

	log, err := logger.New(dir, dev)
	if err != nil {
		log, _ = zap.NewProduction()
		log.Warn("file log unavailable, falling back to stdout", zap.Error(err))
	}
	defer log.Sync()

	if cfgErr != nil {
		log.Fatal("failed to load config", zap.Error(cfgErr))
	}
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn("failed to read .env", zap.Error(envErr))
	}

	application, err := app.New(log, cfg)
	if err != nil {
		log.Fatal("failed to initialize app", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              application.Addr(),
		Handler:           application.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	// drafts still waiting on their idle timer are saved here
	application.Shutdown(ctx)
	log.Info("server exited")
}

// loadConfig falls back to the built-in defaults when the file is absent.
func loadConfig(path string) (*config.AppConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return config.Load(path)
}
