package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mysterioushouse/server/internal/config"
	"github.com/mysterioushouse/server/internal/house"
	"github.com/mysterioushouse/server/internal/logger"
	"github.com/mysterioushouse/server/internal/narration"
	"github.com/mysterioushouse/server/internal/profile"
	"github.com/mysterioushouse/server/internal/server"
	"github.com/mysterioushouse/server/internal/storage"
)

func main() {
	serverConfigFile := flag.String("config", "data/server.yaml", "Path to server config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	envFile := flag.String("env", ".env", "Path to .env file (optional)")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load env file %s: %v", *envFile, err)
	}

	logConfig, err := logger.LoadConfig(*loggingConfig)
	if err != nil {
		log.Fatalf("Failed to load logging config: %v", err)
	}
	if err := logger.Initialize(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	logger.Info("Starting Mysterious House server")

	serverCfg, err := config.LoadConfig(*serverConfigFile)
	if err != nil {
		log.Fatalf("Failed to load server config: %v", err)
	}
	if len(serverCfg.WebSocket.AllowedOrigins) == 0 {
		logger.Info("WebSocket CORS policy", "mode", "same-origin")
	} else if len(serverCfg.WebSocket.AllowedOrigins) == 1 && serverCfg.WebSocket.AllowedOrigins[0] == "*" {
		logger.Warning("WebSocket CORS allows all origins (not recommended for production)")
	} else {
		logger.Info("WebSocket CORS policy", "allowed_origins", serverCfg.WebSocket.AllowedOrigins)
	}
	if serverCfg.Skill.ApplicationID == "" {
		logger.Warning("Skill application id not set, accepting requests from any skill")
	}

	catalog, err := loadCatalog(serverCfg.Narration.CatalogDir)
	if err != nil {
		log.Fatalf("Failed to load narration: %v", err)
	}
	logger.Info("Narration loaded", "locales", catalog.Locales())

	startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := storage.Open(startCtx, serverCfg.Storage)
	cancel()
	if err != nil {
		log.Fatalf("Failed to open profile store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close profile store", "error", err)
		}
	}()

	engine := house.NewEngine(profile.NewService(store))
	srv := server.NewServer(serverCfg, engine, narration.NewRenderer(catalog, serverCfg.Narration.AudioBaseURL))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("Mysterious House running", "address", serverCfg.HTTP.Address, "storage", serverCfg.Storage.Driver)
	logger.Info("Press Ctrl+C to shutdown")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigChan:
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server error", "error", err)
		}
	}

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), serverCfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warning("Shutdown did not complete cleanly", "error", err)
	}
	logger.Info("Server stopped")
}

func loadCatalog(dir string) (*narration.Catalog, error) {
	if dir == "" {
		return narration.Load()
	}
	logger.Info("Loading narration overrides", "dir", dir)
	return narration.LoadDir(dir)
}
