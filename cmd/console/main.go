package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mysterioushouse/server/internal/config"
	"github.com/mysterioushouse/server/internal/house"
	"github.com/mysterioushouse/server/internal/logger"
	"github.com/mysterioushouse/server/internal/narration"
	"github.com/mysterioushouse/server/internal/profile"
	"github.com/mysterioushouse/server/internal/storage"
)

func main() {
	serverConfigFile := flag.String("config", "data/server.yaml", "Path to server config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	driver := flag.String("store", "", "Profile store driver (memory, sqlite, postgres, redis); defaults to the config's")
	locale := flag.String("locale", "en-US", "Narration locale")
	user := flag.String("user", "", "Player id; a new one is generated when empty")
	flag.Parse()

	// The terminal belongs to the UI; logs go to the file only.
	logConfig, err := logger.LoadConfig(*loggingConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load logging config: %v\n", err)
		os.Exit(1)
	}
	logConfig.ConsoleEnabled = false
	if err := logger.Initialize(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*serverConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *driver != "" {
		cfg.Storage.Driver = *driver
	}

	var catalog *narration.Catalog
	if cfg.Narration.CatalogDir == "" {
		catalog, err = narration.Load()
	} else {
		catalog, err = narration.LoadDir(cfg.Narration.CatalogDir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load narration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := storage.Open(ctx, cfg.Storage)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open profile store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	playerID := *user
	if playerID == "" {
		playerID = "console-" + uuid.NewString()
	}

	game := &game{
		engine:   house.NewEngine(profile.NewService(store)),
		renderer: narration.NewRenderer(catalog, cfg.Narration.AudioBaseURL),
		userID:   playerID,
		locale:   *locale,
		driver:   cfg.Storage.Driver,
	}

	p := tea.NewProgram(NewConsoleUI(game), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
