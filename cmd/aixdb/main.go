package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/FisherYu0112/Aix-DB/internal/api"
	"github.com/FisherYu0112/Aix-DB/internal/config"
	"github.com/FisherYu0112/Aix-DB/internal/database"
	"github.com/FisherYu0112/Aix-DB/internal/database/repository"
	"github.com/FisherYu0112/Aix-DB/internal/logging"
	"github.com/FisherYu0112/Aix-DB/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Logging.Path), 0o755); err != nil {
		log.Fatalf("mkdir log dir: %v", err)
	}

	logger := logging.New(cfg.Logging.Path, cfg.Logging.Level)
	defer func() { _ = logger.Sync() }()

	if err := database.RunMigrations(cfg.Database.Path, "internal/database/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	turnRepo := repository.NewTurnRepo(db)

	client := api.NewClient(cfg.Server.BaseURL, resolveAPIKey(cfg), time.Duration(cfg.Server.TimeoutSecs)*time.Second)

	p := tea.NewProgram(tui.New(ctx, cfg, client, turnRepo, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

func resolveAPIKey(cfg config.Config) string {
	env := strings.TrimSpace(cfg.Server.APIKeyEnv)
	if env == "" {
		env = "AIXDB_API_KEY"
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return strings.TrimSpace(cfg.Server.APIKey)
}
