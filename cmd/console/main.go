package main

import (
	"fmt"
	"os"

	"github.com/aliskhannn/times-tables-bot/internal/config"
	"github.com/aliskhannn/times-tables-bot/internal/delivery/console"
	"github.com/aliskhannn/times-tables-bot/internal/logger"
	"github.com/aliskhannn/times-tables-bot/internal/service"
	"github.com/aliskhannn/times-tables-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Keep the terminal for the quiz unless a level is asked for.
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	svc := service.NewQuizService(
		storage.NewQuizStorage(),
		service.NewQuestionSelector(),
		cfg.Quiz.DefaultQuestionCount,
		log,
	)

	if err := console.NewRootCommand(svc).Execute(); err != nil {
		os.Exit(1)
	}
}
