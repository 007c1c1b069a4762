package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/times-tables-bot/internal/config"
	"github.com/aliskhannn/times-tables-bot/internal/delivery/health"
	"github.com/aliskhannn/times-tables-bot/internal/delivery/telegram"
	"github.com/aliskhannn/times-tables-bot/internal/logger"
	"github.com/aliskhannn/times-tables-bot/internal/service"
	"github.com/aliskhannn/times-tables-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	token, err := cfg.TelegramToken()
	if err != nil {
		zl.Fatal("TELEGRAM_API_TOKEN is not set", zap.Error(err))
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		zl.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Start the bot",
		},
		{
			Command:     "play",
			Description: "Choose a times table",
		},
		{
			Command:     "table",
			Description: "Choose a table (usage: /table 7)",
		},
		{
			Command:     "count",
			Description: "Choose how many questions (usage: /count 5)",
		},
		{
			Command:     "all",
			Description: "Answer all 12 questions",
		},
		{
			Command:     "go",
			Description: "Start the quiz",
		},
		{
			Command:     "stop",
			Description: "Stop the quiz",
		},
		{
			Command:     "help",
			Description: "Help",
		},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zl.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env != "production"
	zl.Info("authorized", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	quizService := service.NewQuizService(
		storage.NewQuizStorage(),
		service.NewQuestionSelector(),
		cfg.Quiz.DefaultQuestionCount,
		zl,
	)

	janitor := service.NewJanitor(quizService, cfg.Quiz.JanitorSchedule, cfg.Quiz.SessionTTL, zl)
	go func() {
		if err := janitor.Start(ctx); err != nil {
			zl.Error("session janitor failed", zap.Error(err))
		}
	}()

	if cfg.HTTP.Addr != "" {
		srv := health.NewServer(cfg.HTTP.Addr, quizService, zl)
		go func() {
			if err := srv.Run(ctx); err != nil {
				zl.Error("health server failed", zap.Error(err))
			}
		}()
	}

	handler := telegram.NewHandler(bot, zl, quizService)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zl.Fatal("telegram handler failed", zap.Error(err))
	}

	zl.Info("shutdown signal received")
}
