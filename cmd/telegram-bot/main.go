package main

import (
	"context"
	"log"
	"net/http"

	"ai-growth-planner/internal/app"
	"ai-growth-planner/internal/clipper"
	"ai-growth-planner/internal/config"
	"ai-growth-planner/internal/ghost"
	"ai-growth-planner/internal/llm"
	"ai-growth-planner/internal/logger"
	"ai-growth-planner/internal/metrics"
	"ai-growth-planner/internal/planner"
	"ai-growth-planner/internal/storage"
	"ai-growth-planner/internal/telegram"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramWebhookURL == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN and TELEGRAM_WEBHOOK_URL must be set")
	}

	zlog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	store, err := storage.NewFileStore(cfg.StorePath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	metricsStore, err := metrics.NewStore(cfg.MetricsDBPath)
	if err != nil {
		log.Fatalf("Failed to initialize metrics store: %v", err)
	}
	defer metricsStore.Close()

	textGen, err := llm.NewClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize text provider: %v", err)
	}

	var ghostClient ghost.Client
	if cfg.GhostURL != "" && cfg.GhostAdminKey != "" {
		ghostClient = ghost.NewClient(cfg)
	}

	application := app.NewApp(
		cfg,
		zlog,
		store,
		planner.NewGenerator(textGen),
		clipper.NewClipper(textGen),
		ghostClient,
		metricsStore,
	)

	bot, err := telegram.NewBot(cfg, application, zlog)
	if err != nil {
		log.Fatalf("Failed to initialize telegram bot: %v", err)
	}
	bot.RegisterHandlers()

	zlog.Info("telegram bot listening", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
