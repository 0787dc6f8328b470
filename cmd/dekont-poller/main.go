package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/dekont"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/llm"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/mail"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/repository"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/service"
	"github.com/MahmudHudayiTaner/kafka-proje/pkg/config"
	"github.com/MahmudHudayiTaner/kafka-proje/pkg/logger"
	"github.com/MahmudHudayiTaner/kafka-proje/pkg/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting dekont mail poller")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	generator, closeLLM, err := llm.New(ctx, cfg.LLM, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize llm client", zap.Error(err))
	}
	defer closeLLM()

	extractor := dekont.NewPDFExtractor(appLogger)
	aiExtractor := dekont.NewAIExtractor(generator, cfg.LLM.Timeout, appLogger)
	analyzer := dekont.NewAnalyzer(extractor, aiExtractor, appLogger)

	dekontRepo := repository.NewDekontRepository(db, appLogger)
	dekontService := service.NewDekontService(analyzer, dekontRepo, appLogger)

	poller := mail.NewPoller(cfg.Mail, dekontService, cfg.Upload.Dir, appLogger)

	c := cron.New()
	_, err = c.AddFunc(cfg.Mail.PollSchedule, func() {
		if err := poller.Poll(ctx); err != nil {
			appLogger.Error("Mail poll cycle failed", zap.Error(err))
		}
	})
	if err != nil {
		appLogger.Fatal("Invalid poll schedule",
			zap.String("schedule", cfg.Mail.PollSchedule),
			zap.Error(err))
	}

	c.Start()
	appLogger.Info("Poller scheduled", zap.String("schedule", cfg.Mail.PollSchedule))

	<-ctx.Done()

	appLogger.Info("Shutting down poller")
	<-c.Stop().Done()
}
