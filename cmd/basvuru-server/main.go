package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/api"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/api/handlers"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/dekont"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/llm"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/repository"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/service"
	"github.com/MahmudHudayiTaner/kafka-proje/pkg/auth"
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
	appLogger.Info("Starting basvuru server")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	applicationRepo := repository.NewApplicationRepository(db, appLogger)
	dekontRepo := repository.NewDekontRepository(db, appLogger)
	adminRepo := repository.NewAdminRepository(db, appLogger)
	paymentRepo := repository.NewPaymentRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)

	generator, closeLLM, err := llm.New(ctx, cfg.LLM, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize llm client", zap.Error(err))
	}
	defer closeLLM()

	extractor := dekont.NewPDFExtractor(appLogger)
	aiExtractor := dekont.NewAIExtractor(generator, cfg.LLM.Timeout, appLogger)
	analyzer := dekont.NewAnalyzer(extractor, aiExtractor, appLogger)

	authService := service.NewAuthService(adminRepo, jwtManager, appLogger)
	dekontService := service.NewDekontService(analyzer, dekontRepo, appLogger)
	applicationService := service.NewApplicationService(applicationRepo, dekontService, cfg.Upload, appLogger)
	paymentService := service.NewPaymentService(paymentRepo, applicationRepo, appLogger)

	if err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		appLogger.Fatal("Failed to seed admin account", zap.Error(err))
	}

	applicationHandler := handlers.NewApplicationHandler(applicationService, appLogger)
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	dekontHandler := handlers.NewDekontHandler(dekontService, appLogger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, appLogger)

	app := api.SetupRouter(applicationHandler, authHandler, dekontHandler, paymentHandler, jwtManager, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
