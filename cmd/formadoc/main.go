package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"formadoc/internal/api"
	"formadoc/internal/api/handlers"
	"formadoc/internal/repository"
	"formadoc/internal/service"
	"formadoc/pkg/config"
	"formadoc/pkg/logger"
	"formadoc/pkg/metrics"
	"formadoc/pkg/postgres"

	"go.uber.org/zap"
)

const serviceName = "formadoc"

// @title FormaDoc API
// @version 1.0
// @description Service de vérification des documents d'onboarding des formateurs

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting FormaDoc service")

	m := metrics.New(serviceName)

	// The audit database is optional: without it the pipeline still answers,
	// it just keeps no review queue.
	ctx := context.Background()
	var checkRepo *repository.CheckRepository
	if cfg.Database.Enabled() {
		db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := postgres.InitSchema(ctx, db); err != nil {
			appLogger.Fatal("Failed to initialize database schema", zap.Error(err))
		}

		checkRepo = repository.NewCheckRepository(db, appLogger)
	} else {
		appLogger.Warn("Audit database disabled, verdicts will not be persisted")
	}

	// The LLM is optional too: extraction falls back to the regex pass.
	var llmService *service.LLMService
	if cfg.GigaChat.Enabled() {
		llmService, err = service.NewLLMService(&cfg.GigaChat, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
		}
		defer llmService.Close()
	} else {
		appLogger.Warn("GigaChat disabled, AI extraction and vision fallback unavailable")
	}

	var ocrSpace *service.OCRSpaceClient
	if cfg.OCRSpace.Enabled() {
		ocrSpace = service.NewOCRSpaceClient(&cfg.OCRSpace, appLogger)
	} else {
		appLogger.Warn("OCR.space disabled, image documents will use local OCR only")
	}

	ocrService := service.NewOCRService(ocrSpace, llmService, m, serviceName, appLogger)

	// Optional collaborators go in as untyped nil so the services' nil checks
	// see a nil interface, not a nil pointer in a non-nil interface.
	checkService := service.NewCheckService(ocrService, nil, m, serviceName, appLogger)
	if checkRepo != nil {
		checkService = service.NewCheckService(ocrService, checkRepo, m, serviceName, appLogger)
	}

	identityService := service.NewIdentityService(ocrService, m, serviceName, appLogger)

	contractService := service.NewContractService(ocrService, nil, m, serviceName, appLogger)
	cvService := service.NewCVService(ocrService, nil, m, serviceName, appLogger)
	if llmService != nil {
		contractService = service.NewContractService(ocrService, llmService, m, serviceName, appLogger)
		cvService = service.NewCVService(ocrService, llmService, m, serviceName, appLogger)
	}

	docHandler := handlers.NewDocumentHandler(checkService, identityService, contractService, cvService, ocrService, appLogger)
	auditHandler := handlers.NewAuditHandler(checkRepo, appLogger)

	app := api.SetupRouter(docHandler, auditHandler, m, appLogger)

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
