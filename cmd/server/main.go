package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"legalens-backend/analyzer"
	"legalens-backend/config"
	"legalens-backend/handlers"
	"legalens-backend/repository"
	"legalens-backend/service"
	"legalens-backend/storage"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	cfg, err := config.Load(os.Getenv("LEGALENS_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := initPostgres(cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to initialize Postgres", zap.Error(err))
	}
	defer db.Close()
	logger.Info("Postgres connection established")

	artifactStorage, err := storage.New(storage.Config{
		Type:         storage.Type(cfg.Storage.Type),
		LocalPath:    cfg.Storage.LocalPath,
		S3Bucket:     cfg.Storage.S3Bucket,
		S3Region:     cfg.Storage.S3Region,
		AWSAccessKey: cfg.Storage.AWSAccessKey,
		AWSSecretKey: cfg.Storage.AWSSecretKey,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	logger.Info("Storage initialized", zap.String("type", cfg.Storage.Type))

	backend := analyzer.NewClient(cfg.Analyzer.BaseURL, cfg.Analyzer.Timeout, logger)
	artifactRepo := repository.NewArtifactRepository(db)
	sessions := service.NewSessionManager()

	documentService := service.NewDocumentService(
		service.WithAnalyzerBackend(backend),
		service.WithSessionManager(sessions),
		service.WithLogger(logger),
	)
	chatService := service.NewChatService(
		service.WithChatBackend(backend),
		service.WithChatSessionManager(sessions),
		service.WithChatLogger(logger),
	)
	contractService := service.NewContractService(
		service.WithContractBackend(backend),
		service.WithArtifactRepository(artifactRepo),
		service.WithStorage(artifactStorage),
		service.WithContractLogger(logger),
	)

	analysisHandler := handlers.NewAnalysisHandler(documentService)
	chatHandler := handlers.NewChatHandler(chatService)
	contractHandler := handlers.NewContractHandler(contractService)

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Analysis endpoints
		api.POST("/analyze", analysisHandler.AnalyzeDocument)
		api.POST("/compare", analysisHandler.CompareDocuments)
		api.GET("/sessions/:id", analysisHandler.GetSession)

		// Chat endpoints
		api.POST("/sessions/:id/chat", chatHandler.AskQuestion)

		// Contract endpoints
		api.GET("/contract-templates", contractHandler.ListTemplates)
		api.POST("/contracts/generate", contractHandler.GenerateContract)
		api.POST("/contracts/generate-custom", contractHandler.GenerateCustomContract)
		api.GET("/sessions/:id/artifacts", contractHandler.ListSessionArtifacts)
		api.GET("/artifacts/:id", contractHandler.DownloadArtifact)
	}

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	logger.Info("Server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func initPostgres(connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}
	return pool, nil
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
