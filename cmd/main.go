package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/hireloop/interview-api/config"
	"github.com/hireloop/interview-api/internal/constants"
	"github.com/hireloop/interview-api/internal/handler"
	"github.com/hireloop/interview-api/internal/middleware"
	"github.com/hireloop/interview-api/internal/repository"
	"github.com/hireloop/interview-api/internal/router"
	"github.com/hireloop/interview-api/internal/service"
	"github.com/hireloop/interview-api/pkg/database"
	"github.com/hireloop/interview-api/pkg/logger"
	"github.com/hireloop/interview-api/pkg/pool"
	"github.com/hireloop/interview-api/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize Zap logger
	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	db, err := database.NewPostgresDB(config)
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	// Run auto migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	// Bootstrap the admin account
	if err := database.SeedAdminUser(db, config.Admin); err != nil {
		logger.GetLogger().Fatal("Failed to seed admin user", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	responseRepo := repository.NewResponseRepository(db)

	// Redis cache (optional, requests fall through to Postgres when disabled)
	redisClient, err := redis.NewClient(config)
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize Redis client", zap.Error(err))
	}
	defer redisClient.Close()

	logger.GetLogger().Info("Redis client initialized",
		zap.Bool("enabled", redisClient.IsEnabled()),
	)

	cacheService := service.NewCacheService(redisClient)

	// Services
	jwtService := service.NewJWTService(config.JWT.Secret, config.JWT.ExpirationTime)
	userService := service.NewUserService(userRepo, service.NewPasswordService(), jwtService)
	questionService := service.NewQuestionService(questionRepo, categoryRepo, cacheService)

	scoringService := service.NewScoringService(config.Scoring)
	feedbackGenerator, err := service.NewFeedbackGenerator()
	if err != nil {
		logger.GetLogger().Fatal("Failed to build feedback templates", zap.Error(err))
	}

	// Background scoring workers
	workerPool := pool.NewWorkerPool(pool.PoolConfig{
		Workers:         config.Scoring.Workers,
		QueueSize:       config.Scoring.QueueSize,
		ShutdownTimeout: 30 * time.Second,
	}, logger.GetLogger())

	// An unset scoring endpoint leaves transcription disabled; audio
	// submissions are then marked failed instead of hanging.
	var transcriber service.Transcriber
	if rt := service.NewRemoteTranscriber(config.Scoring); rt != nil {
		transcriber = rt
	}

	responseService := service.NewResponseService(
		responseRepo,
		questionRepo,
		scoringService,
		feedbackGenerator,
		workerPool,
		cacheService,
		transcriber,
		config.Upload,
	)

	// Handlers
	authHandler := handler.NewAuthHandler(userService)
	interviewHandler := handler.NewInterviewHandler(questionService, responseService)
	adminHandler := handler.NewAdminHandler(questionService, responseService, userService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, userService)

	engine := router.NewRouter(
		authHandler,
		interviewHandler,
		adminHandler,
		healthHandler,
		authMiddleware,
		config,
	).SetupRoutes()

	server := &http.Server{
		Addr:         ":" + config.App.Port,
		Handler:      engine,
		ReadTimeout:  config.App.Timeout,
		WriteTimeout: config.App.Timeout,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().Error("Server shutdown failed", zap.Error(err))
	}

	// Drain in-flight scoring jobs before the DB connection goes away
	if err := workerPool.Shutdown(); err != nil {
		logger.GetLogger().Warn("Worker pool shutdown incomplete", zap.Error(err))
	}

	logger.GetLogger().Info("Server stopped")
}
