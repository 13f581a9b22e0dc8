package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"heavytime-server/internal/config"
	"heavytime-server/internal/database"
	"heavytime-server/internal/handler"
	"heavytime-server/internal/logger"
	"heavytime-server/internal/middleware"
	"heavytime-server/internal/service"
	"heavytime-server/internal/storage"
	"heavytime-server/migrations"
	"heavytime-server/pkg/migration"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	zap.ReplaceGlobals(zapLogger)
	zapLogger.Info("Logger initialized", zap.String("level", cfg.Logger.Level))

	ctx := context.Background()

	dbPool, err := setupDatabase(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()
	zapLogger.Info("Connected to PostgreSQL")

	migrator := migration.NewMigrator(migration.Config{
		MigrationsPath: ".",
		MigrationsFS:   migrations.FS,
	}, dbPool)
	if err := migrator.Up(ctx); err != nil {
		zapLogger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	imageLister, err := storage.NewS3ImageLister(ctx, cfg.Storage, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	storyRepo := database.NewPgStoryRepository(dbPool, zapLogger)
	poemGenerator := service.NewOpenAIPoemGenerator(cfg.Poem, zapLogger)
	audioNarrator := service.NewFalAudioNarrator(cfg.Fal, zapLogger)
	comicRenderer := service.NewFalComicRenderer(cfg.Fal, zapLogger)
	storyService := service.NewStoryService(storyRepo, poemGenerator, audioNarrator, comicRenderer, zapLogger)
	storyHandler := handler.NewStoryHandler(storyService, poemGenerator, audioNarrator, comicRenderer, imageLister, zapLogger)

	gin.SetMode(gin.ReleaseMode)
	if cfg.AppEnv == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.GinZapLogger(zapLogger))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	corsConfig := cors.DefaultConfig()
	allowedOrigins := splitOrigins(cfg.CORSAllowedOrigins)
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	storyHandler.RegisterRoutes(router)

	// Registered after the application routes so the metrics middleware sees
	// the final route table.
	p.Use(router)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		zapLogger.Info("HTTP server listening", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Graceful shutdown failed", zap.Error(err))
	}

	zapLogger.Info("Server stopped")
}

// setupDatabase creates the connection pool, retrying while the database
// comes up alongside the service.
func setupDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DB.MaxConns)
	poolConfig.MaxConnIdleTime = cfg.DB.IdleTimeout

	maxRetries := 5
	retryDelay := 5 * time.Second

	var dbPool *pgxpool.Pool
	for i := 0; i < maxRetries; i++ {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		dbPool, err = pgxpool.NewWithConfig(connectCtx, poolConfig)
		if err == nil {
			err = dbPool.Ping(connectCtx)
			if err == nil {
				cancel()
				return dbPool, nil
			}
			dbPool.Close()
		}
		cancel()

		logger.Warn("Failed to connect to database",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.Duration("retry_delay", retryDelay),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", maxRetries, err)
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
