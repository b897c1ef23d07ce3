package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcHandlers "github.com/wekeepgrowing/launch-revenue/internal/adapter/handler/grpc"
	httpHandlers "github.com/wekeepgrowing/launch-revenue/internal/adapter/handler/http"
	"github.com/wekeepgrowing/launch-revenue/internal/adapter/notifier"
	"github.com/wekeepgrowing/launch-revenue/internal/config"
	domainNotifier "github.com/wekeepgrowing/launch-revenue/internal/domain/notifier"
	"github.com/wekeepgrowing/launch-revenue/internal/infrastructure/crypto"
	"github.com/wekeepgrowing/launch-revenue/internal/infrastructure/database"
	grpcServer "github.com/wekeepgrowing/launch-revenue/internal/infrastructure/grpc"
	httpServer "github.com/wekeepgrowing/launch-revenue/internal/infrastructure/http"
	"github.com/wekeepgrowing/launch-revenue/internal/infrastructure/provider"
	"github.com/wekeepgrowing/launch-revenue/internal/usecase"
	"github.com/wekeepgrowing/launch-revenue/pkg/logger"
	"github.com/wekeepgrowing/launch-revenue/pkg/messaging"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zapLogger = zapLogger.With(
		zap.String("service", cfg.Service.Name),
		zap.String("environment", cfg.Service.Environment),
	)
	defer zapLogger.Sync()

	// Initialize database connection
	db, err := database.NewConnection(context.Background(), &cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations
	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories
	repos := database.NewRepositories(db, zapLogger)

	// Payment platform
	platform, err := provider.NewFactory(cfg, zapLogger).GetPlatformFromString("")
	if err != nil {
		zapLogger.Fatal("Failed to create payment platform", zap.Error(err))
	}

	// OAuth state sealing is optional
	var sealer crypto.EncryptionService
	if cfg.Service.StateSecret != "" {
		aes, err := crypto.NewAESEncryptionService(cfg.Service.StateSecret)
		if err != nil {
			zapLogger.Fatal("Failed to initialize state sealing", zap.Error(err))
		}
		sealer = aes
	}

	// Notifications
	var events domainNotifier.Notifier = notifier.NewLogNotifier(zapLogger)
	if cfg.Redis.Enabled {
		redisClient, err := messaging.NewRedisClient(messaging.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		events = notifier.NewRedisNotifier(redisClient, cfg.Redis.Channel)
	}

	// Use cases
	calculator := usecase.NewRevenueCalculator(platform, zapLogger, time.Now)
	linker := usecase.NewAccountLinker(repos.Product, platform, calculator, usecase.NewStateCodec(sealer), events, zapLogger, time.Now)
	revenueService := usecase.NewRevenueService(repos.Product, calculator, events, zapLogger, time.Now)
	catalogService := usecase.NewCatalogService(repos.Product, platform, zapLogger)

	// Initialize servers
	revenueHandler := httpHandlers.NewRevenueHandler(zapLogger, linker, revenueService, catalogService)
	healthHandler := grpcHandlers.NewHealthHandler(cfg.Service.Name, repos.Product, zapLogger)

	grpcSrv := grpcServer.NewServer(cfg, zapLogger, healthHandler)
	httpSrv := httpServer.NewServer(cfg, zapLogger, revenueHandler, repos.Product)

	// Start servers
	go func() {
		if err := grpcSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start gRPC server", zap.Error(err))
		}
	}()

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Shutdown servers
	if err := grpcSrv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown gRPC server", zap.Error(err))
	}

	if err := httpSrv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Servers shut down successfully")
}
