package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/consite/inventory-service/config"
	auditRecorder "github.com/consite/inventory-service/internal/audit/recorder"
	"github.com/consite/inventory-service/internal/auth"
	authH "github.com/consite/inventory-service/internal/auth/handler"
	"github.com/consite/inventory-service/internal/dashboard"
	dashH "github.com/consite/inventory-service/internal/dashboard/handler"
	invH "github.com/consite/inventory-service/internal/inventory/handler"
	invRepoPkg "github.com/consite/inventory-service/internal/inventory/repository"
	invUCPkg "github.com/consite/inventory-service/internal/inventory/usecase"
	locH "github.com/consite/inventory-service/internal/location/handler"
	locRepoPkg "github.com/consite/inventory-service/internal/location/repository"
	locUCPkg "github.com/consite/inventory-service/internal/location/usecase"
	notifH "github.com/consite/inventory-service/internal/notify/handler"
	notifStore "github.com/consite/inventory-service/internal/notify/store"
	"github.com/consite/inventory-service/internal/pkg/broker"
	"github.com/consite/inventory-service/internal/pkg/cache"
	"github.com/consite/inventory-service/internal/pkg/logger"
	"github.com/consite/inventory-service/internal/pkg/postgres"
	"github.com/consite/inventory-service/internal/pkg/search"
	prodH "github.com/consite/inventory-service/internal/product/handler"
	prodRepoPkg "github.com/consite/inventory-service/internal/product/repository"
	prodUCPkg "github.com/consite/inventory-service/internal/product/usecase"
	reqH "github.com/consite/inventory-service/internal/request/handler"
	reqRepoPkg "github.com/consite/inventory-service/internal/request/repository"
	reqUCPkg "github.com/consite/inventory-service/internal/request/usecase"
	"github.com/consite/inventory-service/internal/server"
	userRepoPkg "github.com/consite/inventory-service/internal/user/repository"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	logConfig := &logger.Config{
		IsDevelopment:     cfg.Server.AppEnv == "development",
		Level:             cfg.Logger.Level,
		Encoding:          cfg.Logger.Encoding,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	db, err := postgres.New(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	producer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer producer.Close()
	appLogger.Info("Connected to Kafka producer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (search falls back to SQL)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// Repositories
	userRepo := userRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	reqRepo := reqRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	locRepo := locRepoPkg.NewPGRepository(db)

	// Sinks
	recorder := auditRecorder.NewPGRecorder(db, appLogger)
	notifier := notifStore.NewStore(db, producer, appLogger)

	// Use cases
	tokenManager := auth.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.Issuer, time.Duration(cfg.JWT.TokenTTL)*time.Minute)
	authService := auth.NewService(userRepo, tokenManager, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, locRepo, redisClient, recorder, appLogger)
	reqUC := reqUCPkg.NewRequestUseCase(reqRepo, prodRepo, locRepo, userRepo, notifier, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, userRepo, locRepo, notifier, redisClient, esClient, appLogger)
	locUC := locUCPkg.NewLocationUseCase(locRepo, userRepo, invRepo, appLogger)
	dashUC := dashboard.NewUseCase(locRepo, prodRepo, reqRepo, invRepo, appLogger)

	handlers := server.Handlers{
		Auth:         authH.NewAuthHandler(authService),
		Inventory:    invH.NewInventoryHandler(invUC),
		Request:      reqH.NewRequestHandler(reqUC),
		Product:      prodH.NewProductHandler(prodUC),
		Location:     locH.NewLocationHandler(locUC),
		Notification: notifH.NewNotificationHandler(notifier),
		Dashboard:    dashH.NewDashboardHandler(dashUC),
	}

	router := server.NewRouter(tokenManager, userRepo, recorder, handlers)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPPort,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.Server.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
