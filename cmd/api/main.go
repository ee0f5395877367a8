package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/plastinin/recipefinder/internal/adapter/edamam"
	"github.com/plastinin/recipefinder/internal/adapter/http/handler"
	"github.com/plastinin/recipefinder/internal/adapter/queue"
	"github.com/plastinin/recipefinder/internal/adapter/repository"
	"github.com/plastinin/recipefinder/internal/adapter/storage"
	"github.com/plastinin/recipefinder/internal/config"
	"github.com/plastinin/recipefinder/internal/usecase"
	"github.com/plastinin/recipefinder/pkg/logger"
	"go.uber.org/zap"

	apphttp "github.com/plastinin/recipefinder/internal/adapter/http"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Инициализируем логгер
	log := logger.Must(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	log.Info("Starting recipefinder API",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Int("page_size", cfg.Search.PageSize),
		zap.Int("total_pages", cfg.Search.TotalPages()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем PostgreSQL
	dbPool, err := repository.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	if err := repository.Migrate(ctx, dbPool); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Connected to PostgreSQL")

	// Инициализируем S3 Storage
	s3Storage, err := storage.NewS3Storage(ctx, cfg.S3)
	if err != nil {
		log.Fatal("Failed to connect to S3", zap.Error(err))
	}
	log.Info("Connected to S3",
		zap.String("endpoint", cfg.S3.Endpoint),
		zap.String("bucket", cfg.S3.Bucket),
	)

	// Инициализируем Queue Producer
	receiptProducer := queue.NewReceiptProducer(cfg.Redis)
	defer receiptProducer.Close()
	log.Info("Connected to Redis",
		zap.String("addr", cfg.Redis.Addr()),
	)

	// Инициализируем клиент Edamam
	if cfg.Edamam.AppID == "" || cfg.Edamam.AppKey == "" {
		log.Warn("Edamam credentials are not set, recipe search will fail",
			zap.String("base_url", cfg.Edamam.BaseURL),
		)
	}
	edamamClient := edamam.NewClient(cfg.Edamam, log)

	// Инициализируем репозитории
	profileRepo := repository.NewProfileRepository(dbPool)
	orderRepo := repository.NewOrderRepository(dbPool)

	// Инициализируем use cases
	searchOpts := usecase.SearchOptions{
		PageSize:    cfg.Search.PageSize,
		SearchLimit: cfg.Search.SearchLimit,
	}
	searchUC := usecase.NewSearchUseCase(edamamClient, searchOpts, cfg.Search.SessionTTL, log)
	profileUC := usecase.NewProfileUseCase(profileRepo, log)
	orderUC := usecase.NewOrderUseCase(orderRepo, s3Storage, receiptProducer, log)
	clientStateUC := usecase.NewClientStateUseCase(cfg.Session.TTL, log)

	// Создаём роутер
	router := apphttp.NewRouter(apphttp.Handlers{
		Search:  handler.NewSearchHandler(searchUC, log),
		Profile: handler.NewProfileHandler(profileUC, log),
		Order:   handler.NewOrderHandler(orderUC, log),
		Store:   handler.NewStoreHandler(log),
		Session: handler.NewSessionHandler(clientStateUC, log),
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"postgres": dbPool.Ping,
		}),
	}, log)

	// Создаём HTTP сервер
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("HTTP server starting",
			zap.String("addr", cfg.Server.Addr()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
