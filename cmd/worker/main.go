package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/plastinin/recipefinder/internal/adapter/queue"
	"github.com/plastinin/recipefinder/internal/adapter/repository"
	"github.com/plastinin/recipefinder/internal/adapter/storage"
	"github.com/plastinin/recipefinder/internal/config"
	"github.com/plastinin/recipefinder/internal/usecase"
	"github.com/plastinin/recipefinder/pkg/logger"
	"go.uber.org/zap"
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

	log.Info("Starting recipefinder receipt worker",
		zap.Int("concurrency", cfg.Worker.Concurrency),
	)

	ctx := context.Background()

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

	orderRepo := repository.NewOrderRepository(dbPool)
	receiptUC := usecase.NewReceiptUseCase(orderRepo, s3Storage, log)

	consumer := queue.NewReceiptConsumer(cfg.Redis, cfg.Worker.Concurrency, receiptUC, log)

	go func() {
		if err := consumer.Start(); err != nil {
			log.Fatal("Failed to start consumer", zap.Error(err))
		}
	}()

	log.Info("Worker started, waiting for orders...")

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down worker...")

	consumer.Stop()

	log.Info("Worker stopped")
}
