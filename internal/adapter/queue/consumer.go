package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/plastinin/recipefinder/internal/config"
	"go.uber.org/zap"
)

// ReceiptProcessor формирует квитанцию заказа
type ReceiptProcessor interface {
	ProcessOrder(ctx context.Context, orderID uuid.UUID) error
}

// ReceiptConsumer обрабатывает задачи из очереди квитанций
type ReceiptConsumer struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	processor ReceiptProcessor
	logger    *zap.Logger
}

// NewReceiptConsumer создаёт новый экземпляр ReceiptConsumer
func NewReceiptConsumer(
	cfg config.RedisConfig,
	concurrency int,
	processor ReceiptProcessor,
	logger *zap.Logger,
) *ReceiptConsumer {
	server := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				QueueReceipts: 10,
				"default":     1,
			},
			Logger: newAsynqLogger(logger),
		},
	)

	consumer := &ReceiptConsumer{
		server:    server,
		mux:       asynq.NewServeMux(),
		processor: processor,
		logger:    logger,
	}

	consumer.mux.HandleFunc(TypeOrderReceipt, consumer.handleOrderReceipt)

	return consumer
}

// Start запускает обработку задач
func (c *ReceiptConsumer) Start() error {
	c.logger.Info("Starting receipt consumer")
	return c.server.Start(c.mux)
}

// Stop останавливает обработку задач
func (c *ReceiptConsumer) Stop() {
	c.logger.Info("Stopping receipt consumer")
	c.server.Stop()
	c.server.Shutdown()
}

// handleOrderReceipt обрабатывает задачу формирования квитанции
func (c *ReceiptConsumer) handleOrderReceipt(ctx context.Context, t *asynq.Task) error {
	var payload OrderReceiptPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		c.logger.Error("Failed to unmarshal payload",
			zap.Error(err),
			zap.ByteString("payload", t.Payload()),
		)
		// Повтор не исправит битый payload
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		c.logger.Error("Invalid order ID",
			zap.String("order_id", payload.OrderID),
			zap.Error(err),
		)
		return fmt.Errorf("invalid order ID: %v: %w", err, asynq.SkipRetry)
	}

	c.logger.Info("Processing order receipt task",
		zap.String("order_id", orderID.String()),
	)

	if err := c.processor.ProcessOrder(ctx, orderID); err != nil {
		c.logger.Error("Failed to process order receipt",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// asynqLogger адаптер логгера для asynq
type asynqLogger struct {
	logger *zap.Logger
}

func newAsynqLogger(logger *zap.Logger) *asynqLogger {
	return &asynqLogger{logger: logger.Named("asynq")}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Fatal(fmt.Sprint(args...))
}
