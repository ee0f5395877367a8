package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/plastinin/recipefinder/internal/config"
)

// Типы задач
const (
	TypeOrderReceipt = "order:receipt"
)

// QueueReceipts очередь формирования квитанций
const QueueReceipts = "receipts"

// OrderReceiptPayload данные задачи на формирование квитанции
type OrderReceiptPayload struct {
	OrderID string `json:"order_id"`
}

// NewOrderReceiptTask собирает задачу; ID задачи совпадает с ID заказа, поэтому повторная постановка отбрасывается
func NewOrderReceiptTask(orderID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(OrderReceiptPayload{
		OrderID: orderID.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return asynq.NewTask(TypeOrderReceipt, payload,
		asynq.MaxRetry(5),
		asynq.Queue(QueueReceipts),
		asynq.TaskID(orderID.String()),
	), nil
}

// ReceiptProducer отправляет задачи формирования квитанций в очередь
type ReceiptProducer struct {
	client *asynq.Client
}

// NewReceiptProducer создаёт новый экземпляр ReceiptProducer
func NewReceiptProducer(cfg config.RedisConfig) *ReceiptProducer {
	client := asynq.NewClient(redisOpt(cfg))

	return &ReceiptProducer{client: client}
}

// Enqueue ставит формирование квитанции заказа в очередь
func (p *ReceiptProducer) Enqueue(ctx context.Context, orderID uuid.UUID) error {
	task, err := NewOrderReceiptTask(orderID)
	if err != nil {
		return err
	}

	_, err = p.client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	return nil
}

// Close закрывает соединение
func (p *ReceiptProducer) Close() error {
	return p.client.Close()
}

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
