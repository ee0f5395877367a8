package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plastinin/recipefinder/internal/domain"
	"go.uber.org/zap"
)

// Receipt квитанция заказа, сохраняемая в S3
type Receipt struct {
	OrderID       string              `json:"order_id"`
	UserID        string              `json:"user_id"`
	OrderedAt     time.Time           `json:"ordered_at"`
	Store         domain.GroceryStore `json:"store"`
	Items         []domain.CartItem   `json:"items"`
	TotalQuantity int                 `json:"total_quantity"`
	IssuedAt      time.Time           `json:"issued_at"`
}

// ReceiptUseCase формирование квитанций заказов (выполняется воркером)
type ReceiptUseCase struct {
	orderRepo      OrderRepository
	receiptStorage ReceiptStorage
	logger         *zap.Logger
}

// NewReceiptUseCase создаёт новый экземпляр ReceiptUseCase
func NewReceiptUseCase(orderRepo OrderRepository, receiptStorage ReceiptStorage, logger *zap.Logger) *ReceiptUseCase {
	return &ReceiptUseCase{
		orderRepo:      orderRepo,
		receiptStorage: receiptStorage,
		logger:         logger,
	}
}

// ProcessOrder формирует квитанцию и сохраняет её ключ в заказе
func (uc *ReceiptUseCase) ProcessOrder(ctx context.Context, orderID uuid.UUID) error {
	uc.logger.Info("Starting receipt generation",
		zap.String("order_id", orderID.String()),
	)

	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}

	// Повторная доставка задачи
	if order.HasReceipt() {
		uc.logger.Warn("Receipt already generated, skipping",
			zap.String("order_id", orderID.String()),
			zap.String("receipt_key", order.ReceiptKey),
		)
		return nil
	}

	data, err := uc.render(order)
	if err != nil {
		return fmt.Errorf("failed to render receipt: %w", err)
	}

	key := domain.ReceiptKey(order)
	if err := uc.receiptStorage.Put(ctx, key, "application/json", data); err != nil {
		return fmt.Errorf("failed to upload receipt: %w", err)
	}

	if err := uc.orderRepo.SetReceiptKey(ctx, order.ID, key); err != nil {
		// Без ссылки в заказе квитанция недостижима
		if delErr := uc.receiptStorage.Delete(ctx, key); delErr != nil {
			uc.logger.Error("Failed to delete orphan receipt",
				zap.String("receipt_key", key),
				zap.Error(delErr),
			)
		}
		return fmt.Errorf("failed to update order: %w", err)
	}

	uc.logger.Info("Receipt generated",
		zap.String("order_id", orderID.String()),
		zap.String("receipt_key", key),
		zap.Int("size", len(data)),
	)

	return nil
}

// render собирает JSON квитанции
func (uc *ReceiptUseCase) render(order *domain.Order) ([]byte, error) {
	store, err := domain.StoreByName(order.StoreToVisit)
	if err != nil {
		// Магазин мог пропасть из каталога после оформления заказа
		store = domain.GroceryStore{Name: order.StoreToVisit}
	}

	return json.MarshalIndent(Receipt{
		OrderID:       order.ID.String(),
		UserID:        order.UserID,
		OrderedAt:     order.OrderedAt,
		Store:         store,
		Items:         order.Items,
		TotalQuantity: order.TotalQuantity(),
		IssuedAt:      time.Now().UTC(),
	}, "", "  ")
}
