package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/plastinin/recipefinder/internal/domain"
	"go.uber.org/zap"
)

// OrderUseCase бизнес-логика заказов
type OrderUseCase struct {
	orderRepo      OrderRepository
	receiptStorage ReceiptStorage
	receiptQueue   ReceiptQueue
	logger         *zap.Logger
}

// NewOrderUseCase создаёт новый экземпляр OrderUseCase
func NewOrderUseCase(
	orderRepo OrderRepository,
	receiptStorage ReceiptStorage,
	receiptQueue ReceiptQueue,
	logger *zap.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:      orderRepo,
		receiptStorage: receiptStorage,
		receiptQueue:   receiptQueue,
		logger:         logger,
	}
}

// Place оформляет заказ из текущей корзины и ставит формирование квитанции в очередь
func (uc *OrderUseCase) Place(ctx context.Context, input PlaceOrderInput) (*domain.Order, error) {
	if input.UserID == "" {
		return nil, domain.ErrEmptyUserID
	}

	order, err := uc.orderRepo.CreateFromCart(ctx, input.UserID, func(cart []domain.GroceryItem) (*domain.Order, error) {
		return domain.NewOrder(input.UserID, input.StoreToVisit, domain.AggregateCart(cart))
	})
	if err != nil {
		if isOrderValidationError(err) {
			return nil, err
		}
		uc.logger.Error("Failed to save order",
			zap.String("user_id", input.UserID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	// Квитанцию можно перевыпустить позже, заказ уже сохранён
	if err := uc.receiptQueue.Enqueue(ctx, order.ID); err != nil {
		uc.logger.Error("Failed to enqueue receipt",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}

	uc.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", order.UserID),
		zap.String("store", order.StoreToVisit),
		zap.Int("items", order.TotalQuantity()),
	)

	return order, nil
}

func isOrderValidationError(err error) bool {
	return errors.Is(err, domain.ErrEmptyCart) ||
		errors.Is(err, domain.ErrUnknownStore) ||
		errors.Is(err, domain.ErrEmptyUserID)
}

// History возвращает историю заказов от новых к старым
func (uc *OrderUseCase) History(ctx context.Context, userID string, pagination domain.Pagination) (*domain.OrderListResult, error) {
	if userID == "" {
		return nil, domain.ErrEmptyUserID
	}

	result, err := uc.orderRepo.List(ctx, userID, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	domain.SortOrdersDesc(result.Orders)
	return result, nil
}

// Get возвращает заказ пользователя со ссылкой на квитанцию
func (uc *OrderUseCase) Get(ctx context.Context, userID string, id uuid.UUID) (*OrderDetails, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Чужой заказ неотличим от несуществующего
	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}

	details := &OrderDetails{Order: order}
	if !order.HasReceipt() {
		return details, nil
	}

	url, err := uc.receiptStorage.GetURL(ctx, order.ReceiptKey)
	if err != nil {
		uc.logger.Warn("Failed to presign receipt URL",
			zap.String("order_id", id.String()),
			zap.Error(err),
		)
		return details, nil
	}
	details.ReceiptURL = url

	return details, nil
}
