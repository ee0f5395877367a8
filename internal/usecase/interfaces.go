package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/plastinin/recipefinder/internal/domain"
)

// PagedQueryClient интерфейс API постраничного поиска рецептов
type PagedQueryClient interface {
	Fetch(ctx context.Context, query string, offset, limit int) (domain.ResultSlice, error)
}

// ProfileRepository интерфейс для работы с профилями пользователей
type ProfileRepository interface {
	GetByID(ctx context.Context, userID string) (*domain.UserProfile, error)
	SaveDailyValue(ctx context.Context, userID string, entries []domain.DailyValueEntry) error
	AddCartItem(ctx context.Context, userID string, item domain.GroceryItem) error
	ClearCart(ctx context.Context, userID string) error
}

// OrderBuilder собирает заказ из заблокированной корзины; пустая корзина передаётся как nil
type OrderBuilder func(cart []domain.GroceryItem) (*domain.Order, error)

// OrderRepository интерфейс для работы с историей заказов
type OrderRepository interface {
	// CreateFromCart блокирует корзину пользователя, собирает из неё заказ через build,
	// сохраняет заказ и очищает корзину в одной транзакции
	CreateFromCart(ctx context.Context, userID string, build OrderBuilder) (*domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, userID string, pagination domain.Pagination) (*domain.OrderListResult, error)
	SetReceiptKey(ctx context.Context, id uuid.UUID, key string) error
}

// ReceiptStorage интерфейс для работы с хранилищем квитанций (S3)
type ReceiptStorage interface {
	Put(ctx context.Context, key string, contentType string, data []byte) error
	Delete(ctx context.Context, key string) error
	GetURL(ctx context.Context, key string) (string, error)
}

// ReceiptQueue интерфейс для постановки формирования квитанций в очередь
type ReceiptQueue interface {
	Enqueue(ctx context.Context, orderID uuid.UUID) error
}
