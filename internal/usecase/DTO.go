package usecase

import (
	"github.com/google/uuid"
	"github.com/plastinin/recipefinder/internal/domain"
)

// SearchOptions параметры постраничного поиска
type SearchOptions struct {
	PageSize    int // Результатов на странице
	SearchLimit int // Потолок результатов, из него считается число страниц
}

// SearchSnapshot состояние поиска, отдаваемое клиенту
type SearchSnapshot struct {
	SessionID uuid.UUID
	State     domain.QueryState
	Results   domain.ResultSlice
	Window    domain.PageWindow
	// Ошибка последнего запроса; результаты при этом остаются от предыдущего успешного
	LastError error
}

// PlaceOrderInput входные данные для оформления заказа
type PlaceOrderInput struct {
	UserID       string
	StoreToVisit string
}

// OrderDetails заказ со ссылкой на квитанцию
type OrderDetails struct {
	Order      *domain.Order
	ReceiptURL string // Пусто, пока воркер не сформировал квитанцию
}
