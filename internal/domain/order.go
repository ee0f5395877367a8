package domain

import (
	"errors"
	"path"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Ошибки заказов
var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyCart     = errors.New("cart is empty")
)

// Order заказ пользователя
type Order struct {
	ID           uuid.UUID  `json:"id"`
	UserID       string     `json:"user_id"`
	OrderedAt    time.Time  `json:"ordered_at"`
	StoreToVisit string     `json:"store_to_visit"`
	Items        []CartItem `json:"items"`
	ReceiptKey   string     `json:"receipt_key,omitempty"` // Ключ квитанции в S3, пусто пока не готова
}

// NewOrder оформляет заказ из корзины в указанный магазин.
// Название магазина сохраняется в написании каталога.
func NewOrder(userID, storeName string, cart []CartItem) (*Order, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}
	store, err := StoreByName(storeName)
	if err != nil {
		return nil, err
	}

	items := make([]CartItem, len(cart))
	copy(items, cart)

	return &Order{
		ID:           uuid.New(),
		UserID:       userID,
		OrderedAt:    time.Now().UTC(),
		StoreToVisit: store.Name,
		Items:        items,
	}, nil
}

// TotalQuantity общее количество единиц товара в заказе
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// HasReceipt проверяет, сформирована ли квитанция
func (o *Order) HasReceipt() bool {
	return o.ReceiptKey != ""
}

// ReceiptKey ключ квитанции: receipts/year/month/day/order_id.json
func ReceiptKey(o *Order) string {
	return path.Join(
		"receipts",
		o.OrderedAt.Format("2006"),
		o.OrderedAt.Format("01"),
		o.OrderedAt.Format("02"),
		o.ID.String()+".json",
	)
}

// SortOrdersDesc сортирует заказы от новых к старым
func SortOrdersDesc(orders []*Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderedAt.After(orders[j].OrderedAt)
	})
}
