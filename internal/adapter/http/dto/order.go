package dto

import (
	"time"

	"github.com/plastinin/recipefinder/internal/domain"
	"github.com/plastinin/recipefinder/internal/usecase"
)

// PlaceOrderRequest запрос на оформление заказа
type PlaceOrderRequest struct {
	StoreToVisit string `json:"store_to_visit"`
}

// OrderResponse ответ с информацией о заказе
type OrderResponse struct {
	ID            string             `json:"id"`
	OrderedAt     time.Time          `json:"ordered_at"`
	StoreToVisit  string             `json:"store_to_visit"`
	Cart          []CartItemResponse `json:"cart"`
	TotalQuantity int                `json:"total_quantity"`
	ReceiptReady  bool               `json:"receipt_ready"`
	ReceiptURL    string             `json:"receipt_url,omitempty"`
}

// OrderFromDomain конвертирует доменную модель в DTO
func OrderFromDomain(order *domain.Order) *OrderResponse {
	return &OrderResponse{
		ID:            order.ID.String(),
		OrderedAt:     order.OrderedAt,
		StoreToVisit:  order.StoreToVisit,
		Cart:          CartItemsFromDomain(order.Items),
		TotalQuantity: order.TotalQuantity(),
		ReceiptReady:  order.HasReceipt(),
	}
}

// OrderDetailsFromUseCase конвертирует заказ со ссылкой на квитанцию в DTO
func OrderDetailsFromUseCase(details *usecase.OrderDetails) *OrderResponse {
	resp := OrderFromDomain(details.Order)
	resp.ReceiptURL = details.ReceiptURL
	return resp
}

// OrderListResponse ответ со списком заказов
type OrderListResponse struct {
	Orders     []*OrderResponse `json:"orders"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// OrderListFromDomain конвертирует результат списка в DTO
func OrderListFromDomain(result *domain.OrderListResult) *OrderListResponse {
	orders := make([]*OrderResponse, len(result.Orders))
	for i, order := range result.Orders {
		orders[i] = OrderFromDomain(order)
	}

	return &OrderListResponse{
		Orders:     orders,
		Total:      result.Total,
		Page:       result.Pagination.Page,
		PageSize:   result.Pagination.PageSize,
		TotalPages: result.Pagination.TotalPages(result.Total),
	}
}

// StoreResponse магазин из каталога
type StoreResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Option string `json:"option"`
}

// StoresFromDomain конвертирует каталог магазинов в DTO
func StoresFromDomain(stores []domain.GroceryStore) []StoreResponse {
	result := make([]StoreResponse, len(stores))
	for i, s := range stores {
		result[i] = StoreResponse{ID: s.ID, Name: s.Name, URL: s.URL, Option: s.Option}
	}
	return result
}
