package dto

import (
	"github.com/plastinin/recipefinder/internal/domain"
)

// AddCartItemRequest запрос на добавление продукта в корзину
type AddCartItemRequest struct {
	FdcID       int64  `json:"fdc_id"`
	Description string `json:"description"`
	BrandOwner  string `json:"brand_owner,omitempty"`
}

// ToDomain конвертирует запрос в доменную модель
func (r AddCartItemRequest) ToDomain() domain.GroceryItem {
	return domain.GroceryItem{
		FdcID:       r.FdcID,
		Description: r.Description,
		BrandOwner:  r.BrandOwner,
	}
}

// CartItemResponse позиция корзины
type CartItemResponse struct {
	FdcID       int64  `json:"fdc_id"`
	Description string `json:"description"`
	BrandOwner  string `json:"brand_owner,omitempty"`
	Quantity    int    `json:"quantity"`
}

// CartResponse корзина пользователя
type CartResponse struct {
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int                `json:"total_quantity"`
}

// CartItemsFromDomain конвертирует позиции корзины в DTO
func CartItemsFromDomain(items []domain.CartItem) []CartItemResponse {
	result := make([]CartItemResponse, len(items))
	for i, item := range items {
		result[i] = CartItemResponse{
			FdcID:       item.FdcID,
			Description: item.Description,
			BrandOwner:  item.BrandOwner,
			Quantity:    item.Quantity,
		}
	}
	return result
}

// CartFromDomain конвертирует корзину в DTO
func CartFromDomain(items []domain.CartItem) *CartResponse {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return &CartResponse{
		Items:         CartItemsFromDomain(items),
		TotalQuantity: total,
	}
}

// DailyValueRequest рассчитанные суточные нормы
type DailyValueRequest struct {
	DailyValue []domain.DailyValueEntry `json:"daily_value"`
}

// ChartRequest нутриенты продуктов для построения графика
type ChartRequest struct {
	Nutrients []domain.NutrientAmount `json:"nutrients"`
}

// ChartResponse потребление нутриентов в процентах от нормы
type ChartResponse struct {
	Period      string   `json:"period"`
	Labels      []string `json:"labels"`
	Percentages []int    `json:"percentages"`
}

// ChartFromDomain конвертирует график в DTO
func ChartFromDomain(chart domain.IntakeChart) *ChartResponse {
	return &ChartResponse{
		Period:      string(chart.Period),
		Labels:      chart.Labels,
		Percentages: chart.Percentages,
	}
}
