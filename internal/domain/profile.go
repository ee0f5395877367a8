package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Ошибки профиля
var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrEmptyUserID        = errors.New("user id cannot be empty")
	ErrInvalidGroceryItem = errors.New("invalid grocery item")
	ErrInvalidDailyValue  = errors.New("invalid daily value")
	ErrDailyValueMissing  = errors.New("daily value is not evaluated yet")
)

// GroceryItem продукт из базы FoodData Central
type GroceryItem struct {
	FdcID       int64  `json:"fdc_id"`
	Description string `json:"description"`
	BrandOwner  string `json:"brand_owner,omitempty"`
}

// Validate проверяет продукт перед добавлением в корзину
func (g GroceryItem) Validate() error {
	if g.FdcID <= 0 {
		return fmt.Errorf("%w: fdc_id must be positive", ErrInvalidGroceryItem)
	}
	if g.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidGroceryItem)
	}
	return nil
}

// CartItem продукт корзины с количеством
type CartItem struct {
	GroceryItem
	Quantity int `json:"quantity"`
}

// DailyValueEntry суточная норма одного нутриента
type DailyValueEntry struct {
	ID    int     `json:"id"`
	Value float64 `json:"value"`
}

// UserProfile документ пользователя
type UserProfile struct {
	UserID     string            `json:"user_id"`
	DailyValue []DailyValueEntry `json:"daily_value"`
	// Корзина хранится плоским списком, повторы означают количество
	Cart      []GroceryItem `json:"cart"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// HasDailyValue проверяет, что пользователь рассчитал суточные нормы
func (p *UserProfile) HasDailyValue() bool {
	return len(p.DailyValue) > 0
}

// AggregateCart сворачивает повторы по fdc_id в количество и сортирует по описанию.
// Для каждого продукта сохраняются поля первого вхождения.
func AggregateCart(items []GroceryItem) []CartItem {
	index := make(map[int64]int, len(items))
	result := make([]CartItem, 0, len(items))

	for _, item := range items {
		if i, ok := index[item.FdcID]; ok {
			result[i].Quantity++
			continue
		}
		index[item.FdcID] = len(result)
		result = append(result, CartItem{GroceryItem: item, Quantity: 1})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Description < result[j].Description
	})

	return result
}

// ValidateDailyValue проверяет таблицу суточных норм: ровно NutrientCount записей с id 1..NutrientCount
func ValidateDailyValue(entries []DailyValueEntry) error {
	if len(entries) != NutrientCount {
		return fmt.Errorf("%w: expected %d entries, got %d", ErrInvalidDailyValue, NutrientCount, len(entries))
	}

	seen := make(map[int]bool, len(entries))
	for _, e := range entries {
		if e.ID < 1 || e.ID > NutrientCount {
			return fmt.Errorf("%w: nutrient id %d out of range", ErrInvalidDailyValue, e.ID)
		}
		if seen[e.ID] {
			return fmt.Errorf("%w: duplicate nutrient id %d", ErrInvalidDailyValue, e.ID)
		}
		if e.Value < 0 {
			return fmt.Errorf("%w: negative value for nutrient %d", ErrInvalidDailyValue, e.ID)
		}
		seen[e.ID] = true
	}

	return nil
}
