package domain

import (
	"errors"
	"strings"
)

var ErrUnknownStore = errors.New("unknown grocery store")

// GroceryStore магазин, в котором можно забрать или заказать продукты
type GroceryStore struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Option string `json:"option"` // Способ получения: самовывоз, доставка
}

var groceryStores = []GroceryStore{
	{ID: 1, Name: "Costco", URL: "https://www.costco.ca/grocery-household.html", Option: "7-10 day delivery"},
	{ID: 2, Name: "Save-On-Foods", URL: "https://shop.saveonfoods.com/", Option: "pickup/delivery"},
	{ID: 3, Name: "Walmart", URL: "https://www.walmart.ca/en/grocery/N-117", Option: "time-slotted delivery"},
	{ID: 4, Name: "IGA", URL: "https://shop.igabc.com/", Option: "pickup only"},
	{ID: 5, Name: "H-Mart", URL: "https://hmartpickup.ca/", Option: "pickup only"},
	{ID: 6, Name: "T&T Supermarket", URL: "https://www.tntsupermarket.com/", Option: "pickup only"},
	{ID: 7, Name: "No Frills", URL: "https://www.nofrills.ca/", Option: "pickup only"},
	{ID: 8, Name: "Real Canadian Superstore", URL: "https://www.realcanadiansuperstore.ca/", Option: "pickup/delivery"},
}

// GroceryStores возвращает каталог магазинов
func GroceryStores() []GroceryStore {
	stores := make([]GroceryStore, len(groceryStores))
	copy(stores, groceryStores)
	return stores
}

// StoreByName ищет магазин по названию без учёта регистра
func StoreByName(name string) (GroceryStore, error) {
	name = strings.TrimSpace(name)
	for _, s := range groceryStores {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return GroceryStore{}, ErrUnknownStore
}
