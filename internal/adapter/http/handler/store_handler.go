package handler

import (
	"net/http"

	"github.com/plastinin/recipefinder/internal/adapter/http/dto"
	"github.com/plastinin/recipefinder/internal/domain"
	"go.uber.org/zap"
)

// StoreHandler отдаёт каталог магазинов
type StoreHandler struct {
	responder
}

// NewStoreHandler создаёт новый StoreHandler
func NewStoreHandler(logger *zap.Logger) *StoreHandler {
	return &StoreHandler{responder: responder{logger: logger}}
}

// List возвращает список магазинов
// GET /api/v1/stores
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, dto.StoresFromDomain(domain.GroceryStores()))
}
