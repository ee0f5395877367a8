package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/plastinin/recipefinder/internal/adapter/http/dto"
	"github.com/plastinin/recipefinder/internal/domain"
	"github.com/plastinin/recipefinder/internal/usecase"
	"go.uber.org/zap"
)

// OrderHandler обработчик HTTP запросов для заказов
type OrderHandler struct {
	responder
	orderUC *usecase.OrderUseCase
}

// NewOrderHandler создаёт новый OrderHandler
func NewOrderHandler(orderUC *usecase.OrderUseCase, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		responder: responder{logger: logger},
		orderUC:   orderUC,
	}
}

// Create оформляет заказ из корзины
// POST /api/v1/users/{uid}/orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceOrderRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	order, err := h.orderUC.Place(r.Context(), usecase.PlaceOrderInput{
		UserID:       chi.URLParam(r, "uid"),
		StoreToVisit: req.StoreToVisit,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyUserID):
			h.respondError(w, http.StatusBadRequest, "invalid_user", "User ID is required")
		case errors.Is(err, domain.ErrUnknownStore):
			h.respondError(w, http.StatusBadRequest, "unknown_store", "Store is not in the catalog")
		case errors.Is(err, domain.ErrEmptyCart):
			h.respondError(w, http.StatusConflict, "empty_cart", "Cart is empty")
		default:
			h.logger.Error("Failed to place order", zap.Error(err))
			h.respondError(w, http.StatusInternalServerError, "internal_error", "Failed to place order")
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, dto.OrderFromDomain(order))
}

// List возвращает историю заказов
// GET /api/v1/users/{uid}/orders?page=1&page_size=20
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	pagination := domain.NewPagination(page, pageSize)

	result, err := h.orderUC.History(r.Context(), chi.URLParam(r, "uid"), pagination)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyUserID) {
			h.respondError(w, http.StatusBadRequest, "invalid_user", "User ID is required")
			return
		}
		h.logger.Error("Failed to list orders", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error", "Failed to list orders")
		return
	}

	h.respondJSON(w, http.StatusOK, dto.OrderListFromDomain(result))
}

// GetByID возвращает заказ
// GET /api/v1/users/{uid}/orders/{id}
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseUUID(w, r, "id")
	if !ok {
		return
	}

	details, err := h.orderUC.Get(r.Context(), chi.URLParam(r, "uid"), id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			h.respondError(w, http.StatusNotFound, "not_found", "Order not found")
			return
		}
		h.logger.Error("Failed to get order", zap.String("order_id", id.String()), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error", "Failed to get order")
		return
	}

	h.respondJSON(w, http.StatusOK, dto.OrderDetailsFromUseCase(details))
}
