package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plastinin/recipefinder/internal/adapter/http/dto"
	"github.com/plastinin/recipefinder/internal/domain"
	"github.com/plastinin/recipefinder/internal/usecase"
	"go.uber.org/zap"
)

// ProfileHandler обработчик HTTP запросов корзины и суточных норм
type ProfileHandler struct {
	responder
	profileUC *usecase.ProfileUseCase
}

// NewProfileHandler создаёт новый ProfileHandler
func NewProfileHandler(profileUC *usecase.ProfileUseCase, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		responder: responder{logger: logger},
		profileUC: profileUC,
	}
}

// GetCart возвращает корзину
// GET /api/v1/users/{uid}/cart
func (h *ProfileHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.profileUC.Cart(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		h.respondProfileError(w, err, "Failed to get cart")
		return
	}

	h.respondJSON(w, http.StatusOK, dto.CartFromDomain(cart))
}

// AddToCart добавляет продукт в корзину
// POST /api/v1/users/{uid}/cart
func (h *ProfileHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	cart, err := h.profileUC.AddToCart(r.Context(), chi.URLParam(r, "uid"), req.ToDomain())
	if err != nil {
		h.respondProfileError(w, err, "Failed to add item to cart")
		return
	}

	h.respondJSON(w, http.StatusCreated, dto.CartFromDomain(cart))
}

// ClearCart очищает корзину
// DELETE /api/v1/users/{uid}/cart
func (h *ProfileHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.profileUC.ClearCart(r.Context(), chi.URLParam(r, "uid")); err != nil {
		h.respondProfileError(w, err, "Failed to clear cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetDailyValue возвращает суточные нормы
// GET /api/v1/users/{uid}/daily-value
func (h *ProfileHandler) GetDailyValue(w http.ResponseWriter, r *http.Request) {
	entries, err := h.profileUC.DailyValue(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		h.respondProfileError(w, err, "Failed to get daily value")
		return
	}

	h.respondJSON(w, http.StatusOK, dto.DailyValueRequest{DailyValue: entries})
}

// SaveDailyValue сохраняет суточные нормы
// PUT /api/v1/users/{uid}/daily-value
func (h *ProfileHandler) SaveDailyValue(w http.ResponseWriter, r *http.Request) {
	var req dto.DailyValueRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.profileUC.SaveDailyValue(r.Context(), chi.URLParam(r, "uid"), req.DailyValue); err != nil {
		h.respondProfileError(w, err, "Failed to save daily value")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Chart считает потребление нутриентов
// POST /api/v1/users/{uid}/chart?period=daily|weekly
func (h *ProfileHandler) Chart(w http.ResponseWriter, r *http.Request) {
	period := domain.PeriodDaily
	if p := r.URL.Query().Get("period"); p != "" {
		period = domain.ChartPeriod(p)
	}
	if !period.IsValid() {
		h.respondError(w, http.StatusBadRequest, "invalid_period", "Period must be daily or weekly")
		return
	}

	var req dto.ChartRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	chart, err := h.profileUC.IntakeChart(r.Context(), chi.URLParam(r, "uid"), req.Nutrients, period)
	if err != nil {
		h.respondProfileError(w, err, "Failed to build chart")
		return
	}

	h.respondJSON(w, http.StatusOK, dto.ChartFromDomain(chart))
}

func (h *ProfileHandler) respondProfileError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, domain.ErrEmptyUserID):
		h.respondError(w, http.StatusBadRequest, "invalid_user", "User ID is required")
	case errors.Is(err, domain.ErrInvalidGroceryItem):
		h.respondError(w, http.StatusBadRequest, "invalid_item", err.Error())
	case errors.Is(err, domain.ErrInvalidDailyValue):
		h.respondError(w, http.StatusBadRequest, "invalid_daily_value", err.Error())
	case errors.Is(err, domain.ErrDailyValueMissing):
		h.respondError(w, http.StatusConflict, "daily_value_missing", "Daily value has not been evaluated yet")
	default:
		h.logger.Error(message, zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error", message)
	}
}
