package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plastinin/recipefinder/internal/adapter/http/dto"
	"github.com/plastinin/recipefinder/internal/usecase"
	"go.uber.org/zap"
)

// SessionHandler обработчик действий над состоянием клиента
type SessionHandler struct {
	responder
	clientStateUC *usecase.ClientStateUseCase
}

// NewSessionHandler создаёт новый SessionHandler
func NewSessionHandler(clientStateUC *usecase.ClientStateUseCase, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		responder:     responder{logger: logger},
		clientStateUC: clientStateUC,
	}
}

// Dispatch применяет действие к состоянию сессии
// POST /api/v1/session/{sid}/actions
func (h *SessionHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req dto.ActionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	action, err := req.ToDomain()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_action", err.Error())
		return
	}

	state := h.clientStateUC.Dispatch(chi.URLParam(r, "sid"), action)
	h.respondJSON(w, http.StatusOK, state)
}

// Get возвращает состояние сессии
// GET /api/v1/session/{sid}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.clientStateUC.Get(chi.URLParam(r, "sid")))
}
