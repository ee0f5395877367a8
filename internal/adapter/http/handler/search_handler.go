package handler

import (
	"errors"
	"net/http"

	"github.com/plastinin/recipefinder/internal/adapter/http/dto"
	"github.com/plastinin/recipefinder/internal/domain"
	"github.com/plastinin/recipefinder/internal/usecase"
	"go.uber.org/zap"
)

// SearchHandler обработчик HTTP запросов поиска рецептов
type SearchHandler struct {
	responder
	searchUC *usecase.SearchUseCase
}

// NewSearchHandler создаёт новый SearchHandler
func NewSearchHandler(searchUC *usecase.SearchUseCase, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		responder: responder{logger: logger},
		searchUC:  searchUC,
	}
}

// Create начинает поисковую сессию
// POST /api/v1/search
func (h *SearchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	snap, err := h.searchUC.Start(r.Context(), req.Query)
	if err != nil {
		h.respondFetchError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, dto.SearchFromSnapshot(snap))
}

// Resubmit выполняет новый запрос в существующей сессии
// PUT /api/v1/search/{id}
func (h *SearchHandler) Resubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseUUID(w, r, "id")
	if !ok {
		return
	}

	var req dto.SearchRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	snap, err := h.searchUC.Resubmit(r.Context(), id, req.Query)
	if err != nil {
		h.respondSearchError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.SearchFromSnapshot(snap))
}

// Navigate переходит на другую страницу результатов
// POST /api/v1/search/{id}/navigate
func (h *SearchHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseUUID(w, r, "id")
	if !ok {
		return
	}

	var req dto.NavigateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	target, err := domain.ParseTarget(req.Target, req.Page)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_target", err.Error())
		return
	}

	snap, changed, err := h.searchUC.Navigate(r.Context(), id, target)
	if err != nil {
		h.respondSearchError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.NavigateResponse{
		SearchResponse: dto.SearchFromSnapshot(snap),
		Changed:        changed,
	})
}

// GetByID возвращает текущее состояние сессии
// GET /api/v1/search/{id}
func (h *SearchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseUUID(w, r, "id")
	if !ok {
		return
	}

	snap, err := h.searchUC.Get(id)
	if err != nil {
		h.respondSearchError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.SearchFromSnapshot(snap))
}

func (h *SearchHandler) respondSearchError(w http.ResponseWriter, err error) {
	if errors.Is(err, usecase.ErrSearchSessionNotFound) {
		h.respondError(w, http.StatusNotFound, "not_found", "Search session not found")
		return
	}
	h.respondFetchError(w, err)
}
