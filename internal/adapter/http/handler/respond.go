package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/plastinin/recipefinder/internal/adapter/http/dto"
	"github.com/plastinin/recipefinder/internal/domain"
	"go.uber.org/zap"
)

const (
	maxBodySize = 1 << 20 // 1 MB
)

// responder общие методы формирования ответов
type responder struct {
	logger *zap.Logger
}

// respondJSON отправляет JSON ответ
func (h responder) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError отправляет ответ с ошибкой
func (h responder) respondError(w http.ResponseWriter, status int, errCode string, message string) {
	h.respondJSON(w, status, dto.NewErrorResponse(errCode, message))
}

// respondFetchError отправляет ответ с ошибкой запроса к API поиска
func (h responder) respondFetchError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var upstream *domain.UpstreamError
	var netErr *domain.NetworkError
	switch {
	case errors.As(err, &upstream):
		status = http.StatusBadGateway
	case errors.As(err, &netErr):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrSuperseded):
		status = http.StatusConflict
	default:
		h.logger.Error("Recipe search failed", zap.Error(err))
	}

	h.respondJSON(w, status, dto.FetchErrorFromDomain(err))
}

// decodeJSON читает тело запроса в dst
func (h responder) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.Warn("Failed to decode request body", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return false
	}
	return true
}

// parseUUID разбирает UUID из параметра пути
func (h responder) parseUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_id", fmt.Sprintf("Invalid %s format", param))
		return uuid.Nil, false
	}
	return id, true
}
