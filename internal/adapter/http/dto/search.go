package dto

import (
	"errors"

	"github.com/plastinin/recipefinder/internal/domain"
	"github.com/plastinin/recipefinder/internal/usecase"
)

// SearchRequest запрос на поиск рецептов
type SearchRequest struct {
	Query string `json:"query"`
}

// NavigateRequest запрос на переход по страницам
type NavigateRequest struct {
	Target string `json:"target"` // first, prev, page, next, last
	Page   int    `json:"page,omitempty"`
}

// RecipeResponse рецепт в списке результатов
type RecipeResponse struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	Image           string `json:"image"`
	Source          string `json:"source"`
	URL             string `json:"url"`
	Calories        int    `json:"calories"`
	IngredientCount int    `json:"ingredient_count"`
}

// RecipeFromDomain конвертирует рецепт в DTO
func RecipeFromDomain(r domain.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:              r.ID(),
		Label:           r.Label,
		Image:           r.Image,
		Source:          r.Source,
		URL:             r.URL,
		Calories:        r.WholeCalories(),
		IngredientCount: len(r.Ingredients),
	}
}

// SearchResponse состояние поисковой сессии
type SearchResponse struct {
	SessionID  string               `json:"session_id"`
	Query      string               `json:"query"`
	PageSize   int                  `json:"page_size"`
	ActivePage int                  `json:"active_page"`
	TotalPages int                  `json:"total_pages"`
	Results    []RecipeResponse     `json:"results"`
	Window     []domain.PageControl `json:"window"`
	LastError  *ErrorResponse       `json:"last_error,omitempty"`
}

// NavigateResponse результат перехода; changed=false если переход невозможен
type NavigateResponse struct {
	*SearchResponse
	Changed bool `json:"changed"`
}

// SearchFromSnapshot конвертирует снимок сессии в DTO
func SearchFromSnapshot(snap usecase.SearchSnapshot) *SearchResponse {
	results := make([]RecipeResponse, len(snap.Results))
	for i, r := range snap.Results {
		results[i] = RecipeFromDomain(r)
	}

	window := make([]domain.PageControl, len(snap.Window))
	copy(window, snap.Window)

	resp := &SearchResponse{
		SessionID:  snap.SessionID.String(),
		Query:      snap.State.QueryText,
		PageSize:   snap.State.PageSize,
		ActivePage: snap.State.ActivePage,
		TotalPages: snap.State.TotalPages,
		Results:    results,
		Window:     window,
	}
	if snap.LastError != nil {
		resp.LastError = FetchErrorFromDomain(snap.LastError)
	}
	return resp
}

// FetchErrorFromDomain описывает ошибку запроса к API поиска
func FetchErrorFromDomain(err error) *ErrorResponse {
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return &ErrorResponse{
			Error:   "upstream_error",
			Message: upstream.Error(),
			Details: UpstreamDetails{Status: upstream.Status, StatusText: upstream.StatusText},
		}
	}

	var netErr *domain.NetworkError
	if errors.As(err, &netErr) {
		return NewErrorResponse("network_error", "Recipe search is unreachable")
	}

	if errors.Is(err, domain.ErrSuperseded) {
		return NewErrorResponse("superseded", "A newer request replaced this one")
	}

	return NewErrorResponse("internal_error", "Recipe search failed")
}
