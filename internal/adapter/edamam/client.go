package edamam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/plastinin/recipefinder/internal/config"
	"github.com/plastinin/recipefinder/internal/domain"
	"go.uber.org/zap"
)

const (
	// maxErrorBody ограничивает тело ошибки, сохраняемое в UpstreamError
	maxErrorBody = 4 << 10
	// maxResponseBody ограничивает размер ответа /search
	maxResponseBody = 16 << 20
)

// Client клиент для работы с Edamam Recipe Search API
type Client struct {
	httpClient *http.Client
	baseURL    string
	appID      string
	appKey     string
	logger     *zap.Logger
}

// NewClient создаёт новый экземпляр Client
func NewClient(cfg config.EdamamConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		appID:   cfg.AppID,
		appKey:  cfg.AppKey,
		logger:  logger,
	}
}

// searchResponse структура ответа /search
type searchResponse struct {
	Hits []struct {
		Recipe struct {
			URI         string  `json:"uri"`
			Label       string  `json:"label"`
			Image       string  `json:"image"`
			Source      string  `json:"source"`
			URL         string  `json:"url"`
			Calories    float64 `json:"calories"`
			Ingredients []struct {
				Text   string  `json:"text"`
				Weight float64 `json:"weight"`
			} `json:"ingredients"`
		} `json:"recipe"`
	} `json:"hits"`
}

// Fetch возвращает до limit рецептов начиная с позиции offset.
// API принимает включительный диапазон from..to.
func (c *Client) Fetch(ctx context.Context, query string, offset, limit int) (domain.ResultSlice, error) {
	if offset < 0 || limit <= 0 {
		return nil, fmt.Errorf("%w: offset %d, limit %d", domain.ErrInvalidRange, offset, limit)
	}

	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("q", query)
	params.Set("from", strconv.Itoa(offset))
	params.Set("to", strconv.Itoa(offset+limit-1))

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("Edamam request completed",
		zap.String("query", query),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("status_code", resp.StatusCode),
	)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, upstreamError(resp, body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, &domain.NetworkError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	// Ответ 200 с телом не в формате API тоже ошибка API
	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		c.logger.Warn("Edamam returned malformed response",
			zap.Int("status_code", resp.StatusCode),
			zap.Error(err),
		)
		return nil, upstreamError(resp, body)
	}

	results := make(domain.ResultSlice, 0, len(searchResp.Hits))
	for _, hit := range searchResp.Hits {
		r := hit.Recipe
		ingredients := make([]domain.Ingredient, 0, len(r.Ingredients))
		for _, ing := range r.Ingredients {
			ingredients = append(ingredients, domain.Ingredient{Text: ing.Text, Weight: ing.Weight})
		}
		results = append(results, domain.Recipe{
			URI:         r.URI,
			Label:       r.Label,
			Image:       r.Image,
			Source:      r.Source,
			URL:         r.URL,
			Calories:    r.Calories,
			Ingredients: ingredients,
		})
	}

	// Лишние записи сверх limit отбрасываем
	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

func upstreamError(resp *http.Response, body []byte) *domain.UpstreamError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &domain.UpstreamError{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Body:       string(body),
	}
}
