package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/plastinin/recipefinder/internal/adapter/http/handler"
	"github.com/plastinin/recipefinder/internal/domain"
	"github.com/plastinin/recipefinder/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSearchClient struct {
	mu  sync.Mutex
	err error
}

func (c *stubSearchClient) Fetch(_ context.Context, query string, offset, limit int) (domain.ResultSlice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	results := make(domain.ResultSlice, limit)
	for i := range results {
		results[i] = domain.Recipe{
			URI:      fmt.Sprintf("owl#recipe_%d", offset+i),
			Label:    fmt.Sprintf("%s %d", query, offset+i),
			Calories: 99.9,
		}
	}
	return results, nil
}

func (c *stubSearchClient) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

type memoryStore struct {
	mu       sync.Mutex
	profiles map[string]*domain.UserProfile
	orders   map[uuid.UUID]*domain.Order
	receipts map[uuid.UUID]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		profiles: make(map[string]*domain.UserProfile),
		orders:   make(map[uuid.UUID]*domain.Order),
		receipts: make(map[uuid.UUID]bool),
	}
}

func (s *memoryStore) profile(userID string) *domain.UserProfile {
	p, ok := s.profiles[userID]
	if !ok {
		p = &domain.UserProfile{UserID: userID}
		s.profiles[userID] = p
	}
	return p
}

func (s *memoryStore) GetByID(_ context.Context, userID string) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	copied := *p
	copied.Cart = append([]domain.GroceryItem(nil), p.Cart...)
	return &copied, nil
}

func (s *memoryStore) SaveDailyValue(_ context.Context, userID string, entries []domain.DailyValueEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile(userID).DailyValue = entries
	return nil
}

func (s *memoryStore) AddCartItem(_ context.Context, userID string, item domain.GroceryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile(userID)
	p.Cart = append(p.Cart, item)
	return nil
}

func (s *memoryStore) ClearCart(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile(userID).Cart = nil
	return nil
}

type memoryOrders struct{ *memoryStore }

func (o memoryOrders) CreateFromCart(_ context.Context, userID string, build usecase.OrderBuilder) (*domain.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	p := o.profile(userID)
	order, err := build(p.Cart)
	if err != nil {
		return nil, err
	}
	o.orders[order.ID] = order
	p.Cart = nil
	return order, nil
}

func (o memoryOrders) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	order, ok := o.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (o memoryOrders) List(_ context.Context, userID string, pagination domain.Pagination) (*domain.OrderListResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	var all []*domain.Order
	for _, order := range o.orders {
		if order.UserID == userID {
			all = append(all, order)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OrderedAt.After(all[j].OrderedAt) })
	start := min(pagination.Offset(), len(all))
	end := min(start+pagination.Limit(), len(all))
	return &domain.OrderListResult{Orders: all[start:end], Total: len(all), Pagination: pagination}, nil
}

func (o memoryOrders) SetReceiptKey(_ context.Context, id uuid.UUID, key string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	order, ok := o.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.ReceiptKey = key
	return nil
}

type memoryReceipts struct{}

func (memoryReceipts) Put(context.Context, string, string, []byte) error { return nil }
func (memoryReceipts) Delete(context.Context, string) error              { return nil }
func (memoryReceipts) GetURL(_ context.Context, key string) (string, error) {
	return "https://s3.test/" + key, nil
}

type memoryQueue struct{ *memoryStore }

func (q memoryQueue) Enqueue(_ context.Context, orderID uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.receipts[orderID] = true
	return nil
}

type testServer struct {
	handler http.Handler
	client  *stubSearchClient
	store   *memoryStore
	health  error
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	ts := &testServer{client: &stubSearchClient{}, store: newMemoryStore()}

	orders := memoryOrders{ts.store}
	searchUC := usecase.NewSearchUseCase(ts.client, usecase.SearchOptions{PageSize: 10, SearchLimit: 100}, time.Hour, logger)
	profileUC := usecase.NewProfileUseCase(ts.store, logger)
	orderUC := usecase.NewOrderUseCase(orders, memoryReceipts{}, memoryQueue{ts.store}, logger)

	ts.handler = NewRouter(Handlers{
		Search:  handler.NewSearchHandler(searchUC, logger),
		Profile: handler.NewProfileHandler(profileUC, logger),
		Order:   handler.NewOrderHandler(orderUC, logger),
		Store:   handler.NewStoreHandler(logger),
		Session: handler.NewSessionHandler(usecase.NewClientStateUseCase(time.Hour, logger), logger),
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"postgres": func(context.Context) error { return ts.health },
		}),
	}, logger)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, httptest.NewRequest(method, path, reader))

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func TestRouter_SearchFlow(t *testing.T) {
	ts := newTestServer(t)

	rec, body := ts.do(t, http.MethodPost, "/api/v1/search", map[string]string{"query": "tacos"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(1), body["active_page"])
	assert.Equal(t, float64(10), body["total_pages"])
	results := body["results"].([]any)
	require.Len(t, results, 10)
	first := results[0].(map[string]any)
	assert.Equal(t, "0", first["id"])
	assert.Equal(t, float64(99), first["calories"])

	id := body["session_id"].(string)

	rec, body = ts.do(t, http.MethodPost, "/api/v1/search/"+id+"/navigate", map[string]any{"target": "page", "page": 6})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["changed"])
	assert.Equal(t, float64(6), body["active_page"])
	assert.Equal(t, "tacos 50", body["results"].([]any)[0].(map[string]any)["label"])

	rec, body = ts.do(t, http.MethodPost, "/api/v1/search/"+id+"/navigate", map[string]any{"target": "last"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["changed"], "6+5 is past the last page")
	assert.Equal(t, float64(6), body["active_page"])

	rec, body = ts.do(t, http.MethodPut, "/api/v1/search/"+id, map[string]string{"query": "ramen"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ramen", body["query"])
	assert.Equal(t, float64(1), body["active_page"])

	rec, body = ts.do(t, http.MethodGet, "/api/v1/search/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ramen", body["query"])
}

func TestRouter_SearchErrors(t *testing.T) {
	ts := newTestServer(t)

	rec, body := ts.do(t, http.MethodPost, "/api/v1/search", map[string]string{"query": "tacos"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := body["session_id"].(string)

	ts.client.fail(&domain.UpstreamError{Status: http.StatusTooManyRequests, StatusText: "Too Many Requests"})
	rec, body = ts.do(t, http.MethodPost, "/api/v1/search/"+id+"/navigate", map[string]any{"target": "next"})
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "upstream_error", body["error"])
	assert.Equal(t, float64(429), body["details"].(map[string]any)["status"])

	rec, body = ts.do(t, http.MethodGet, "/api/v1/search/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["active_page"], "previous page is kept")
	assert.Equal(t, "upstream_error", body["last_error"].(map[string]any)["error"])

	ts.client.fail(&domain.NetworkError{Err: errors.New("connection refused")})
	rec, body = ts.do(t, http.MethodPost, "/api/v1/search", map[string]string{"query": "x"})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "network_error", body["error"])

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/search/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/search/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = ts.do(t, http.MethodPost, "/api/v1/search/"+id+"/navigate", map[string]any{"target": "sideways"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_target", body["error"])
}

func TestRouter_CartChartAndOrders(t *testing.T) {
	ts := newTestServer(t)
	base := "/api/v1/users/u1"

	for _, item := range []map[string]any{
		{"fdc_id": 2, "description": "Spinach"},
		{"fdc_id": 1, "description": "Apples"},
		{"fdc_id": 2, "description": "Spinach"},
	} {
		rec, _ := ts.do(t, http.MethodPost, base+"/cart", item)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, _ := ts.do(t, http.MethodPost, base+"/cart", map[string]any{"fdc_id": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body := ts.do(t, http.MethodGet, base+"/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), body["total_quantity"])
	items := body["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "Apples", items[0].(map[string]any)["description"])

	chartReq := map[string]any{"nutrients": []map[string]any{{"id": 1, "amount": 30}}}
	rec, body = ts.do(t, http.MethodPost, base+"/chart", chartReq)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "daily_value_missing", body["error"])

	dv := make([]map[string]any, domain.NutrientCount)
	for i := range dv {
		dv[i] = map[string]any{"id": i + 1, "value": 60}
	}
	rec, _ = ts.do(t, http.MethodPut, base+"/daily-value", map[string]any{"daily_value": dv})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, body = ts.do(t, http.MethodPost, base+"/chart?period=weekly", chartReq)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "weekly", body["period"])
	assert.Equal(t, float64(8), body["percentages"].([]any)[0], "ceil(3000/420)")
	assert.Len(t, body["labels"].([]any), domain.NutrientCount)

	rec, _ = ts.do(t, http.MethodPost, base+"/chart?period=monthly", chartReq)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = ts.do(t, http.MethodPost, base+"/orders", map[string]string{"store_to_visit": "Nowhere"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown_store", body["error"])

	rec, body = ts.do(t, http.MethodPost, base+"/orders", map[string]string{"store_to_visit": "Walmart"})
	require.Equal(t, http.StatusCreated, rec.Code)
	orderID := body["id"].(string)
	assert.Equal(t, float64(3), body["total_quantity"])
	assert.Equal(t, false, body["receipt_ready"])
	assert.True(t, ts.store.receipts[uuid.MustParse(orderID)])

	rec, body = ts.do(t, http.MethodGet, base+"/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["items"])

	rec, body = ts.do(t, http.MethodPost, base+"/orders", map[string]string{"store_to_visit": "Walmart"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "empty_cart", body["error"])

	rec, body = ts.do(t, http.MethodGet, base+"/orders?page=1&page_size=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(1), body["total_pages"])

	require.NoError(t, memoryOrders{ts.store}.SetReceiptKey(context.Background(), uuid.MustParse(orderID), "receipts/r.json"))
	rec, body = ts.do(t, http.MethodGet, base+"/orders/"+orderID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://s3.test/receipts/r.json", body["receipt_url"])

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/users/u2/orders/"+orderID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Stores(t *testing.T) {
	ts := newTestServer(t)

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var stores []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stores))
	require.Len(t, stores, 8)
	assert.Equal(t, "Costco", stores[0]["name"])
}

func TestRouter_SessionActions(t *testing.T) {
	ts := newTestServer(t)

	rec, body := ts.do(t, http.MethodGet, "/api/v1/session/s1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["is_signed_in"])

	rec, body = ts.do(t, http.MethodPost, "/api/v1/session/s1/actions", map[string]any{
		"type":    "SIGNIN",
		"payload": map[string]string{"uid": "u1", "email": "cook@example.com"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["is_signed_in"])
	assert.Equal(t, "u1", body["current_user"].(map[string]any)["uid"])

	rec, body = ts.do(t, http.MethodPost, "/api/v1/session/s1/actions", map[string]any{"type": "DANCE"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_action", body["error"])
}

func TestRouter_Health(t *testing.T) {
	ts := newTestServer(t)

	rec, body := ts.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	ts.health = errors.New("connection refused")
	rec, body = ts.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unavailable", body["status"])
	assert.Equal(t, "connection refused", body["checks"].(map[string]any)["postgres"])
}
