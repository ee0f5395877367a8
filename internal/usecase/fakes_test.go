package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/plastinin/recipefinder/internal/domain"
)

type fetchCall struct {
	Query  string
	Offset int
	Limit  int
}

// fakeQueryClient отдаёт по limit рецептов, URI которых кодирует смещение
type fakeQueryClient struct {
	mu    sync.Mutex
	calls []fetchCall
	err   error
	// hook вызывается перед ответом, позволяет задержать конкретный запрос
	hook func(call int)
}

func (c *fakeQueryClient) Fetch(_ context.Context, query string, offset, limit int) (domain.ResultSlice, error) {
	c.mu.Lock()
	c.calls = append(c.calls, fetchCall{Query: query, Offset: offset, Limit: limit})
	n := len(c.calls)
	err := c.err
	hook := c.hook
	c.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	if err != nil {
		return nil, err
	}

	results := make(domain.ResultSlice, 0, limit)
	for i := 0; i < limit; i++ {
		results = append(results, domain.Recipe{
			URI:   fmt.Sprintf("owl#recipe_%s_%d", query, offset+i),
			Label: fmt.Sprintf("%s #%d", query, offset+i),
		})
	}
	return results, nil
}

func (c *fakeQueryClient) setErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *fakeQueryClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func (c *fakeQueryClient) lastCall() fetchCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[len(c.calls)-1]
}

type fakeProfileRepo struct {
	profiles map[string]*domain.UserProfile
	err      error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*domain.UserProfile)}
}

func (r *fakeProfileRepo) get(userID string) *domain.UserProfile {
	p, ok := r.profiles[userID]
	if !ok {
		p = &domain.UserProfile{UserID: userID}
		r.profiles[userID] = p
	}
	return p
}

func (r *fakeProfileRepo) GetByID(_ context.Context, userID string) (*domain.UserProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	copied := *p
	copied.Cart = append([]domain.GroceryItem(nil), p.Cart...)
	return &copied, nil
}

func (r *fakeProfileRepo) SaveDailyValue(_ context.Context, userID string, entries []domain.DailyValueEntry) error {
	if r.err != nil {
		return r.err
	}
	r.get(userID).DailyValue = entries
	return nil
}

func (r *fakeProfileRepo) AddCartItem(_ context.Context, userID string, item domain.GroceryItem) error {
	if r.err != nil {
		return r.err
	}
	p := r.get(userID)
	p.Cart = append(p.Cart, item)
	return nil
}

func (r *fakeProfileRepo) ClearCart(_ context.Context, userID string) error {
	if r.err != nil {
		return r.err
	}
	r.get(userID).Cart = nil
	return nil
}

// fakeOrderRepo повторяет транзакцию CreateFromCart: чтение корзины, сборка заказа и очистка
// происходят атомарно. Хуки срабатывают вне этой атомарной секции.
type fakeOrderRepo struct {
	profiles *fakeProfileRepo
	orders   map[uuid.UUID]*domain.Order
	err      error
	// beforeLock вызывается до чтения корзины, afterCommit после сохранения заказа
	beforeLock  func()
	afterCommit func()
}

func newFakeOrderRepo(profiles *fakeProfileRepo) *fakeOrderRepo {
	return &fakeOrderRepo{profiles: profiles, orders: make(map[uuid.UUID]*domain.Order)}
}

func (r *fakeOrderRepo) CreateFromCart(_ context.Context, userID string, build OrderBuilder) (*domain.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.beforeLock != nil {
		r.beforeLock()
	}

	var cart []domain.GroceryItem
	if r.profiles != nil {
		if p, ok := r.profiles.profiles[userID]; ok {
			cart = append(cart, p.Cart...)
		}
	}

	order, err := build(cart)
	if err != nil {
		return nil, err
	}
	r.orders[order.ID] = order
	if r.profiles != nil {
		r.profiles.get(userID).Cart = nil
	}

	if r.afterCommit != nil {
		r.afterCommit()
	}
	return order, nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOrderRepo) List(_ context.Context, userID string, pagination domain.Pagination) (*domain.OrderListResult, error) {
	if r.err != nil {
		return nil, r.err
	}
	var all []*domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			all = append(all, o)
		}
	}
	// Порядок намеренно возрастающий: сортировка по убыванию задача use case
	sort.Slice(all, func(i, j int) bool { return all[i].OrderedAt.Before(all[j].OrderedAt) })

	start := min(pagination.Offset(), len(all))
	end := min(start+pagination.Limit(), len(all))
	return &domain.OrderListResult{Orders: all[start:end], Total: len(all), Pagination: pagination}, nil
}

func (r *fakeOrderRepo) SetReceiptKey(_ context.Context, id uuid.UUID, key string) error {
	if r.err != nil {
		return r.err
	}
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.ReceiptKey = key
	return nil
}

type fakeReceiptStorage struct {
	objects map[string][]byte
	err     error
}

func newFakeReceiptStorage() *fakeReceiptStorage {
	return &fakeReceiptStorage{objects: make(map[string][]byte)}
}

func (s *fakeReceiptStorage) Put(_ context.Context, key string, _ string, data []byte) error {
	if s.err != nil {
		return s.err
	}
	s.objects[key] = data
	return nil
}

func (s *fakeReceiptStorage) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *fakeReceiptStorage) GetURL(_ context.Context, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "https://s3.local/" + key, nil
}

type fakeReceiptQueue struct {
	enqueued []uuid.UUID
	err      error
}

func (q *fakeReceiptQueue) Enqueue(_ context.Context, orderID uuid.UUID) error {
	if q.err != nil {
		return q.err
	}
	q.enqueued = append(q.enqueued, orderID)
	return nil
}
