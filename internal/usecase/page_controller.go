package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/plastinin/recipefinder/internal/domain"
	"go.uber.org/zap"
)

// PageWindowController ведёт один поисковый запрос: активную страницу,
// результаты текущей страницы и окно пагинации.
//
// Запросы к API не отменяются. Если пока выполнялся запрос начался более новый,
// результат старого отбрасывается (побеждает последний запрос) и вызывающий получает domain.ErrSuperseded.
type PageWindowController struct {
	client PagedQueryClient
	opts   SearchOptions
	logger *zap.Logger

	mu      sync.Mutex
	state   domain.QueryState
	results domain.ResultSlice
	window  domain.PageWindow
	lastErr error
	// seq номер последнего начатого запроса
	seq uint64
}

// NewPageWindowController создаёт контроллер без активного запроса
func NewPageWindowController(client PagedQueryClient, opts SearchOptions, logger *zap.Logger) *PageWindowController {
	return &PageWindowController{
		client: client,
		opts:   opts,
		logger: logger,
		window: domain.PageWindow{},
	}
}

// SubmitQuery начинает новый поиск с первой страницы.
// При ошибке состояние не меняется, ошибка возвращается и запоминается в LastError.
func (c *PageWindowController) SubmitQuery(ctx context.Context, text string) (SearchSnapshot, error) {
	next := domain.NewQueryState(text, c.opts.PageSize, c.opts.SearchLimit)

	c.mu.Lock()
	c.seq++
	ticket := c.seq
	c.mu.Unlock()

	results, err := c.client.Fetch(ctx, text, next.Offset(next.ActivePage), next.PageSize)

	c.mu.Lock()
	defer c.mu.Unlock()

	if ticket != c.seq {
		c.logger.Debug("Discarding superseded search result",
			zap.String("query", text),
		)
		return c.snapshotLocked(), domain.ErrSuperseded
	}

	if err != nil {
		c.lastErr = err
		return c.snapshotLocked(), fmt.Errorf("failed to fetch results: %w", err)
	}

	c.state = next
	c.apply(results)

	c.logger.Debug("Search submitted",
		zap.String("query", text),
		zap.Int("results", len(results)),
		zap.Int("total_pages", next.TotalPages),
	)

	return c.snapshotLocked(), nil
}

// Navigate переходит на другую страницу текущего запроса.
// changed == false означает, что переход невозможен: запрос к API не выполнялся, состояние не менялось.
func (c *PageWindowController) Navigate(ctx context.Context, target domain.Target) (snapshot SearchSnapshot, changed bool, err error) {
	c.mu.Lock()
	state := c.state
	page, ok := state.Resolve(target)
	if !ok {
		snapshot = c.snapshotLocked()
		c.mu.Unlock()
		return snapshot, false, nil
	}
	c.seq++
	ticket := c.seq
	c.mu.Unlock()

	results, err := c.client.Fetch(ctx, state.QueryText, state.Offset(page), state.PageSize)

	c.mu.Lock()
	defer c.mu.Unlock()

	if ticket != c.seq {
		c.logger.Debug("Discarding superseded page result",
			zap.String("query", state.QueryText),
			zap.Int("page", page),
		)
		return c.snapshotLocked(), false, domain.ErrSuperseded
	}

	if err != nil {
		c.lastErr = err
		return c.snapshotLocked(), false, fmt.Errorf("failed to fetch page %d: %w", page, err)
	}

	c.state.ActivePage = page
	c.apply(results)

	return c.snapshotLocked(), true, nil
}

// Snapshot возвращает текущее состояние
func (c *PageWindowController) Snapshot() SearchSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// apply заменяет результаты и пересобирает окно; вызывается под mu
func (c *PageWindowController) apply(results domain.ResultSlice) {
	c.results = results
	c.window = domain.BuildPageWindow(c.state.ActivePage, c.state.TotalPages)
	c.lastErr = nil
}

func (c *PageWindowController) snapshotLocked() SearchSnapshot {
	results := make(domain.ResultSlice, len(c.results))
	copy(results, c.results)
	window := make(domain.PageWindow, len(c.window))
	copy(window, c.window)

	return SearchSnapshot{
		State:     c.state,
		Results:   results,
		Window:    window,
		LastError: c.lastErr,
	}
}
