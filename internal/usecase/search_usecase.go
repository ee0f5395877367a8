package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/plastinin/recipefinder/internal/domain"
	"go.uber.org/zap"
)

var ErrSearchSessionNotFound = errors.New("search session not found")

type searchSession struct {
	controller *PageWindowController
	lastSeen   time.Time
}

// SearchUseCase бизнес-логика поиска рецептов: по контроллеру пагинации на каждую поисковую сессию
type SearchUseCase struct {
	client PagedQueryClient
	opts   SearchOptions
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*searchSession
}

// NewSearchUseCase создаёт новый экземпляр SearchUseCase.
// Сессии, к которым не обращались дольше ttl, удаляются.
func NewSearchUseCase(client PagedQueryClient, opts SearchOptions, ttl time.Duration, logger *zap.Logger) *SearchUseCase {
	return &SearchUseCase{
		client:   client,
		opts:     opts,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*searchSession),
	}
}

// Start создаёт поисковую сессию и выполняет первый запрос.
// Если запрос не удался, сессия не создаётся.
func (uc *SearchUseCase) Start(ctx context.Context, query string) (SearchSnapshot, error) {
	uc.sweep()

	controller := NewPageWindowController(uc.client, uc.opts, uc.logger)
	snapshot, err := controller.SubmitQuery(ctx, query)
	if err != nil {
		uc.logger.Warn("Search failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return snapshot, err
	}

	id := uuid.New()
	uc.mu.Lock()
	uc.sessions[id] = &searchSession{controller: controller, lastSeen: uc.now()}
	uc.mu.Unlock()

	uc.logger.Info("Search session started",
		zap.String("session_id", id.String()),
		zap.String("query", query),
		zap.Int("results", len(snapshot.Results)),
	)

	snapshot.SessionID = id
	return snapshot, nil
}

// Resubmit выполняет новый запрос в существующей сессии.
// При ошибке клиент продолжает видеть результаты предыдущего запроса.
func (uc *SearchUseCase) Resubmit(ctx context.Context, id uuid.UUID, query string) (SearchSnapshot, error) {
	controller, err := uc.controller(id)
	if err != nil {
		return SearchSnapshot{}, err
	}

	snapshot, err := controller.SubmitQuery(ctx, query)
	snapshot.SessionID = id
	if err != nil {
		uc.logger.Warn("Search failed",
			zap.String("session_id", id.String()),
			zap.String("query", query),
			zap.Error(err),
		)
	}
	return snapshot, err
}

// Navigate переходит на другую страницу в сессии
func (uc *SearchUseCase) Navigate(ctx context.Context, id uuid.UUID, target domain.Target) (SearchSnapshot, bool, error) {
	controller, err := uc.controller(id)
	if err != nil {
		return SearchSnapshot{}, false, err
	}

	snapshot, changed, err := controller.Navigate(ctx, target)
	snapshot.SessionID = id
	if err != nil {
		uc.logger.Warn("Page navigation failed",
			zap.String("session_id", id.String()),
			zap.Stringer("target", target),
			zap.Error(err),
		)
	}
	return snapshot, changed, err
}

// Get возвращает текущее состояние сессии
func (uc *SearchUseCase) Get(id uuid.UUID) (SearchSnapshot, error) {
	controller, err := uc.controller(id)
	if err != nil {
		return SearchSnapshot{}, err
	}

	snapshot := controller.Snapshot()
	snapshot.SessionID = id
	return snapshot, nil
}

// controller находит сессию и продлевает её жизнь
func (uc *SearchUseCase) controller(id uuid.UUID) (*PageWindowController, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.sessions[id]
	if !ok || uc.expired(s) {
		delete(uc.sessions, id)
		return nil, ErrSearchSessionNotFound
	}
	s.lastSeen = uc.now()
	return s.controller, nil
}

// sweep удаляет просроченные сессии
func (uc *SearchUseCase) sweep() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for id, s := range uc.sessions {
		if uc.expired(s) {
			delete(uc.sessions, id)
		}
	}
}

func (uc *SearchUseCase) expired(s *searchSession) bool {
	return uc.ttl > 0 && uc.now().Sub(s.lastSeen) > uc.ttl
}
