package usecase

import (
	"sync"
	"time"

	"github.com/plastinin/recipefinder/internal/domain"
	"go.uber.org/zap"
)

type clientSession struct {
	state    domain.ClientState
	lastSeen time.Time
}

// ClientStateUseCase хранит глобальное состояние клиентских сессий
type ClientStateUseCase struct {
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*clientSession
}

// NewClientStateUseCase создаёт новый экземпляр ClientStateUseCase.
// Сессии без действий дольше ttl сбрасываются в начальное состояние; ttl <= 0 отключает истечение.
func NewClientStateUseCase(ttl time.Duration, logger *zap.Logger) *ClientStateUseCase {
	return &ClientStateUseCase{
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*clientSession),
	}
}

// Get возвращает состояние сессии, для новой или просроченной сессии начальное
func (uc *ClientStateUseCase) Get(sessionID string) domain.ClientState {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	s, ok := uc.sessions[sessionID]
	if !ok {
		return domain.NewClientState()
	}
	if uc.expired(s) {
		delete(uc.sessions, sessionID)
		return domain.NewClientState()
	}
	return s.state
}

// Dispatch применяет действие к состоянию сессии
func (uc *ClientStateUseCase) Dispatch(sessionID string, action domain.Action) domain.ClientState {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.sweepLocked()

	s, ok := uc.sessions[sessionID]
	if !ok {
		s = &clientSession{state: domain.NewClientState()}
		uc.sessions[sessionID] = s
	}

	s.state = domain.Reduce(s.state, action)
	s.lastSeen = uc.now()

	uc.logger.Debug("Client action dispatched",
		zap.String("session_id", sessionID),
		zap.Bool("signed_in", s.state.IsSignedIn),
	)

	return s.state
}

// sweepLocked удаляет просроченные сессии, вызывается под mu
func (uc *ClientStateUseCase) sweepLocked() {
	for id, s := range uc.sessions {
		if uc.expired(s) {
			delete(uc.sessions, id)
			uc.logger.Debug("Client session expired", zap.String("session_id", id))
		}
	}
}

func (uc *ClientStateUseCase) expired(s *clientSession) bool {
	return uc.ttl > 0 && uc.now().Sub(s.lastSeen) > uc.ttl
}
