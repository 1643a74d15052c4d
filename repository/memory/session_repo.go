package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fastygo/taskbuddy/domain"
	"github.com/fastygo/taskbuddy/repository"
)

// SessionRepository keeps sessions in process memory. Expired entries are
// hidden from Get and physically removed by Sweep.
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionRepository{
		sessions: make(map[string]domain.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok || session.IsExpired(r.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = r.now()
	}
	if !session.ExpiresAt.After(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(r.ttl)
	}

	r.mu.Lock()
	r.sessions[session.ID] = *session
	r.mu.Unlock()
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

func (r *SessionRepository) Extend(ctx context.Context, id string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.ttl
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.ExpiresAt = r.now().Add(ttl)
	r.sessions[id] = session
	return nil
}

// Sweep drops every session expired at now and reports how many were removed.
func (r *SessionRepository) Sweep(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.IsExpired(now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

var (
	_ repository.SessionRepository = (*SessionRepository)(nil)
	_ repository.SessionSweeper    = (*SessionRepository)(nil)
)
