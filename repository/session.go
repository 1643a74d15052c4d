package repository

import (
	"context"
	"time"

	"github.com/fastygo/taskbuddy/domain"
)

type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
	Extend(ctx context.Context, id string, ttl time.Duration) error
}

// SessionSweeper is implemented by stores that do not expire entries on their own.
type SessionSweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}
