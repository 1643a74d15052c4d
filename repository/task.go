package repository

import (
	"context"

	"github.com/fastygo/taskbuddy/domain"
)

// SwapFunc receives the current collection and returns its replacement.
// The input must be treated as read-only. Returning a nil slice with a nil
// error leaves the collection untouched.
type SwapFunc func(current []domain.Task) ([]domain.Task, error)

// TaskRepository owns the ordered task collection.
type TaskRepository interface {
	List(ctx context.Context) ([]domain.Task, error)
	Swap(ctx context.Context, fn SwapFunc) error
	Count(ctx context.Context) (int, error)
}
