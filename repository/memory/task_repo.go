package memory

import (
	"context"
	"sync"

	"github.com/fastygo/taskbuddy/domain"
	"github.com/fastygo/taskbuddy/repository"
)

type taskRepository struct {
	mu    sync.RWMutex
	tasks []domain.Task
}

// NewTaskRepository returns an in-memory task collection seeded with the given tasks.
func NewTaskRepository(seed []domain.Task) repository.TaskRepository {
	return &taskRepository{tasks: cloneTasks(seed)}
}

func (r *taskRepository) List(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneTasks(r.tasks), nil
}

// Swap serializes writers; fn sees a private copy so a failed swap leaves
// the stored collection exactly as it was.
func (r *taskRepository) Swap(ctx context.Context, fn repository.SwapFunc) error {
	if fn == nil {
		return domain.ErrInvalidPayload
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := fn(cloneTasks(r.tasks))
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}
	r.tasks = next
	return nil
}

func (r *taskRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks), nil
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Clone()
	}
	return out
}
