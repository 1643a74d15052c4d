package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/taskbuddy/domain"
	"github.com/fastygo/taskbuddy/repository"
	"github.com/fastygo/taskbuddy/usecase"
)

const (
	detailCreated = "Task created"
	detailEdited  = "Task details were updated"
	detailDeleted = "Task was deleted"
)

// Option customizes a UseCase.
type Option func(*UseCase)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

// WithIDGenerator overrides how task and activity ids are minted.
func WithIDGenerator(next func() string) Option {
	return func(uc *UseCase) {
		if next != nil {
			uc.newID = next
		}
	}
}

// UseCase is the task store: every mutation reads the current collection and
// writes back a replacement through the repository.
type UseCase struct {
	tasks  repository.TaskRepository
	notify usecase.Notifier
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func New(tasks repository.TaskRepository, notifier usecase.Notifier, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = usecase.NopNotifier{}
	}
	uc := &UseCase{
		tasks:  tasks,
		notify: notifier,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *UseCase) List(ctx context.Context) ([]domain.Task, error) {
	return uc.tasks.List(ctx)
}

// Add creates a task from the draft and appends it to the collection.
func (uc *UseCase) Add(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	now := uc.now()
	draft.Normalize(now)
	if err := draft.Validate(); err != nil {
		uc.fail(ctx, err)
		return nil, err
	}

	task := domain.Task{
		ID:          uc.newID(),
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		Category:    draft.Category,
		Status:      domain.StatusTodo,
		Completed:   false,
		CreatedAt:   now,
		DueDate:     draft.DueDate,
		Activities:  []domain.Activity{uc.activity(domain.ActivityCreated, detailCreated)},
	}

	err := uc.tasks.Swap(ctx, func(current []domain.Task) ([]domain.Task, error) {
		return append(current, task.Clone()), nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("task added", zap.String("task_id", task.ID))
	uc.notify.Notify(ctx, domain.Info("Success", "Task added successfully"))
	return &task, nil
}

// Edit replaces the stored task carrying the same id. ID, CreatedAt and the
// activity history always come from the stored copy. An unknown id returns nil
// before any field is validated.
func (uc *UseCase) Edit(ctx context.Context, changed domain.Task) (*domain.Task, error) {
	var updated *domain.Task
	err := uc.tasks.Swap(ctx, func(current []domain.Task) ([]domain.Task, error) {
		i := indexOf(current, changed.ID)
		if i < 0 {
			return nil, nil
		}
		if err := validateEdit(changed); err != nil {
			return nil, err
		}
		stored := current[i]
		next := stored.WithActivity(uc.activity(domain.ActivityEdited, detailEdited))
		next.Title = changed.Title
		next.Description = changed.Description
		next.Priority = changed.Priority
		next.Category = changed.Category
		next.Status = changed.Status
		next.Completed = changed.Completed
		next.DueDate = changed.DueDate

		current[i] = next
		out := next.Clone()
		updated = &out
		return current, nil
	})
	if err != nil {
		if domain.IsValidation(err) {
			uc.fail(ctx, err)
		}
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	uc.notify.Notify(ctx, domain.Info("Success", "Task updated successfully"))
	return updated, nil
}

// SetStatus moves a task to status and keeps Completed in sync with it.
func (uc *UseCase) SetStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error) {
	if !status.Valid() {
		err := domain.NewError(domain.ErrCodeInvalid, "unknown status "+string(status))
		uc.fail(ctx, err)
		return nil, err
	}

	updated, err := uc.setStatus(ctx, id, status)
	if err != nil || updated == nil {
		return nil, err
	}

	uc.notify.Notify(ctx, domain.Info("Success", "Task updated successfully"))
	return updated, nil
}

func (uc *UseCase) setStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error) {
	var updated *domain.Task
	err := uc.tasks.Swap(ctx, func(current []domain.Task) ([]domain.Task, error) {
		i := indexOf(current, id)
		if i < 0 {
			return nil, nil
		}
		stored := current[i]
		detail := fmt.Sprintf("Status changed from %s to %s", stored.Status, status)
		next := stored.WithActivity(uc.activity(domain.ActivityStatusChanged, detail))
		next.Status = status
		next.Completed = status == domain.StatusCompleted

		current[i] = next
		out := next.Clone()
		updated = &out
		return current, nil
	})
	return updated, err
}

// ToggleComplete flips Completed only. Status is left alone and no activity is
// recorded, so the two completion signals can disagree afterwards.
func (uc *UseCase) ToggleComplete(ctx context.Context, id string) (*domain.Task, error) {
	var updated *domain.Task
	err := uc.tasks.Swap(ctx, func(current []domain.Task) ([]domain.Task, error) {
		i := indexOf(current, id)
		if i < 0 {
			return nil, nil
		}
		current[i].Completed = !current[i].Completed
		out := current[i].Clone()
		updated = &out
		return current, nil
	})
	return updated, err
}

// Delete removes the task and returns it with a trailing deleted activity.
// That activity only exists on the returned copy.
func (uc *UseCase) Delete(ctx context.Context, id string) (*domain.Task, error) {
	removed, err := uc.delete(ctx, id)
	if err != nil || removed == nil {
		return nil, err
	}

	uc.notify.Notify(ctx, domain.Info("Success", "Task deleted successfully"))
	return removed, nil
}

func (uc *UseCase) delete(ctx context.Context, id string) (*domain.Task, error) {
	var removed *domain.Task
	err := uc.tasks.Swap(ctx, func(current []domain.Task) ([]domain.Task, error) {
		i := indexOf(current, id)
		if i < 0 {
			return nil, nil
		}
		out := current[i].WithActivity(uc.activity(domain.ActivityDeleted, detailDeleted))
		removed = &out
		return append(current[:i], current[i+1:]...), nil
	})
	return removed, err
}

// BulkSetStatus applies SetStatus to every selected id and clears the selection.
// It returns how many tasks were found and updated.
func (uc *UseCase) BulkSetStatus(ctx context.Context, sel *domain.Selection, status domain.Status) (int, error) {
	defer sel.Clear()

	if !status.Valid() {
		err := domain.NewError(domain.ErrCodeInvalid, "unknown status "+string(status))
		uc.fail(ctx, err)
		return 0, err
	}

	updated := 0
	for _, id := range sel.IDs() {
		task, err := uc.setStatus(ctx, id, status)
		if err != nil {
			return updated, err
		}
		if task != nil {
			updated++
		}
	}

	uc.notify.Notify(ctx, domain.Info("Success", fmt.Sprintf("%d tasks updated", updated)))
	return updated, nil
}

// BulkDelete deletes every selected id and clears the selection.
func (uc *UseCase) BulkDelete(ctx context.Context, sel *domain.Selection) (int, error) {
	defer sel.Clear()

	deleted := 0
	for _, id := range sel.IDs() {
		task, err := uc.delete(ctx, id)
		if err != nil {
			return deleted, err
		}
		if task != nil {
			deleted++
		}
	}

	uc.notify.Notify(ctx, domain.Info("Success", fmt.Sprintf("%d tasks deleted", deleted)))
	return deleted, nil
}

// Reorder moves fromID into the slot toID held before the move, so a forward
// drop lands after the target and a backward drop lands before it: with
// [1 2 3], Reorder(1, 2) gives [2 1 3] and Reorder(3, 1) gives [3 1 2]. It
// reports whether the collection changed.
func (uc *UseCase) Reorder(ctx context.Context, fromID, toID string) (bool, error) {
	if fromID == toID {
		return false, nil
	}

	moved := false
	err := uc.tasks.Swap(ctx, func(current []domain.Task) ([]domain.Task, error) {
		from, to := indexOf(current, fromID), indexOf(current, toID)
		if from < 0 || to < 0 {
			return nil, nil
		}
		task := current[from]
		current = append(current[:from], current[from+1:]...)
		current = append(current, domain.Task{})
		copy(current[to+1:], current[to:])
		current[to] = task
		moved = true
		return current, nil
	})
	if err != nil || !moved {
		return false, err
	}

	uc.notify.Notify(ctx, domain.Info("Tasks reordered", "The task order has been updated"))
	return true, nil
}

func (uc *UseCase) activity(kind domain.ActivityType, details string) domain.Activity {
	return domain.Activity{
		ID:        uc.newID(),
		Type:      kind,
		Timestamp: uc.now(),
		Details:   details,
	}
}

func (uc *UseCase) fail(ctx context.Context, err error) {
	uc.logger.Debug("task operation rejected", zap.Error(err))
	uc.notify.Notify(ctx, domain.Failure(err.Error()))
}

func validateEdit(t domain.Task) error {
	draft := domain.TaskDraft{Title: t.Title, Category: t.Category, Priority: t.Priority}
	if err := draft.Validate(); err != nil {
		return err
	}
	if !t.Status.Valid() {
		return domain.NewError(domain.ErrCodeInvalid, "unknown status "+string(t.Status))
	}
	return nil
}

func indexOf(tasks []domain.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
