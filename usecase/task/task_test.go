package task

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskbuddy/domain"
	"github.com/fastygo/taskbuddy/repository"
	"github.com/fastygo/taskbuddy/repository/memory"
)

type recorder struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (r *recorder) Notify(_ context.Context, n domain.Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

func (r *recorder) last(t *testing.T) domain.Notification {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.items, "expected a notification")
	return r.items[len(r.items)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

var fixedNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func setupStore(t *testing.T, seed []domain.Task) (*UseCase, repository.TaskRepository, *recorder) {
	t.Helper()
	repo := memory.NewTaskRepository(seed)
	rec := &recorder{}
	n := 0
	uc := New(repo, rec, nil,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	return uc, repo, rec
}

func list(t *testing.T, repo repository.TaskRepository) []domain.Task {
	t.Helper()
	tasks, err := repo.List(context.Background())
	require.NoError(t, err)
	return tasks
}

func ids(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}

func TestAdd_RejectsBlankTitle(t *testing.T) {
	uc, repo, rec := setupStore(t, memory.Seed(fixedNow))
	before := len(list(t, repo))

	for _, title := range []string{"", "   ", "\t\n"} {
		t.Run(fmt.Sprintf("%q", title), func(t *testing.T) {
			created, err := uc.Add(context.Background(), domain.TaskDraft{Title: title})
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.Nil(t, created)
			assert.Len(t, list(t, repo), before)

			n := rec.last(t)
			assert.Equal(t, domain.SeverityError, n.Severity)
			assert.Equal(t, "Task title is required", n.Description)
		})
	}
}

func TestAdd_RejectsUnknownCategory(t *testing.T) {
	uc, repo, _ := setupStore(t, nil)

	_, err := uc.Add(context.Background(), domain.TaskDraft{Title: "Groceries", Category: "errands"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, list(t, repo))
}

func TestAdd_SeedsSingleCreatedActivity(t *testing.T) {
	uc, repo, rec := setupStore(t, memory.Seed(fixedNow))

	created, err := uc.Add(context.Background(), domain.TaskDraft{
		Title:    "Buy milk",
		Category: domain.CategoryPersonal,
		Priority: domain.PriorityLow,
	})
	require.NoError(t, err)

	require.Len(t, created.Activities, 1)
	assert.Equal(t, domain.ActivityCreated, created.Activities[0].Type)
	assert.Equal(t, "Task created", created.Activities[0].Details)
	assert.Equal(t, domain.StatusTodo, created.Status)
	assert.False(t, created.Completed)
	assert.Equal(t, fixedNow, created.CreatedAt)
	assert.Equal(t, fixedNow, created.DueDate, "due date defaults to now")

	tasks := list(t, repo)
	require.Len(t, tasks, 4)
	assert.Equal(t, created.ID, tasks[3].ID, "new tasks are appended")
	require.Len(t, tasks[3].Activities, 1)

	n := rec.last(t)
	assert.Equal(t, domain.Info("Success", "Task added successfully"), n)
}

func TestAdd_AppliesFormDefaults(t *testing.T) {
	uc, _, _ := setupStore(t, nil)

	created, err := uc.Add(context.Background(), domain.TaskDraft{Title: "Plan sprint"})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryWork, created.Category)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
}

func TestSetStatus_SyncsCompleted(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusTodo, domain.StatusInProgress, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			uc, _, _ := setupStore(t, memory.Seed(fixedNow))

			for _, id := range []string{"1", "2", "3"} {
				updated, err := uc.SetStatus(context.Background(), id, status)
				require.NoError(t, err)
				require.NotNil(t, updated)
				assert.Equal(t, status, updated.Status)
				assert.Equal(t, status == domain.StatusCompleted, updated.Completed)
			}
		})
	}
}

func TestSetStatus_RecordsTransition(t *testing.T) {
	uc, repo, _ := setupStore(t, memory.Seed(fixedNow))

	_, err := uc.SetStatus(context.Background(), "1", domain.StatusInProgress)
	require.NoError(t, err)

	stored := list(t, repo)[0]
	require.Len(t, stored.Activities, 2)
	last := stored.Activities[1]
	assert.Equal(t, domain.ActivityStatusChanged, last.Type)
	assert.Equal(t, "Status changed from todo to in-progress", last.Details)
}

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	uc, repo, _ := setupStore(t, memory.Seed(fixedNow))
	before := list(t, repo)

	_, err := uc.SetStatus(context.Background(), "1", "blocked")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, before, list(t, repo))
}

func TestToggleComplete_DoesNotSyncStatus(t *testing.T) {
	uc, repo, rec := setupStore(t, memory.Seed(fixedNow))

	updated, err := uc.ToggleComplete(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.Completed)
	assert.Equal(t, domain.StatusTodo, updated.Status, "toggle leaves status untouched")
	assert.NotEqual(t, updated.Completed, updated.Status == domain.StatusCompleted)
	assert.Len(t, updated.Activities, 1, "toggle records no activity")

	updated, err = uc.ToggleComplete(context.Background(), "3")
	require.NoError(t, err)
	assert.False(t, updated.Completed)
	assert.Equal(t, domain.StatusCompleted, updated.Status)

	assert.Len(t, list(t, repo), 3)
	assert.Zero(t, rec.count(), "toggle raises no notification")
}

func TestMissingID_LeavesCollectionUnchanged(t *testing.T) {
	uc, repo, rec := setupStore(t, memory.Seed(fixedNow))
	ctx := context.Background()
	before := list(t, repo)

	edited, err := uc.Edit(ctx, domain.Task{
		ID:       "missing",
		Title:    "Ghost",
		Category: domain.CategoryWork,
		Priority: domain.PriorityLow,
		Status:   domain.StatusTodo,
	})
	require.NoError(t, err)
	assert.Nil(t, edited)

	updated, err := uc.SetStatus(ctx, "missing", domain.StatusCompleted)
	require.NoError(t, err)
	assert.Nil(t, updated)

	removed, err := uc.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, removed)

	toggled, err := uc.ToggleComplete(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, toggled)

	moved, err := uc.Reorder(ctx, "missing", "1")
	require.NoError(t, err)
	assert.False(t, moved)

	assert.Equal(t, before, list(t, repo))
	assert.Zero(t, rec.count(), "unknown ids are silent")
}

func TestReorder_SameIDIsNoop(t *testing.T) {
	uc, repo, _ := setupStore(t, memory.Seed(fixedNow))
	before := list(t, repo)

	for _, id := range []string{"1", "2", "3"} {
		moved, err := uc.Reorder(context.Background(), id, id)
		require.NoError(t, err)
		assert.False(t, moved)
	}
	assert.Equal(t, before, list(t, repo))
}

func TestReorder_MovesIntoTargetSlot(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		expected []string
	}{
		{name: "first onto last", from: "1", to: "3", expected: []string{"2", "3", "1"}},
		{name: "last onto first", from: "3", to: "1", expected: []string{"3", "1", "2"}},
		{name: "first onto second", from: "1", to: "2", expected: []string{"2", "1", "3"}},
		{name: "second onto first", from: "2", to: "1", expected: []string{"2", "1", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo, rec := setupStore(t, memory.Seed(fixedNow))

			moved, err := uc.Reorder(context.Background(), tt.from, tt.to)
			require.NoError(t, err)
			assert.True(t, moved)
			assert.Equal(t, tt.expected, ids(list(t, repo)))
			assert.Equal(t, "Tasks reordered", rec.last(t).Title)
		})
	}
}

func TestEdit_AppendsActivityAndKeepsIdentity(t *testing.T) {
	uc, repo, rec := setupStore(t, memory.Seed(fixedNow))

	original := list(t, repo)[1]
	changed := original
	changed.Title = "Evening Workout"
	changed.Priority = domain.PriorityLow
	changed.CreatedAt = fixedNow.Add(48 * time.Hour)
	changed.Activities = nil

	updated, err := uc.Edit(context.Background(), changed)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Evening Workout", updated.Title)
	assert.Equal(t, domain.PriorityLow, updated.Priority)
	assert.Equal(t, original.CreatedAt, updated.CreatedAt, "creation time is immutable")
	require.Len(t, updated.Activities, 2)
	assert.Equal(t, domain.ActivityCreated, updated.Activities[0].Type)
	assert.Equal(t, domain.ActivityEdited, updated.Activities[1].Type)
	assert.Equal(t, "Task details were updated", updated.Activities[1].Details)

	tasks := list(t, repo)
	assert.Equal(t, []string{"1", "2", "3"}, ids(tasks), "edit keeps position")
	assert.Equal(t, "Evening Workout", tasks[1].Title)
	assert.Equal(t, "Task updated successfully", rec.last(t).Description)
}

func TestEdit_StoresStatusAndCompletedAsGiven(t *testing.T) {
	uc, _, _ := setupStore(t, memory.Seed(fixedNow))

	changed := memory.Seed(fixedNow)[0]
	changed.Status = domain.StatusCompleted
	changed.Completed = false

	updated, err := uc.Edit(context.Background(), changed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.False(t, updated.Completed)
}

func TestEdit_RejectsBlankTitle(t *testing.T) {
	uc, repo, _ := setupStore(t, memory.Seed(fixedNow))
	before := list(t, repo)

	changed := before[0]
	changed.Title = "  "

	_, err := uc.Edit(context.Background(), changed)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, before, list(t, repo))
}

func TestEdit_UnknownIDSkipsValidation(t *testing.T) {
	uc, repo, rec := setupStore(t, memory.Seed(fixedNow))
	before := list(t, repo)

	for _, id := range []string{"missing", ""} {
		edited, err := uc.Edit(context.Background(), domain.Task{ID: id, Title: "   ", Category: "bogus"})
		require.NoError(t, err, id)
		assert.Nil(t, edited, id)
	}

	assert.Equal(t, before, list(t, repo))
	assert.Zero(t, rec.count(), "unknown ids are silent even with invalid fields")
}

func TestDelete_ReturnsCopyWithDeletedActivity(t *testing.T) {
	uc, repo, rec := setupStore(t, memory.Seed(fixedNow))

	removed, err := uc.Delete(context.Background(), "2")
	require.NoError(t, err)
	require.NotNil(t, removed)

	require.Len(t, removed.Activities, 2)
	assert.Equal(t, domain.ActivityDeleted, removed.Activities[1].Type)
	assert.Equal(t, "Task was deleted", removed.Activities[1].Details)
	assert.Equal(t, []string{"1", "3"}, ids(list(t, repo)))
	assert.Equal(t, "Task deleted successfully", rec.last(t).Description)
}

func TestBulkSetStatus_AppliesAndClearsSelection(t *testing.T) {
	uc, repo, _ := setupStore(t, memory.Seed(fixedNow))
	sel := domain.NewSelection("1", "missing", "2")

	updated, err := uc.BulkSetStatus(context.Background(), sel, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.Zero(t, sel.Len())

	for _, task := range list(t, repo) {
		assert.Equal(t, domain.StatusCompleted, task.Status, task.ID)
		assert.True(t, task.Completed, task.ID)
	}
	stored := list(t, repo)[0]
	assert.Equal(t, domain.ActivityStatusChanged, stored.Activities[len(stored.Activities)-1].Type)
}

func TestBulkSetStatus_InvalidStatusStillClearsSelection(t *testing.T) {
	uc, repo, _ := setupStore(t, memory.Seed(fixedNow))
	before := list(t, repo)
	sel := domain.NewSelection("1", "2")

	_, err := uc.BulkSetStatus(context.Background(), sel, "archived")
	require.Error(t, err)
	assert.Zero(t, sel.Len())
	assert.Equal(t, before, list(t, repo))
}

func TestBulkDelete_RemovesSelected(t *testing.T) {
	uc, repo, rec := setupStore(t, memory.Seed(fixedNow))
	sel := domain.NewSelection("3", "1", "missing")

	deleted, err := uc.BulkDelete(context.Background(), sel)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.Zero(t, sel.Len())
	assert.Equal(t, []string{"2"}, ids(list(t, repo)))
	assert.Equal(t, "2 tasks deleted", rec.last(t).Description)
}

func TestScenario_PayRentLifecycle(t *testing.T) {
	uc, repo, _ := setupStore(t, nil)
	ctx := context.Background()

	a, err := uc.Add(ctx, domain.TaskDraft{Title: "Pay rent", Category: domain.CategoryWork})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, a.Status)

	_, err = uc.SetStatus(ctx, a.ID, domain.StatusInProgress)
	require.NoError(t, err)
	final, err := uc.SetStatus(ctx, a.ID, domain.StatusCompleted)
	require.NoError(t, err)

	require.Len(t, final.Activities, 3)
	kinds := []domain.ActivityType{}
	for _, act := range final.Activities {
		kinds = append(kinds, act.Type)
	}
	assert.Equal(t, []domain.ActivityType{
		domain.ActivityCreated,
		domain.ActivityStatusChanged,
		domain.ActivityStatusChanged,
	}, kinds)
	assert.Equal(t, "Status changed from in-progress to completed", final.Activities[2].Details)
	assert.Equal(t, domain.StatusCompleted, final.Status)
	assert.True(t, final.Completed)

	assert.Equal(t, *final, list(t, repo)[0])
}

func TestReturnedTasksDoNotAliasStore(t *testing.T) {
	uc, repo, _ := setupStore(t, memory.Seed(fixedNow))

	updated, err := uc.SetStatus(context.Background(), "1", domain.StatusInProgress)
	require.NoError(t, err)
	updated.Activities[0].Details = "tampered"
	updated.Title = "tampered"

	stored := list(t, repo)[0]
	assert.Equal(t, "Task created", stored.Activities[0].Details)
	assert.Equal(t, "Interview with Design Team", stored.Title)
}
