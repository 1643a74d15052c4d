package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskDraft_NormalizeAndValidate(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	draft := TaskDraft{Title: "Buy milk"}
	draft.Normalize(now)
	assert.Equal(t, CategoryWork, draft.Category)
	assert.Equal(t, PriorityMedium, draft.Priority)
	assert.Equal(t, now, draft.DueDate)
	assert.NoError(t, draft.Validate())

	blank := TaskDraft{Title: " \t "}
	blank.Normalize(now)
	assert.ErrorIs(t, blank.Validate(), ErrTitleRequired)

	bad := TaskDraft{Title: "x", Priority: "urgent"}
	bad.Normalize(now)
	assert.True(t, IsValidation(bad.Validate()))
}

func TestTask_CloneDoesNotAlias(t *testing.T) {
	original := Task{ID: "1", Activities: []Activity{{ID: "a1", Details: "Task created"}}}
	clone := original.Clone()
	clone.Activities[0].Details = "changed"

	extended := original.WithActivity(Activity{ID: "a2"})
	assert.Equal(t, "Task created", original.Activities[0].Details)
	assert.Len(t, original.Activities, 1)
	assert.Len(t, extended.Activities, 2)
}

func TestTask_CompletionSignals(t *testing.T) {
	assert.True(t, (&Task{Completed: true}).IsCompleted())
	assert.True(t, (&Task{Status: StatusCompleted}).IsCompleted())
	assert.False(t, (&Task{Status: StatusInProgress}).IsCompleted())

	local := time.FixedZone("UTC+9", 9*3600)
	task := Task{DueDate: time.Date(2024, 3, 6, 2, 0, 0, 0, local)}
	assert.Equal(t, "2024-03-05", task.DueDay())
	assert.Equal(t, "", (&Task{}).DueDay())
}

func TestEnums(t *testing.T) {
	assert.True(t, StatusInProgress.Valid())
	assert.False(t, Status("done").Valid())
	assert.True(t, CategoryHealth.Valid())
	assert.False(t, Category("all").Valid())
	assert.False(t, Priority("").Valid())
}
