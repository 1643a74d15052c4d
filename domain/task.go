package domain

import (
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryShopping Category = "shopping"
	CategoryHealth   Category = "health"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryShopping, CategoryHealth:
		return true
	}
	return false
}

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type ActivityType string

const (
	ActivityCreated       ActivityType = "created"
	ActivityEdited        ActivityType = "edited"
	ActivityDeleted       ActivityType = "deleted"
	ActivityStatusChanged ActivityType = "status_changed"
)

// Activity is an audit record of a single mutation applied to a task.
type Activity struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Details   string       `json:"details"`
}

// Task represents a unit of work tracked by the store.
//
// Status and Completed are set independently. Only status changes keep them
// in sync; toggling completion flips Completed alone.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Category    Category   `json:"category"`
	Status      Status     `json:"status"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	DueDate     time.Time  `json:"due_date"`
	Activities  []Activity `json:"activities"`
}

// Clone returns a copy whose activity log does not alias the receiver's.
func (t Task) Clone() Task {
	if t.Activities != nil {
		t.Activities = append([]Activity(nil), t.Activities...)
	}
	return t
}

// WithActivity returns a copy of the task with the activity appended.
func (t Task) WithActivity(a Activity) Task {
	out := t.Clone()
	out.Activities = append(out.Activities, a)
	return out
}

// IsCompleted reports whether either completion signal is set.
func (t *Task) IsCompleted() bool {
	return t != nil && (t.Completed || t.Status == StatusCompleted)
}

// DueDay returns the UTC calendar date of the due date as YYYY-MM-DD.
func (t *Task) DueDay() string {
	if t == nil || t.DueDate.IsZero() {
		return ""
	}
	return t.DueDate.UTC().Format(time.DateOnly)
}

// TaskDraft carries the user-supplied fields of a task that is about to be created.
type TaskDraft struct {
	Title       string
	Description string
	Category    Category
	Priority    Priority
	DueDate     time.Time
}

// Normalize fills in the defaults used by the create form.
func (d *TaskDraft) Normalize(now time.Time) {
	if d.Category == "" {
		d.Category = CategoryWork
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if d.DueDate.IsZero() {
		d.DueDate = now
	}
}

// Validate checks the draft; it must be normalized first.
func (d *TaskDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrTitleRequired
	}
	if !d.Category.Valid() {
		return NewError(ErrCodeInvalid, "unknown category "+string(d.Category))
	}
	if !d.Priority.Valid() {
		return NewError(ErrCodeInvalid, "unknown priority "+string(d.Priority))
	}
	return nil
}
