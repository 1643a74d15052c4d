// Package view derives what to render from the task collection. Nothing here
// mutates its input.
package view

import (
	"strings"

	"github.com/fastygo/taskbuddy/domain"
)

type Mode string

const (
	ModeList  Mode = "list"
	ModeBoard Mode = "board"
)

// ParseMode falls back to the list view for anything unrecognised.
func ParseMode(raw string) Mode {
	if Mode(raw) == ModeBoard {
		return ModeBoard
	}
	return ModeList
}

type SectionKey string

const (
	SectionTodo       SectionKey = "todo"
	SectionInProgress SectionKey = "inProgress"
	SectionCompleted  SectionKey = "completed"
)

// SectionOrder is the fixed order sections are rendered in.
var SectionOrder = []SectionKey{SectionTodo, SectionInProgress, SectionCompleted}

// AllCategories disables category filtering.
const AllCategories = "all"

// Criteria is the search and filter state applied before grouping.
type Criteria struct {
	Query    string
	Category string
	DueDate  string // YYYY-MM-DD, empty disables the filter
}

// Filter keeps tasks matching every criterion, preserving collection order.
func Filter(tasks []domain.Task, c Criteria) []domain.Task {
	query := strings.ToLower(c.Query)
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchesQuery(t, query) {
			continue
		}
		if c.Category != "" && c.Category != AllCategories && string(t.Category) != c.Category {
			continue
		}
		if c.DueDate != "" && t.DueDay() != c.DueDate {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesQuery(t domain.Task, lowered string) bool {
	if lowered == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), lowered) ||
		strings.Contains(strings.ToLower(t.Description), lowered)
}

// Groups maps each section to its tasks in collection order.
type Groups map[SectionKey][]domain.Task

// GroupList partitions tasks for the list view. The checks run in order, so a
// task counted as completed never shows up in todo or inProgress.
func GroupList(tasks []domain.Task) Groups {
	groups := emptyGroups()
	for _, t := range tasks {
		switch {
		case t.Completed || t.Status == domain.StatusCompleted:
			groups[SectionCompleted] = append(groups[SectionCompleted], t)
		case t.Status == domain.StatusTodo:
			groups[SectionTodo] = append(groups[SectionTodo], t)
		case t.Status == domain.StatusInProgress:
			groups[SectionInProgress] = append(groups[SectionInProgress], t)
		}
	}
	return groups
}

// GroupBoard buckets tasks for the board view. The columns overlap: every open
// work task is listed under both todo and inProgress.
func GroupBoard(tasks []domain.Task) Groups {
	groups := emptyGroups()
	for _, t := range tasks {
		if !t.Completed {
			groups[SectionTodo] = append(groups[SectionTodo], t)
		}
		if !t.Completed && t.Category == domain.CategoryWork {
			groups[SectionInProgress] = append(groups[SectionInProgress], t)
		}
		if t.Completed {
			groups[SectionCompleted] = append(groups[SectionCompleted], t)
		}
	}
	return groups
}

func emptyGroups() Groups {
	groups := make(Groups, len(SectionOrder))
	for _, key := range SectionOrder {
		groups[key] = []domain.Task{}
	}
	return groups
}
