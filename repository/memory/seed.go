package memory

import (
	"time"

	"github.com/fastygo/taskbuddy/domain"
)

// Seed returns the fixed starter collection shown to a fresh workspace.
func Seed(now time.Time) []domain.Task {
	created := func(id string) []domain.Activity {
		return []domain.Activity{{
			ID:        id,
			Type:      domain.ActivityCreated,
			Timestamp: now,
			Details:   "Task created",
		}}
	}

	return []domain.Task{
		{
			ID:          "1",
			Title:       "Interview with Design Team",
			Description: "Initial interview with the product design team",
			Priority:    domain.PriorityHigh,
			Category:    domain.CategoryWork,
			Status:      domain.StatusTodo,
			CreatedAt:   now,
			DueDate:     now,
			Activities:  created("act1"),
		},
		{
			ID:          "2",
			Title:       "Morning Workout",
			Description: "30 minutes cardio and strength training",
			Priority:    domain.PriorityMedium,
			Category:    domain.CategoryPersonal,
			Status:      domain.StatusTodo,
			CreatedAt:   now,
			DueDate:     now,
			Activities:  created("act2"),
		},
		{
			ID:          "3",
			Title:       "Submit Project Proposal",
			Description: "Final review and submission of the project proposal",
			Priority:    domain.PriorityHigh,
			Category:    domain.CategoryWork,
			Status:      domain.StatusCompleted,
			Completed:   true,
			CreatedAt:   now,
			DueDate:     now,
			Activities:  created("act3"),
		},
	}
}
