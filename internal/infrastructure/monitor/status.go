package monitor

import "time"

type Status struct {
	SessionStore string    `json:"session_store"`
	Redis        bool      `json:"redis"`
	Tasks        int       `json:"tasks"`
	TaskStore    bool      `json:"task_store"`
	LastCheck    time.Time `json:"last_check"`
}

// Healthy reports whether every configured dependency answered the last check.
func (s Status) Healthy() bool {
	if !s.TaskStore {
		return false
	}
	if s.SessionStore == "redis" {
		return s.Redis
	}
	return true
}
