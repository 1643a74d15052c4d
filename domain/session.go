package domain

import "time"

// Identity is what the hosted identity provider tells us about a signed-in user.
type Identity struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

// Session is the explicit signed-in state handed to views and handlers.
type Session struct {
	ID          string    `json:"id"`
	UID         string    `json:"uid"`
	DisplayName string    `json:"display_name"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}

// Identity returns the user fields carried by the session.
func (s *Session) Identity() Identity {
	if s == nil {
		return Identity{}
	}
	return Identity{UID: s.UID, DisplayName: s.DisplayName, PhotoURL: s.PhotoURL}
}
