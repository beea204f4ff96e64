package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthorized = errors.New("unauthorized")
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side state bound to a browser through the session cookie.
type Session struct {
	ID        string
	IsAdmin   bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its inactivity deadline.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
