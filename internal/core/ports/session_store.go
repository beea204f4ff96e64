package ports

import (
	"context"
	"time"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
)

// SessionStore persists server-side sessions with an inactivity TTL.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session, ttl time.Duration) error
	// Get returns domain.ErrSessionNotFound for unknown or expired IDs.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Touch pushes the session's expiry ttl into the future.
	Touch(ctx context.Context, id string, ttl time.Duration) error
}
