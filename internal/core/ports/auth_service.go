package ports

import (
	"context"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Authorize(ctx context.Context, sessionID string) (*domain.Session, error)
}
