package ports

import (
	"context"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
)

// Notifier delivers a new-appointment alert to the clinic administrator.
type Notifier interface {
	Notify(ctx context.Context, a domain.Appointment) error
}
