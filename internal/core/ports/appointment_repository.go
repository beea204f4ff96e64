package ports

import (
	"context"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
)

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	// Create stores a new appointment and returns it with its assigned ID.
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	// ListNewestFirst returns every appointment ordered by createdAt descending.
	ListNewestFirst(ctx context.Context) ([]*domain.Appointment, error)
}
