package ports

import (
	"context"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
)

// CreateAppointmentInput carries the patient-supplied booking details.
// The json tags name the fields in validation messages.
type CreateAppointmentInput struct {
	FullName       string `json:"fullName"       validate:"required"`
	MobileNumber   string `json:"mobileNumber"   validate:"required"`
	EmailAddress   string `json:"emailAddress"`
	Department     string `json:"department"     validate:"required"`
	DoctorName     string `json:"doctorName"`
	ReasonForVisit string `json:"reasonForVisit"`
}

// AppointmentService defines use-case operations for appointments.
type AppointmentService interface {
	Create(ctx context.Context, input CreateAppointmentInput) (*domain.Appointment, error)
	List(ctx context.Context) ([]*domain.Appointment, error)
}

// NotificationQueue accepts appointments for asynchronous admin notification.
// Enqueue must never block the caller.
type NotificationQueue interface {
	Enqueue(a domain.Appointment)
}
