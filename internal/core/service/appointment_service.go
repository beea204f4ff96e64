package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
	"github.com/vertex-clinic/booking-api/internal/core/ports"
	"github.com/vertex-clinic/booking-api/internal/infrastructure/metrics"
)

type AppointmentService struct {
	repo          ports.AppointmentRepository
	notifications ports.NotificationQueue
	validate      *validator.Validate
	logger        zerolog.Logger
	now           func() time.Time
}

// NewAppointmentService builds the service. notifications may be nil, in which
// case bookings are stored without alerting the administrator.
func NewAppointmentService(repo ports.AppointmentRepository, notifications ports.NotificationQueue, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{
		repo:          repo,
		notifications: notifications,
		validate:      newValidator(),
		logger:        logger,
		now:           time.Now,
	}
}

// Create validates and stores a new appointment, then hands it to the
// notification queue without waiting for delivery.
func (s *AppointmentService) Create(ctx context.Context, input ports.CreateAppointmentInput) (*domain.Appointment, error) {
	input = trimInput(input)
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	// MongoDB keeps millisecond precision; truncating keeps the echoed record
	// identical to what a later read returns.
	now := s.now().UTC().Truncate(time.Millisecond)
	appt := &domain.Appointment{
		FullName:       input.FullName,
		MobileNumber:   input.MobileNumber,
		EmailAddress:   input.EmailAddress,
		Department:     input.Department,
		DoctorName:     input.DoctorName,
		ReasonForVisit: input.ReasonForVisit,
		Status:         domain.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	saved, err := s.repo.Create(ctx, appt)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create appointment")
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	metrics.AppointmentsCreatedTotal.Inc()
	s.logger.Info().Str("appointment_id", saved.ID).Str("department", saved.Department).Msg("appointment created")

	if s.notifications != nil {
		s.notifications.Enqueue(*saved)
	} else {
		metrics.NotificationsTotal.WithLabelValues(metrics.NotificationSkipped).Inc()
	}

	return saved, nil
}

// List returns every stored appointment, newest first.
func (s *AppointmentService) List(ctx context.Context) ([]*domain.Appointment, error) {
	items, err := s.repo.ListNewestFirst(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list appointments")
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return items, nil
}

func trimInput(in ports.CreateAppointmentInput) ports.CreateAppointmentInput {
	return ports.CreateAppointmentInput{
		FullName:       strings.TrimSpace(in.FullName),
		MobileNumber:   strings.TrimSpace(in.MobileNumber),
		EmailAddress:   strings.TrimSpace(in.EmailAddress),
		Department:     strings.TrimSpace(in.Department),
		DoctorName:     strings.TrimSpace(in.DoctorName),
		ReasonForVisit: strings.TrimSpace(in.ReasonForVisit),
	}
}
