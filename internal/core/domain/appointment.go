package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

// StatusPending is assigned to every appointment at creation. Nothing in the
// service moves an appointment out of this state.
const StatusPending AppointmentStatus = "Pending"

// Appointment is a patient's booking request. Records are immutable once stored.
type Appointment struct {
	ID             string
	FullName       string
	MobileNumber   string
	EmailAddress   string
	Department     string
	DoctorName     string
	ReasonForVisit string
	Status         AppointmentStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
