package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
	"github.com/vertex-clinic/booking-api/internal/core/ports"
)

// messageResponse is the envelope of every non-list response, errors included.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

var errNotScalar = errors.New("expected a string, number or boolean")

// formString accepts any JSON scalar and keeps its literal text, so a phone
// number sent as 5551234 is stored as "5551234". null reads as empty.
type formString string

func (s *formString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0:
		return errNotScalar
	case b[0] == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = formString(v)
	case bytes.Equal(b, []byte("null")):
		*s = ""
	case b[0] == '{' || b[0] == '[':
		return errNotScalar
	default:
		*s = formString(b)
	}
	return nil
}

// createAppointmentRequest mirrors the booking form. Unknown fields are ignored.
type createAppointmentRequest struct {
	FullName       formString `json:"fullName" swaggertype:"string"`
	MobileNumber   formString `json:"mobileNumber" swaggertype:"string"`
	EmailAddress   formString `json:"emailAddress" swaggertype:"string"`
	Department     formString `json:"department" swaggertype:"string"`
	DoctorName     formString `json:"doctorName" swaggertype:"string"`
	ReasonForVisit formString `json:"reasonForVisit" swaggertype:"string"`
}

type appointmentResponse struct {
	ID             string    `json:"_id"`
	FullName       string    `json:"fullName"`
	MobileNumber   string    `json:"mobileNumber"`
	EmailAddress   string    `json:"emailAddress,omitempty"`
	Department     string    `json:"department"`
	DoctorName     string    `json:"doctorName,omitempty"`
	ReasonForVisit string    `json:"reasonForVisit,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type createAppointmentResponse struct {
	Message string              `json:"message"`
	Data    appointmentResponse `json:"data"`
}

func (r createAppointmentRequest) toInput() ports.CreateAppointmentInput {
	return ports.CreateAppointmentInput{
		FullName:       string(r.FullName),
		MobileNumber:   string(r.MobileNumber),
		EmailAddress:   string(r.EmailAddress),
		Department:     string(r.Department),
		DoctorName:     string(r.DoctorName),
		ReasonForVisit: string(r.ReasonForVisit),
	}
}

func toAppointmentResponse(a *domain.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:             a.ID,
		FullName:       a.FullName,
		MobileNumber:   a.MobileNumber,
		EmailAddress:   a.EmailAddress,
		Department:     a.Department,
		DoctorName:     a.DoctorName,
		ReasonForVisit: a.ReasonForVisit,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toAppointmentList(items []*domain.Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAppointmentResponse(a))
	}
	return out
}
