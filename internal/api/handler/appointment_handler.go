package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vertex-clinic/booking-api/internal/core/domain"
	"github.com/vertex-clinic/booking-api/internal/core/ports"
)

// AppointmentHandler handles HTTP requests for appointment operations.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Create handles POST /api/appointments.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        body  body      createAppointmentRequest  true  "Patient and booking details"
// @Success      201   {object}  createAppointmentResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}

	appt, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: ve.Error()})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error while saving appointment.").SetInternal(err)
	}

	return c.JSON(http.StatusCreated, createAppointmentResponse{
		Message: "Success",
		Data:    toAppointmentResponse(appt),
	})
}

// List handles GET /api/appointments. Requires an admin session.
//
// @Summary      List all appointments, newest first
// @Tags         appointments
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}   appointmentResponse
// @Failure      401  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Fetch failed").SetInternal(err)
	}
	return c.JSON(http.StatusOK, toAppointmentList(items))
}
