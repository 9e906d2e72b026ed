package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/labworks/clinical-labs-api/internal/api"
	"github.com/labworks/clinical-labs-api/internal/core/ports"
)

// AppointmentHandler handles HTTP requests for appointment booking and
// lifecycle changes.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type appointmentRequest struct {
	PatientID      string    `json:"patient_id"       validate:"required"`
	LabID          string    `json:"lab_id"           validate:"required"`
	AnalysisTypeID string    `json:"analysis_type_id" validate:"required"`
	ScheduledAt    time.Time `json:"scheduled_at"     validate:"required"`
	Status         string    `json:"status"           validate:"omitempty,oneof=SCHEDULED CONFIRMED COMPLETED CANCELLED"`
	Notes          string    `json:"notes"`
}

func (r appointmentRequest) toInput() ports.AppointmentInput {
	return ports.AppointmentInput{
		PatientID:      r.PatientID,
		LabID:          r.LabID,
		AnalysisTypeID: r.AnalysisTypeID,
		ScheduledAt:    r.ScheduledAt,
		Status:         r.Status,
		Notes:          r.Notes,
	}
}

// Create books a new appointment. The lab and analysis type must exist and
// the scheduled time must be in the future.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        body  body  appointmentRequest  true  "Appointment details"
// @Success      201   {object}  api.Response
// @Failure      400   {object}  api.Response
// @Failure      404   {object}  api.Response
// @Router       /api/citas [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req appointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	a, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusCreated, "appointment created successfully", a)
}

func (h *AppointmentHandler) List(c echo.Context) error {
	appointments, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetByID(c echo.Context) error {
	a, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "appointment found", a)
}

func (h *AppointmentHandler) ListByPatient(c echo.Context) error {
	appointments, err := h.service.ListByPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ListByLab(c echo.Context) error {
	appointments, err := h.service.ListByLab(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "appointments retrieved successfully", appointments)
}

// ListUpcomingByLab returns future, non-cancelled appointments for a lab.
func (h *AppointmentHandler) ListUpcomingByLab(c echo.Context) error {
	appointments, err := h.service.ListUpcomingByLab(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "upcoming appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ListByStatus(c echo.Context) error {
	appointments, err := h.service.ListByStatus(c.Request().Context(), c.Param("estado"))
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) Update(c echo.Context) error {
	var req appointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	a, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "appointment updated successfully", a)
}

// ChangeStatus overwrites the appointment status (?estado=).
func (h *AppointmentHandler) ChangeStatus(c echo.Context) error {
	status := c.QueryParam("estado")
	if status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter estado is required")
	}

	a, err := h.service.ChangeStatus(c.Request().Context(), c.Param("id"), status)
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "appointment status updated successfully", a)
}

func (h *AppointmentHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "appointment deleted successfully", nil)
}
