package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/labworks/clinical-labs-api/internal/api"
	"github.com/labworks/clinical-labs-api/internal/core/ports"
)

// ResultHandler handles HTTP requests for analysis results.
type ResultHandler struct {
	service ports.ResultService
}

func NewResultHandler(service ports.ResultService) *ResultHandler {
	return &ResultHandler{service: service}
}

type createResultRequest struct {
	AppointmentID  string     `json:"appointment_id" validate:"required"`
	TechnicianID   string     `json:"technician_id"  validate:"required"`
	PDFPath        string     `json:"pdf_path"`
	Notes          string     `json:"notes"`
	ResultDate     *time.Time `json:"result_date"`
	Status         string     `json:"status"         validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED REVIEWED"`
	MeasuredValues string     `json:"measured_values"`
}

type updateResultRequest struct {
	PDFPath        *string    `json:"pdf_path"`
	Notes          *string    `json:"notes"`
	ResultDate     *time.Time `json:"result_date"`
	Status         *string    `json:"status" validate:"omitempty"`
	MeasuredValues *string    `json:"measured_values"`
}

type changeResultStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create records the result for an appointment. At most one result may exist
// per appointment.
//
// @Summary      Create an analysis result
// @Tags         results
// @Accept       json
// @Produce      json
// @Param        body  body  createResultRequest  true  "Result details"
// @Success      201   {object}  api.Response
// @Failure      400   {object}  api.Response
// @Router       /api/resultados [post]
func (h *ResultHandler) Create(c echo.Context) error {
	var req createResultRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := ports.CreateResultInput{
		AppointmentID:  req.AppointmentID,
		TechnicianID:   req.TechnicianID,
		PDFPath:        req.PDFPath,
		Notes:          req.Notes,
		Status:         req.Status,
		MeasuredValues: req.MeasuredValues,
	}
	if req.ResultDate != nil {
		input.ResultDate = *req.ResultDate
	}

	r, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusCreated, "result created successfully", r)
}

func (h *ResultHandler) List(c echo.Context) error {
	results, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "results retrieved successfully", results)
}

func (h *ResultHandler) GetByID(c echo.Context) error {
	r, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "result found", r)
}

func (h *ResultHandler) GetByAppointment(c echo.Context) error {
	r, err := h.service.GetByAppointment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "result found", r)
}

func (h *ResultHandler) ListByTechnician(c echo.Context) error {
	results, err := h.service.ListByTechnician(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "results retrieved successfully", results)
}

func (h *ResultHandler) ListByStatus(c echo.Context) error {
	results, err := h.service.ListByStatus(c.Request().Context(), c.Param("estado"))
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "results retrieved successfully", results)
}

// Update applies a partial update; absent fields are left unchanged.
func (h *ResultHandler) Update(c echo.Context) error {
	var req updateResultRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	r, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateResultInput{
		PDFPath:        req.PDFPath,
		Notes:          req.Notes,
		ResultDate:     req.ResultDate,
		Status:         req.Status,
		MeasuredValues: req.MeasuredValues,
	})
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "result updated successfully", r)
}

// ChangeStatus overwrites the result status.
func (h *ResultHandler) ChangeStatus(c echo.Context) error {
	var req changeResultStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	r, err := h.service.ChangeStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "result status updated successfully", r)
}

func (h *ResultHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "result deleted successfully", nil)
}
