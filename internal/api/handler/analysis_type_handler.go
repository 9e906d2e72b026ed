package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/labworks/clinical-labs-api/internal/api"
	"github.com/labworks/clinical-labs-api/internal/core/ports"
)

// AnalysisTypeHandler handles HTTP requests for the analysis-type catalogue.
type AnalysisTypeHandler struct {
	service ports.AnalysisTypeService
}

func NewAnalysisTypeHandler(service ports.AnalysisTypeService) *AnalysisTypeHandler {
	return &AnalysisTypeHandler{service: service}
}

type analysisTypeRequest struct {
	Name           string  `json:"name"            validate:"required"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"           validate:"required,gt=0"`
	TurnaroundDays int     `json:"turnaround_days" validate:"required,min=1"`
	Active         bool    `json:"active"`
}

// Create adds a new analysis type to the catalogue.
//
// @Summary      Create an analysis type
// @Tags         analysis-types
// @Accept       json
// @Produce      json
// @Param        body  body  analysisTypeRequest  true  "Analysis type details"
// @Success      201   {object}  api.Response
// @Failure      400   {object}  api.Response
// @Router       /api/tipos-analisis [post]
func (h *AnalysisTypeHandler) Create(c echo.Context) error {
	var req analysisTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	t, err := h.service.Create(c.Request().Context(), ports.AnalysisTypeInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		TurnaroundDays: req.TurnaroundDays,
		Active:         true,
	})
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusCreated, "analysis type created successfully", t)
}

func (h *AnalysisTypeHandler) List(c echo.Context) error {
	types, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "analysis types retrieved successfully", types)
}

func (h *AnalysisTypeHandler) ListActive(c echo.Context) error {
	types, err := h.service.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "active analysis types retrieved successfully", types)
}

// Search matches analysis types by name substring (?nombre=).
func (h *AnalysisTypeHandler) Search(c echo.Context) error {
	name := c.QueryParam("nombre")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter nombre is required")
	}
	types, err := h.service.SearchByName(c.Request().Context(), name)
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "search completed", types)
}

func (h *AnalysisTypeHandler) GetByID(c echo.Context) error {
	t, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "analysis type found", t)
}

func (h *AnalysisTypeHandler) Update(c echo.Context) error {
	var req analysisTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	t, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.AnalysisTypeInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		TurnaroundDays: req.TurnaroundDays,
		Active:         req.Active,
	})
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "analysis type updated successfully", t)
}

func (h *AnalysisTypeHandler) SoftDelete(c echo.Context) error {
	if err := h.service.SoftDelete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "analysis type deleted successfully", nil)
}
