package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/labworks/clinical-labs-api/internal/api"
	"github.com/labworks/clinical-labs-api/internal/core/ports"
)

// LaboratoryHandler handles HTTP requests for laboratories and their analysis
// assignments.
type LaboratoryHandler struct {
	service ports.LaboratoryService
}

func NewLaboratoryHandler(service ports.LaboratoryService) *LaboratoryHandler {
	return &LaboratoryHandler{service: service}
}

type laboratoryRequest struct {
	Name      string `json:"name"      validate:"required"`
	Address   string `json:"address"   validate:"required"`
	Phone     string `json:"phone"     validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Specialty string `json:"specialty" validate:"required"`
	Active    bool   `json:"active"`
}

type assignAnalysisRequest struct {
	AnalysisTypeID string `json:"analysis_type_id" validate:"required"`
	Available      *bool  `json:"available"`
}

// Create registers a new laboratory.
//
// @Summary      Create a laboratory
// @Tags         laboratories
// @Accept       json
// @Produce      json
// @Param        body  body  laboratoryRequest  true  "Laboratory details"
// @Success      201   {object}  api.Response
// @Failure      400   {object}  api.Response
// @Router       /api/laboratorios [post]
func (h *LaboratoryHandler) Create(c echo.Context) error {
	var req laboratoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lab, err := h.service.Create(c.Request().Context(), ports.LaboratoryInput{
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		Specialty: req.Specialty,
		Active:    true,
	})
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusCreated, "laboratory created successfully", lab)
}

func (h *LaboratoryHandler) List(c echo.Context) error {
	labs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "laboratories retrieved successfully", labs)
}

// ListActive excludes soft-deleted laboratories.
func (h *LaboratoryHandler) ListActive(c echo.Context) error {
	labs, err := h.service.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "active laboratories retrieved successfully", labs)
}

func (h *LaboratoryHandler) ListBySpecialty(c echo.Context) error {
	labs, err := h.service.ListBySpecialty(c.Request().Context(), c.Param("especialidad"))
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "laboratories retrieved successfully", labs)
}

// Search matches laboratories by name substring (?nombre=).
func (h *LaboratoryHandler) Search(c echo.Context) error {
	name := c.QueryParam("nombre")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter nombre is required")
	}
	labs, err := h.service.SearchByName(c.Request().Context(), name)
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "search completed", labs)
}

func (h *LaboratoryHandler) GetByID(c echo.Context) error {
	lab, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "laboratory found", lab)
}

func (h *LaboratoryHandler) Update(c echo.Context) error {
	var req laboratoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lab, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.LaboratoryInput{
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		Specialty: req.Specialty,
		Active:    req.Active,
	})
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "laboratory updated successfully", lab)
}

// SoftDelete marks the laboratory inactive; the record stays retrievable by ID.
func (h *LaboratoryHandler) SoftDelete(c echo.Context) error {
	if err := h.service.SoftDelete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "laboratory deleted successfully", nil)
}

// AssignAnalysis links an analysis type to the laboratory. A repeated
// assignment of the same pair is rejected.
//
// @Summary      Assign an analysis type to a laboratory
// @Tags         laboratories
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Laboratory ID"
// @Param        body  body  assignAnalysisRequest  true  "Assignment"
// @Success      201   {object}  api.Response
// @Failure      400   {object}  api.Response
// @Failure      404   {object}  api.Response
// @Router       /api/laboratorios/{id}/analisis [post]
func (h *LaboratoryHandler) AssignAnalysis(c echo.Context) error {
	var req assignAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	assignment, err := h.service.AssignAnalysis(c.Request().Context(), c.Param("id"), ports.AssignAnalysisInput{
		AnalysisTypeID: req.AnalysisTypeID,
		Available:      available,
	})
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusCreated, "analysis assigned successfully", assignment)
}

func (h *LaboratoryHandler) ListAssignments(c echo.Context) error {
	assignments, err := h.service.ListAssignments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "assignments retrieved successfully", assignments)
}
