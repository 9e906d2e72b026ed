package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/labworks/clinical-labs-api/internal/api"
	"github.com/labworks/clinical-labs-api/internal/core/domain"
	"github.com/labworks/clinical-labs-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user registration, authentication and
// management.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  registerRequest  true  "Registration details"
// @Success      201   {object}  api.Response
// @Failure      400   {object}  api.Response
// @Router       /api/usuarios/registro [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return api.Success(c, http.StatusCreated, "user registered successfully", user)
}

// Login authenticates a user and returns a signed token valid for 24 hours.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "Credentials"
// @Success      200   {object}  api.Response
// @Failure      401   {object}  api.Response
// @Failure      403   {object}  api.Response
// @Router       /api/usuarios/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return api.Success(c, http.StatusOK, "login successful", loginResponse{
		ID:      result.User.ID,
		Name:    result.User.Name,
		Surname: result.User.Surname,
		Email:   result.User.Email,
		Role:    result.User.Role,
		Token:   result.Token,
	})
}

// List returns every registered user.
//
// @Summary      List users
// @Tags         users
// @Security     BearerAuth
// @Success      200  {object}  api.Response
// @Router       /api/usuarios [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "users retrieved successfully", users)
}

// GetByID returns a single user.
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "user found", user)
}

// ListByRole returns users holding the given role.
func (h *UserHandler) ListByRole(c echo.Context) error {
	role := c.Param("rol")
	if !domain.ValidRole(role) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	}
	users, err := h.service.ListByRole(c.Request().Context(), role)
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "users retrieved successfully", users)
}

// Search matches users by name or surname substring (?texto=).
func (h *UserHandler) Search(c echo.Context) error {
	text := c.QueryParam("texto")
	if text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter texto is required")
	}
	users, err := h.service.SearchByName(c.Request().Context(), text)
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "search completed", users)
}

// Update replaces a user's mutable fields.
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
		Role:    req.Role,
		Active:  req.Active,
	})
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "user updated successfully", user)
}

// ChangePassword verifies the current password and stores a new one.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.NewPassword != req.ConfirmPassword {
		return echo.NewHTTPError(http.StatusBadRequest, "passwords do not match")
	}

	if err := h.service.ChangePassword(c.Request().Context(), c.Param("id"), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "password updated successfully", nil)
}

// Activate re-enables an account.
func (h *UserHandler) Activate(c echo.Context) error {
	if err := h.service.SetActive(c.Request().Context(), c.Param("id"), true); err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "user activated successfully", nil)
}

// Deactivate disables an account.
func (h *UserHandler) Deactivate(c echo.Context) error {
	if err := h.service.SetActive(c.Request().Context(), c.Param("id"), false); err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "user deactivated successfully", nil)
}

// SoftDelete marks the account inactive; the record remains.
func (h *UserHandler) SoftDelete(c echo.Context) error {
	if err := h.service.SoftDelete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "user deleted successfully", nil)
}

// Purge removes the account permanently.
func (h *UserHandler) Purge(c echo.Context) error {
	if err := h.service.Purge(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "user permanently deleted", nil)
}

// RecoverPassword mints a one-time reset token for the account.
func (h *UserHandler) RecoverPassword(c echo.Context) error {
	var req recoverPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.service.RecoverPassword(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "recovery instructions issued", recoveryResponse{RecoveryToken: token})
}

// ResetPassword consumes a recovery token and stores the new password.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return api.Success(c, http.StatusOK, "password reset successfully", nil)
}
