package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mannager/pos-system/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=3"`
	Name     string `json:"name" validate:"required"`
	Language string `json:"language"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Language *string `json:"language"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,min=3"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=3"`
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Language *string `json:"language"`
}

type setLanguageRequest struct {
	Language string `json:"language" validate:"required"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// List returns every user with the secret stripped.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.PublicUser
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Create registers a new standard user. Admin only.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      200   {object}  domain.PublicUser
// @Failure      403   {object}  map[string]string
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Create(c.Request().Context(), actor, ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Language: req.Language,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update shallow-merges the provided fields. Role changes are admin-only.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to merge"
// @Success      200   {object}  domain.PublicUser
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Update(c.Request().Context(), actor, id, ports.UserUpdate{
		Username: req.Username,
		Name:     req.Name,
		Role:     req.Role,
		Language: req.Language,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user. Admin only; self-deletion is rejected.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  statusResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "User deleted successfully"})
}

// ChangePassword updates a password: self-service with the current
// password, or admin-on-other without it.
//
// @Summary      Change a user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "User id"
// @Param        body  body      changePasswordRequest  true  "Passwords"
// @Success      200   {object}  statusResponse
// @Router       /api/users/{id}/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.ChangePassword(c.Request().Context(), actor, id, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Password updated successfully"})
}

// ResetPassword sets a new password without the current one. Admin only.
//
// @Summary      Reset a user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "User id"
// @Param        body  body      resetPasswordRequest  true  "New password"
// @Success      200   {object}  statusResponse
// @Router       /api/admin/users/{id}/reset-password [put]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.ResetPassword(c.Request().Context(), actor, id, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Password reset successfully"})
}

// Profile returns the authenticated user's own record.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.PublicUser
// @Router       /api/user/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.service.Profile(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's display fields.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to merge"
// @Success      200   {object}  domain.PublicUser
// @Router       /api/user/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), actor, ports.ProfileUpdate{
		Name:     req.Name,
		Language: req.Language,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetLanguage switches the authenticated user's language preference.
//
// @Summary      Set language preference
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      setLanguageRequest  true  "Language"
// @Success      200   {object}  map[string]string
// @Router       /api/user/language [put]
func (h *UserHandler) SetLanguage(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req setLanguageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.SetLanguage(c.Request().Context(), actor, req.Language); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"language": req.Language})
}
