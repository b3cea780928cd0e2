package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/petcare/petcare-client/internal/core/ports"
)

type UsersHandler struct {
	api ports.UsersAPI
}

func NewUsersHandler(api ports.UsersAPI) *UsersHandler {
	return &UsersHandler{api: api}
}

type assignRoleRequest struct {
	RoleName string `json:"role_name" validate:"required"`
}

func (h *UsersHandler) List(c echo.Context) error {
	users, err := h.api.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UsersHandler) AssignRole(c echo.Context) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}
	var req assignRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.api.AssignRole(c.Request().Context(), id, req.RoleName); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"id": id, "role": req.RoleName})
}
