package devapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/petcare/petcare-client/internal/core/domain"
)

type Handler struct {
	svc *AuthService
}

func NewHandler(svc *AuthService) *Handler {
	return &Handler{svc: svc}
}

type loginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

type registerResponse struct {
	User  *domain.Profile `json:"user"`
	Token string          `json:"token"`
}

type assignRoleRequest struct {
	RoleName string `json:"role_name" validate:"required"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

// bind decodes and validates the request body. A malformed body is reported
// the way the production backend reports it.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return nonFieldError("JSON parse error.")
	}
	return c.Validate(dst)
}

func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Register(c echo.Context) error {
	var in RegisterInput
	if err := bind(c, &in); err != nil {
		return err
	}

	acct, token, err := h.svc.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, registerResponse{User: acct.Profile(), Token: token})
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return nonFieldError("JSON parse error.")
	}

	token, acct, err := h.svc.Login(c.Request().Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, UserID: acct.ID, Email: acct.Email})
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.svc.Logout(c.Request().Context(), currentClaims(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *Handler) Profile(c echo.Context) error {
	return c.JSON(http.StatusOK, currentAccount(c).Profile())
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var in ProfileInput
	if err := bind(c, &in); err != nil {
		return err
	}

	acct, err := h.svc.UpdateProfile(c.Request().Context(), currentAccount(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, acct.Profile())
}

func (h *Handler) ChangePassword(c echo.Context) error {
	var in PasswordInput
	if err := bind(c, &in); err != nil {
		return err
	}

	if err := h.svc.ChangePassword(c.Request().Context(), currentAccount(c), in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detailResponse{Detail: "Contraseña actualizada exitosamente."})
}

func (h *Handler) ListUsers(c echo.Context) error {
	accts, err := h.svc.ListAccounts(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]domain.UserSummary, 0, len(accts))
	for _, a := range accts {
		out = append(out, a.Summary())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) AssignRole(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return ErrAccountNotFound
	}
	var req assignRoleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	acct, err := h.svc.AssignRole(c.Request().Context(), id, req.RoleName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detailResponse{
		Detail: fmt.Sprintf("Rol '%s' asignado exitosamente al usuario '%s'.", acct.Role, acct.Username),
	})
}
