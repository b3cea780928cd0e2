package devapi

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/petcare/petcare-client/internal/core/domain"
)

// Messages of the REST contract. Clients show them verbatim.
const (
	msgInvalidCredentials = "No se pudo iniciar sesión con las credenciales proporcionadas."
	msgMissingCredentials = `Debe incluir "username_or_email" y "password".`
	msgUsernameTaken      = "Ya existe un usuario con este nombre de usuario."
	msgEmailTaken         = "Ya existe un usuario con este email."
	msgWrongPassword      = "La contraseña actual es incorrecta."
	msgPasswordMismatch   = "Las nuevas contraseñas no coinciden."
	msgPasswordTooShort   = "La nueva contraseña debe tener al menos 8 caracteres."
	msgUnknownRole        = "El rol especificado no existe."
	msgNoCredentials      = "Las credenciales de autenticación no se proveyeron."
	msgInvalidToken       = "Token inválido."
	msgForbidden          = "Usted no tiene permiso para realizar esta acción."
	msgNotFound           = "No encontrado."
)

// FieldErrors is rendered as {"field": ["msg", ...]} with status 400.
type FieldErrors map[string][]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k+": "+strings.Join(f[k], ", "))
	}
	sort.Strings(keys)
	return strings.Join(keys, "; ")
}

func fieldError(field, msg string) FieldErrors {
	return FieldErrors{field: {msg}}
}

func nonFieldError(msg string) FieldErrors {
	return FieldErrors{domain.NonFieldKey: {msg}}
}

// detailError is rendered as {"detail": "msg"}.
type detailError struct {
	status int
	detail string
}

func (e *detailError) Error() string { return e.detail }

func unauthorized(detail string) error {
	return &detailError{status: http.StatusUnauthorized, detail: detail}
}

// newErrorHandler renders errors the way the production backend does.
func newErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			fe FieldErrors
			de *detailError
			he *echo.HTTPError
			ve *domain.Error
		)
		switch {
		case errors.As(err, &fe):
			_ = c.JSON(http.StatusBadRequest, fe)
		case errors.As(err, &ve) && ve.Kind == domain.KindValidation:
			_ = c.JSON(http.StatusBadRequest, ve.Fields)
		case errors.As(err, &de):
			if de.status == http.StatusUnauthorized {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, authScheme)
			}
			_ = c.JSON(de.status, map[string]string{"detail": de.detail})
		case errors.Is(err, ErrAccountNotFound):
			_ = c.JSON(http.StatusNotFound, map[string]string{"detail": msgNotFound})
		case errors.As(err, &he):
			_ = c.JSON(he.Code, map[string]any{"detail": he.Message})
		default:
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
			_ = c.JSON(http.StatusInternalServerError, map[string]string{"detail": "Error interno del servidor."})
		}
	}
}
