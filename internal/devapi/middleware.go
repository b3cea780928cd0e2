package devapi

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/petcare/petcare-client/internal/core/domain"
)

const (
	authScheme = "Token"

	accountKey = "account"
	claimsKey  = "claims"
)

// TokenAuth validates the "Authorization: Token <jwt>" header and injects
// the account and its token claims into the context.
func TokenAuth(svc *AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized(msgNoCredentials)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], authScheme) || strings.TrimSpace(parts[1]) == "" {
				return unauthorized(msgInvalidToken)
			}

			acct, claims, err := svc.Authenticate(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			c.Set(accountKey, acct)
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// AdminOnly lets through accounts holding the administrator role.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if acct := currentAccount(c); acct == nil || acct.Role != domain.RoleAdministrator {
			return &detailError{status: http.StatusForbidden, detail: msgForbidden}
		}
		return next(c)
	}
}

func currentAccount(c echo.Context) *Account {
	acct, _ := c.Get(accountKey).(*Account)
	return acct
}

func currentClaims(c echo.Context) *jwt.RegisteredClaims {
	claims, _ := c.Get(claimsKey).(*jwt.RegisteredClaims)
	return claims
}
