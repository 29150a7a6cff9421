package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/crm-system/internal/api/handler"
	"github.com/crmdesk/crm-system/internal/api/metrics"
	"github.com/crmdesk/crm-system/internal/core/domain"
	"github.com/crmdesk/crm-system/internal/core/ports"
)

// TokenParser verifies a bearer token and returns its claims.
type TokenParser interface {
	ParseToken(ctx context.Context, token string) (*ports.TokenClaims, error)
}

// Auth validates the bearer token and injects its claims into the context.
func Auth(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := parser.ParseToken(c.Request().Context(), parts[1])
			switch {
			case errors.Is(err, domain.ErrTokenRevoked):
				metrics.RevokedTokensTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
			case errors.Is(err, domain.ErrUnauthenticated):
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			case err != nil:
				return err
			}

			c.Set(handler.ClaimsKey, claims)
			c.Set("user_id", claims.UserID)

			return next(c)
		}
	}
}
