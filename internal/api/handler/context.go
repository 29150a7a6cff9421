package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/crm-system/internal/core/ports"
)

// ClaimsKey is the echo context key under which the Auth middleware stores
// the verified *ports.TokenClaims.
const ClaimsKey = "claims"

// ctxClaims extracts the claims injected by the Auth middleware. A missing
// value means the route was registered without the middleware.
func ctxClaims(c echo.Context) (*ports.TokenClaims, error) {
	claims, _ := c.Get(ClaimsKey).(*ports.TokenClaims)
	if claims == nil || claims.UserID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

// bindAndValidate decodes the request body into req and validates it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
