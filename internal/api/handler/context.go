package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/classifieds/ads-api/internal/api/middleware"
	"github.com/classifieds/ads-api/internal/core/domain"
)

// ctxPrincipal returns the principal injected by the Auth middleware. Its
// absence on a protected route means the middleware did not run.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	p, ok := c.Get(middleware.PrincipalKey).(*domain.Principal)
	if !ok || p == nil {
		return nil, domain.ErrMissingToken
	}
	return p, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
