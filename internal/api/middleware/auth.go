package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/classifieds/ads-api/internal/api/metrics"
	"github.com/classifieds/ads-api/internal/core/domain"
	"github.com/classifieds/ads-api/internal/core/ports"
)

// PrincipalKey is the echo context key holding the resolved *domain.Principal.
const PrincipalKey = "principal"

// Auth resolves the token carried in header and injects the principal into
// context. Missing, malformed, unknown and expired tokens are rejected with 401.
func Auth(auth ports.AuthService, header string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(header))
			if raw == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}

			value, err := uuid.Parse(raw)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("malformed").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			p, err := auth.Resolve(c.Request().Context(), value)
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				metrics.AuthFailuresTotal.WithLabelValues("expired").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
			case errors.Is(err, domain.ErrUnauthorized):
				metrics.AuthFailuresTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			case err != nil:
				return err
			}

			c.Set(PrincipalKey, p)
			return next(c)
		}
	}
}
