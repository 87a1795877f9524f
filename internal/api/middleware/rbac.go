package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classifieds/ads-api/internal/core/domain"
)

// RBAC enforces role-based access control on the principal set by Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, _ := c.Get(PrincipalKey).(*domain.Principal)
			if p == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing token"})
			}
			if _, ok := allowed[p.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access forbidden"})
			}
			return next(c)
		}
	}
}
