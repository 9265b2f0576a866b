package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/havenlist/estate-api/internal/auth"
	"github.com/havenlist/estate-api/internal/utils"
)

// RequirePermission enforces that the authenticated admin carries the named
// permission.  An admin credential with no permission list at all is
// unrestricted; a present list restricts the admin to exactly its entries.
// It assumes the admin gate already stored the principal in the context.
func RequirePermission(perm string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(CtxPrincipal).(auth.Claims)
			if !ok {
				return utils.Fail(c, http.StatusForbidden,
					"permission denied", utils.CodeForbidden, "")
			}
			perms, listed := claims.Extra["permissions"]
			if !listed || perms == nil {
				return next(c)
			}
			// JWT arrays decode as []interface{} of strings.
			if arr, ok := perms.([]interface{}); ok {
				for _, p := range arr {
					if s, ok := p.(string); ok && s == perm {
						return next(c)
					}
				}
			}
			return utils.Fail(c, http.StatusForbidden,
				"permission denied", utils.CodeForbidden, "")
		}
	}
}
