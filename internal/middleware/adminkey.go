package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"crypto/subtle" // constant-time comparison of the presented key
	"net/http"      // HTTP status codes for responses

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers
)

// AdminKey returns an Echo middleware that gates the admin API behind a
// pre-shared secret presented in the X-Admin-Key header.  An empty secret
// means the server is misconfigured: every admin request then answers 500
// rather than silently letting anyone in.  A present-but-wrong key answers
// 401.  This middleware should wrap every /api/admin route.
func AdminKey(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "missing ADMIN_KEY"})
			}
			key := c.Request().Header.Get("X-Admin-Key")
			if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}
