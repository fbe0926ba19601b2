package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/telemedicina/booking-api/internal/pkg/navigation"
)

// Navigation attaches a navigation recorder to the request context. When a
// service or guard asked for a redirect while handling the request, the
// route is sent back in the Location header.
func Navigation() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, rec := navigation.WithRecorder(c.Request().Context())
			c.SetRequest(c.Request().WithContext(ctx))

			c.Response().Before(func() {
				if route := rec.Route(); route != "" {
					c.Response().Header().Set(echo.HeaderLocation, route)
				}
			})
			return next(c)
		}
	}
}

// Redirect returns the route requested while handling c, or "".
func Redirect(c echo.Context) string {
	if rec, ok := navigation.FromContext(c.Request().Context()); ok {
		return rec.Route()
	}
	return ""
}
