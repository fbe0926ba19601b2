package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telemedicina/booking-api/internal/api/metrics"
	"github.com/telemedicina/booking-api/internal/core/guard"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

// RequireSession lets the request through only for a signed-in client.
// Denied requests get 401 and a redirect to the login route.
func RequireSession(nav ports.Navigator) echo.MiddlewareFunc {
	return guarded("auth", http.StatusUnauthorized, "authentication required", guard.Auth, nav)
}

// RequireAdmin lets the request through only for an admin session.
// Denied requests get 403 and a redirect to the home route.
func RequireAdmin(nav ports.Navigator) echo.MiddlewareFunc {
	return guarded("admin", http.StatusForbidden, "admin access required", guard.Admin, nav)
}

type guardFunc func(ctx context.Context, sessions guard.SessionSource, nav ports.Navigator) bool

func guarded(name string, status int, msg string, check guardFunc, nav ports.Navigator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ws, ok := Workspace(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing client session")
			}
			if !check(c.Request().Context(), ws.Session, nav) {
				metrics.GuardDenialsTotal.WithLabelValues(name).Inc()
				return echo.NewHTTPError(status, msg)
			}
			return next(c)
		}
	}
}
