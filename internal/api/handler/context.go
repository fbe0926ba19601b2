package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telemedicina/booking-api/internal/api/middleware"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

// clientWorkspace returns the workspace injected by the ClientSession
// middleware. Its absence means the route was mounted without it.
func clientWorkspace(c echo.Context) (*ports.Workspace, error) {
	ws, ok := middleware.Workspace(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing client session")
	}
	return ws, nil
}

// bindValid binds the request into dst and validates it.
func bindValid(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(dst); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
