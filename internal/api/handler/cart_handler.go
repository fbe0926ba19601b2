package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telemedicina/booking-api/internal/api/metrics"
	"github.com/telemedicina/booking-api/internal/api/middleware"
	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
	"github.com/telemedicina/booking-api/internal/pkg/flash"
)

// CartHandler exposes the client's appointment cart.
type CartHandler struct {
	nav ports.Navigator
}

func NewCartHandler(nav ports.Navigator) *CartHandler {
	return &CartHandler{nav: nav}
}

// Book adds an appointment for the signed-in client. The outcome is always in
// the body; anonymous clients get 401 and a redirect to the login route.
//
// @Summary      Book an appointment
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string       false  "Client token"
// @Param        body             body      bookRequest  true   "Service to book"
// @Success      201              {object}  bookResponse
// @Failure      401              {object}  bookResponse
// @Failure      409              {object}  bookResponse
// @Failure      422              {object}  errorResponse
// @Router       /agendar [post]
func (h *CartHandler) Book(c echo.Context) error {
	ws, err := clientWorkspace(c)
	if err != nil {
		return err
	}
	var req bookRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	res, err := ws.Cart.AddItem(ctx, req.Service)
	if err != nil {
		metrics.CartOperationsTotal.WithLabelValues("add", "error").Inc()
		return err
	}
	metrics.CartOperationsTotal.WithLabelValues("add", string(res.Outcome)).Inc()

	status := http.StatusCreated
	switch res.Outcome {
	case domain.AddItemOK:
		ws.Notices.Set(flash.KindSuccess, res.Message)
	case domain.AddItemNotLoggedIn:
		status = http.StatusUnauthorized
		ws.Notices.Set(flash.KindError, res.Message)
		h.nav.Navigate(ctx, domain.RouteLogin)
	case domain.AddItemDuplicate:
		status = http.StatusConflict
		ws.Notices.Set(flash.KindError, res.Message)
	}
	return c.JSON(status, toBookResponse(res, middleware.Redirect(c)))
}

// List returns the signed-in client's appointments.
//
// @Summary      My appointments
// @Tags         cart
// @Produce      json
// @Param        X-Session-Token  header    string  true  "Client token"
// @Success      200              {object}  cartResponse
// @Failure      401              {object}  errorResponse
// @Router       /user/carrito [get]
func (h *CartHandler) List(c echo.Context) error {
	ws, err := clientWorkspace(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartResponse{Items: ws.Cart.ItemsForCurrentUser()})
}

// Remove deletes one appointment, by id or by service name.
//
// @Summary      Cancel an appointment
// @Tags         cart
// @Produce      json
// @Param        X-Session-Token  header    string  true   "Client token"
// @Param        id               query     int     false  "Appointment id"
// @Param        servicio         query     string  false  "Service name"
// @Success      204
// @Failure      404              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /user/carrito [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	ws, err := clientWorkspace(c)
	if err != nil {
		return err
	}
	var q removeItemQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if q.ID == 0 && q.Service == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "id or servicio is required")
	}

	if err := ws.Cart.RemoveItem(c.Request().Context(), toCartItem(q)); err != nil {
		metrics.CartOperationsTotal.WithLabelValues("remove", outcomeOf(err)).Inc()
		return err
	}
	metrics.CartOperationsTotal.WithLabelValues("remove", "ok").Inc()
	ws.Notices.Set(flash.KindSuccess, "The appointment was cancelled.")
	return c.NoContent(http.StatusNoContent)
}

// Confirm confirms every pending appointment of the signed-in client.
//
// @Summary      Confirm appointments
// @Tags         cart
// @Produce      json
// @Param        X-Session-Token  header    string  true  "Client token"
// @Success      200              {object}  messageResponse
// @Router       /user/carrito/confirmar [post]
func (h *CartHandler) Confirm(c echo.Context) error {
	ws, err := clientWorkspace(c)
	if err != nil {
		return err
	}
	if err := ws.Cart.ConfirmAppointments(c.Request().Context()); err != nil {
		metrics.CartOperationsTotal.WithLabelValues("confirm", "error").Inc()
		return err
	}
	metrics.CartOperationsTotal.WithLabelValues("confirm", "ok").Inc()
	ws.Notices.Set(flash.KindSuccess, "Your appointments were confirmed.")
	return c.JSON(http.StatusOK, messageResponse{Message: "appointments confirmed"})
}

// Stream pushes the signed-in client's appointments on every change.
//
// @Summary      Appointment stream
// @Tags         cart
// @Produce      text/event-stream
// @Param        X-Session-Token  header  string  true  "Client token"
// @Success      200
// @Router       /user/carrito/stream [get]
func (h *CartHandler) Stream(c echo.Context) error {
	ws, err := clientWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Pin()()
	return streamSSE(c, "carrito", ws.Cart.SubscribeItems)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrItemNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return "error"
	}
}
