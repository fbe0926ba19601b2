package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telemedicina/booking-api/internal/api/metrics"
	"github.com/telemedicina/booking-api/internal/api/middleware"
	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
	"github.com/telemedicina/booking-api/internal/pkg/flash"
)

// AuthHandler exposes the client's session manager.
type AuthHandler struct {
	nav ports.Navigator
}

func NewAuthHandler(nav ports.Navigator) *AuthHandler {
	return &AuthHandler{nav: nav}
}

// Login signs the client in.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string        false  "Client token"
// @Param        body             body      loginRequest  true   "Credentials"
// @Success      200              {object}  sessionResponse
// @Failure      401              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	ws, err := clientWorkspace(c)
	if err != nil {
		return err
	}
	var req loginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	sess, err := ws.Session.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, sessionResponse{Session: sess, Redirect: middleware.Redirect(c)})
}

// Logout signs the client out.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Param        X-Session-Token  header    string  false  "Client token"
// @Success      200              {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	ws, err := clientWorkspace(c)
	if err != nil {
		return err
	}
	if err := ws.Session.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "signed out", Redirect: middleware.Redirect(c)})
}

// Register creates a regular user account and sends the client to the login
// route.
//
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string           false  "Client token"
// @Param        body             body      registerRequest  true   "New account"
// @Success      201              {object}  userResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	ws, err := clientWorkspace(c)
	if err != nil {
		return err
	}
	var req registerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := ws.Session.Register(ctx, toRegisterInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			ws.Notices.Set(flash.KindError, "That email is already registered.")
		}
		return err
	}
	metrics.RegistrationsTotal.Inc()
	ws.Notices.Set(flash.KindSuccess, "Account created. You can now sign in.")
	h.nav.Navigate(ctx, domain.RouteLogin)

	return c.JSON(http.StatusCreated, userResponse{User: user, Redirect: middleware.Redirect(c)})
}

// Session returns the client's current session, null when anonymous.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Param        X-Session-Token  header    string  false  "Client token"
// @Success      200              {object}  sessionResponse
// @Router       /auth/sesion [get]
func (h *AuthHandler) Session(c echo.Context) error {
	ws, err := clientWorkspace(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Session: ws.Session.Current()})
}

// EmailAvailable reports whether an email can still be registered. The answer
// is debounced per client; a newer check makes this one fail with 409.
//
// @Summary      Email availability
// @Tags         auth
// @Produce      json
// @Param        X-Session-Token  header    string  false  "Client token"
// @Param        email            query     string  true   "Email to check"
// @Success      200              {object}  emailAvailabilityResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /auth/email-disponible [get]
func (h *AuthHandler) EmailAvailable(c echo.Context) error {
	ws, err := clientWorkspace(c)
	if err != nil {
		return err
	}
	var q emailQuery
	if err := bindValid(c, &q); err != nil {
		return err
	}

	taken, err := ws.Email.Check(c.Request().Context(), q.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emailAvailabilityResponse{Email: q.Email, Available: !taken})
}

// RecoverPassword sets a new password for a registered email.
//
// @Summary      Recover password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string          false  "Client token"
// @Param        body             body      recoverRequest  true   "Email and new password"
// @Success      200              {object}  messageResponse
// @Failure      404              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /auth/recuperar [post]
func (h *AuthHandler) RecoverPassword(c echo.Context) error {
	ws, err := clientWorkspace(c)
	if err != nil {
		return err
	}
	var req recoverRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := ws.Session.RecoverPassword(ctx, req.Email, req.Password); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			ws.Notices.Set(flash.KindError, "No account is registered with that email.")
		}
		return err
	}
	ws.Notices.Set(flash.KindSuccess, "Your password was updated.")
	h.nav.Navigate(ctx, domain.RouteLogin)

	return c.JSON(http.StatusOK, messageResponse{Message: "password updated", Redirect: middleware.Redirect(c)})
}
