package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/pkg/flash"
)

// ProfileHandler exposes the signed-in client's own user record.
type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// Get returns the signed-in user's profile.
//
// @Summary      My profile
// @Tags         profile
// @Produce      json
// @Param        X-Session-Token  header    string  true  "Client token"
// @Success      200              {object}  userResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /user/perfil [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	ws, err := clientWorkspace(c)
	if err != nil {
		return err
	}
	profile := ws.Profile.CurrentProfile()
	if profile == nil {
		return domain.ErrUserNotFound
	}
	return c.JSON(http.StatusOK, userResponse{User: profile})
}

// Update edits name, handle and birth date. Email, password and role cannot
// be changed here.
//
// @Summary      Update my profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string          true  "Client token"
// @Param        body             body      profileRequest  true  "Editable fields"
// @Success      200              {object}  userResponse
// @Failure      404              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /user/perfil [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	ws, err := clientWorkspace(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	user, err := ws.Profile.UpdateProfile(c.Request().Context(), toProfileUpdate(req))
	if err != nil {
		return err
	}
	ws.Notices.Set(flash.KindSuccess, "Your profile was updated.")
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Stream pushes the signed-in user's profile on every change.
//
// @Summary      Profile stream
// @Tags         profile
// @Produce      text/event-stream
// @Param        X-Session-Token  header  string  true  "Client token"
// @Success      200
// @Router       /user/perfil/stream [get]
func (h *ProfileHandler) Stream(c echo.Context) error {
	ws, err := clientWorkspace(c)
	if err != nil {
		return err
	}
	defer ws.Pin()()
	return streamSSE(c, "perfil", ws.Profile.SubscribeProfile)
}
