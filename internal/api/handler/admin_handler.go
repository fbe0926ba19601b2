package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

// AdminHandler manages registered users. Routes are mounted behind the admin
// guard.
type AdminHandler struct {
	users ports.UserAdminService
}

func NewAdminHandler(users ports.UserAdminService) *AdminHandler {
	return &AdminHandler{users: users}
}

// List returns every registered user.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Param        X-Session-Token  header    string  true  "Client token"
// @Success      200              {object}  usersResponse
// @Failure      403              {object}  errorResponse
// @Router       /admin/usuarios [get]
func (h *AdminHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, usersResponse{Users: h.users.List()})
}

// Create adds a user with any role.
//
// @Summary      Create user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string             true  "Client token"
// @Param        body             body      createUserRequest  true  "New user"
// @Success      201              {object}  userResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /admin/usuarios [post]
func (h *AdminHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.users.Add(c.Request().Context(), toNewUser(req), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userResponse{User: user})
}

// Update edits the user with the given email. Empty fields are left as they
// are.
//
// @Summary      Update user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string             true  "Client token"
// @Param        email            path      string             true  "User email"
// @Param        body             body      updateUserRequest  true  "Fields to change"
// @Success      200              {object}  userResponse
// @Failure      404              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /admin/usuarios/{email} [put]
func (h *AdminHandler) Update(c echo.Context) error {
	email, err := emailParam(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	user, err := h.users.Update(c.Request().Context(), toUserEdit(email, req), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Delete removes the user with the given email. An admin cannot delete their
// own account.
//
// @Summary      Delete user
// @Tags         admin
// @Produce      json
// @Param        X-Session-Token  header    string  true  "Client token"
// @Param        email            path      string  true  "User email"
// @Success      204
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /admin/usuarios/{email} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	ws, err := clientWorkspace(c)
	if err != nil {
		return err
	}
	email, err := emailParam(c)
	if err != nil {
		return err
	}
	if sess := ws.Session.Current(); sess != nil && sess.Email == email {
		return domain.ErrSelfDeletion
	}
	if err := h.users.Delete(c.Request().Context(), email); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stream pushes the user list on every change.
//
// @Summary      User list stream
// @Tags         admin
// @Produce      text/event-stream
// @Param        X-Session-Token  header  string  true  "Client token"
// @Success      200
// @Router       /admin/usuarios/stream [get]
func (h *AdminHandler) Stream(c echo.Context) error {
	return streamSSE(c, "usuarios", h.users.Subscribe)
}

func emailParam(c echo.Context) (string, error) {
	email, err := url.PathUnescape(c.Param("email"))
	if err != nil || email == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	return email, nil
}
