package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
	"github.com/telemedicina/booking-api/internal/pkg/navigation"
)

func runGuard(t *testing.T, mw echo.MiddlewareFunc, session *domain.Session) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextWorkspace, &ports.Workspace{ID: "c1", Session: &stubSessions{current: session}})

	called := false
	h := Navigation()(mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}))
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRequireSession(t *testing.T) {
	nav := navigation.ContextNavigator{}

	rec, called := runGuard(t, RequireSession(nav), nil)
	if called {
		t.Fatalf("anonymous request reached the handler")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != domain.RouteLogin {
		t.Fatalf("expected Location %s, got %q", domain.RouteLogin, loc)
	}

	rec, called = runGuard(t, RequireSession(nav), &domain.Session{LoggedIn: true, Email: "a@b.com", Role: domain.RoleUser})
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("signed-in request was blocked: %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	nav := navigation.ContextNavigator{}

	for _, s := range []*domain.Session{nil, {LoggedIn: true, Email: "a@b.com", Role: domain.RoleUser}} {
		rec, called := runGuard(t, RequireAdmin(nav), s)
		if called {
			t.Fatalf("non-admin request reached the handler")
		}
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		if loc := rec.Header().Get(echo.HeaderLocation); loc != domain.RouteHome {
			t.Fatalf("expected Location %s, got %q", domain.RouteHome, loc)
		}
	}

	rec, called := runGuard(t, RequireAdmin(nav), &domain.Session{LoggedIn: true, Email: "root@b.com", Role: domain.RoleAdmin})
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("admin request was blocked: %d", rec.Code)
	}
}

func TestGuard_MissingWorkspace(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := RequireSession(navigation.ContextNavigator{})(func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
