package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

type stubSessions struct {
	ports.SessionService
	current *domain.Session
}

func (s *stubSessions) Current() *domain.Session { return s.current }

type stubWorkspaces struct {
	byID    map[string]*ports.Workspace
	session *domain.Session
}

func newStubWorkspaces(session *domain.Session) *stubWorkspaces {
	return &stubWorkspaces{byID: make(map[string]*ports.Workspace), session: session}
}

func (s *stubWorkspaces) Workspace(_ context.Context, id string) (*ports.Workspace, error) {
	if ws, ok := s.byID[id]; ok {
		return ws, nil
	}
	ws := &ports.Workspace{ID: id, Session: &stubSessions{current: s.session}}
	s.byID[id] = ws
	return ws, nil
}

func signToken(t *testing.T, secret, sid string, ttl time.Duration, method jwt.SigningMethod) string {
	t.Helper()
	tok, err := (tokenIssuer{secret: []byte(secret), ttl: ttl}).sign(sid)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if method != nil && method != jwt.SigningMethodHS256 {
		claims := clientClaims{SID: sid, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl))}}
		tok, err = jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
	}
	return tok
}

func runClientSession(t *testing.T, ws ports.WorkspaceProvider, header, value string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var sid string
	h := ClientSession("secret", time.Hour, ws)(func(c echo.Context) error {
		sid, _ = c.Get(ContextClientID).(string)
		w, ok := Workspace(c)
		if !ok || w.ID != sid {
			t.Fatalf("workspace not attached")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, sid
}

func TestClientSession_MintsTokenWhenMissing(t *testing.T) {
	rec, sid := runClientSession(t, newStubWorkspaces(nil), "", "")

	if _, err := uuid.Parse(sid); err != nil {
		t.Fatalf("expected uuid sid, got %q", sid)
	}
	issued := rec.Header().Get(SessionTokenHeader)
	if issued == "" {
		t.Fatalf("expected %s header", SessionTokenHeader)
	}
	claims, err := (tokenIssuer{secret: []byte("secret"), ttl: time.Hour}).parse(issued)
	if err != nil || claims.SID != sid {
		t.Fatalf("issued token does not carry sid: %v", err)
	}
}

func TestClientSession_ReusesValidToken(t *testing.T) {
	sid := uuid.NewString()
	rec, got := runClientSession(t, newStubWorkspaces(nil), SessionTokenHeader, signToken(t, "secret", sid, time.Hour, nil))

	if got != sid {
		t.Fatalf("expected sid %s, got %s", sid, got)
	}
	if rec.Header().Get(SessionTokenHeader) != "" {
		t.Fatalf("fresh token should not be reissued")
	}
}

func TestClientSession_AcceptsBearer(t *testing.T) {
	sid := uuid.NewString()
	_, got := runClientSession(t, newStubWorkspaces(nil), "Authorization", "Bearer "+signToken(t, "secret", sid, time.Hour, nil))
	if got != sid {
		t.Fatalf("expected sid %s, got %s", sid, got)
	}
}

func TestClientSession_RenewsAgingToken(t *testing.T) {
	sid := uuid.NewString()
	// Valid for ten more minutes of a one-hour lifetime.
	rec, got := runClientSession(t, newStubWorkspaces(nil), SessionTokenHeader, signToken(t, "secret", sid, 10*time.Minute, nil))

	if got != sid {
		t.Fatalf("renewal must keep the sid")
	}
	if rec.Header().Get(SessionTokenHeader) == "" {
		t.Fatalf("expected a renewed token")
	}
}

func TestClientSession_RejectsTamperedToken(t *testing.T) {
	cases := map[string]string{
		"wrong secret": signToken(t, "other", uuid.NewString(), time.Hour, nil),
		"wrong alg":    signToken(t, "secret", uuid.NewString(), time.Hour, jwt.SigningMethodHS512),
		"expired":      signToken(t, "secret", uuid.NewString(), -time.Minute, nil),
		"garbage":      "not-a-jwt",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := (tokenIssuer{secret: []byte("secret"), ttl: time.Hour}).parse(token); err == nil {
				t.Fatalf("tampered token parsed")
			}
			rec, _ := runClientSession(t, newStubWorkspaces(nil), SessionTokenHeader, token)
			if rec.Header().Get(SessionTokenHeader) == "" {
				t.Fatalf("expected a new token")
			}
		})
	}
}
