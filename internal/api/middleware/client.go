package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/telemedicina/booking-api/internal/core/ports"
)

// SessionTokenHeader carries the client token in both directions.
const SessionTokenHeader = "X-Session-Token"

// Context keys set by ClientSession.
const (
	ContextClientID  = "client_id"
	ContextWorkspace = "workspace"
)

type clientClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// ClientSession identifies the browser client behind a request and attaches
// its workspace. The client token is an HS256 JWT carrying a random sid, read
// from X-Session-Token or a Bearer Authorization header. A missing, expired or
// tampered token starts a new client; a token past half its lifetime is
// renewed. Issued tokens are returned in X-Session-Token.
func ClientSession(jwtSecret string, ttl time.Duration, workspaces ports.WorkspaceProvider) echo.MiddlewareFunc {
	issuer := tokenIssuer{secret: []byte(jwtSecret), ttl: ttl}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := issuer.parse(rawToken(c.Request()))

			sid := ""
			renew := true
			if err == nil {
				sid = claims.SID
				renew = claims.ExpiresAt != nil && time.Until(claims.ExpiresAt.Time) < ttl/2
			}
			if sid == "" {
				sid = uuid.NewString()
			}

			if renew {
				signed, err := issuer.sign(sid)
				if err != nil {
					return err
				}
				c.Response().Header().Set(SessionTokenHeader, signed)
			}

			ws, err := workspaces.Workspace(c.Request().Context(), sid)
			if err != nil {
				return err
			}
			c.Set(ContextClientID, sid)
			c.Set(ContextWorkspace, ws)
			return next(c)
		}
	}
}

// Workspace returns the workspace attached by ClientSession.
func Workspace(c echo.Context) (*ports.Workspace, bool) {
	ws, ok := c.Get(ContextWorkspace).(*ports.Workspace)
	return ws, ok && ws != nil
}

func rawToken(r *http.Request) string {
	if t := r.Header.Get(SessionTokenHeader); t != "" {
		return t
	}
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

var errNoToken = errors.New("no client token")

func (t tokenIssuer) parse(raw string) (*clientClaims, error) {
	if raw == "" {
		return nil, errNoToken
	}
	claims := &clientClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if _, err := uuid.Parse(claims.SID); err != nil {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func (t tokenIssuer) sign(sid string) (string, error) {
	now := time.Now()
	claims := clientClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}
