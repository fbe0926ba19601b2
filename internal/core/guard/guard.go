// Package guard holds the route access predicates. Both read the session
// snapshot and, on denial, ask the navigator to redirect before returning
// false.
package guard

import (
	"context"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

// SessionSource exposes the current session snapshot.
type SessionSource interface {
	Current() *domain.Session
}

// Auth passes when any session exists; otherwise it redirects to login.
func Auth(ctx context.Context, sessions SessionSource, nav ports.Navigator) bool {
	if sessions.Current() != nil {
		return true
	}
	nav.Navigate(ctx, domain.RouteLogin)
	return false
}

// Admin passes only for an admin session; otherwise it redirects home.
func Admin(ctx context.Context, sessions SessionSource, nav ports.Navigator) bool {
	if sessions.Current().IsAdmin() {
		return true
	}
	nav.Navigate(ctx, domain.RouteHome)
	return false
}
