package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
	"github.com/telemedicina/booking-api/internal/pkg/observable"
)

const sessionKey = "sesion"

// SessionManager holds one client's current session. The session is persisted
// under the client's own key space and rehydrated on construction without
// being checked against the user repository.
type SessionManager struct {
	store    ports.Store
	users    *UserRepository
	hasher   PasswordHasher
	nav      ports.Navigator
	activity ports.ActivityRecorder
	log      zerolog.Logger

	mu      sync.Mutex
	current *observable.Subject[*domain.Session]
}

// NewSessionManager builds a manager over a client-scoped store.
func NewSessionManager(
	ctx context.Context,
	store ports.Store,
	users *UserRepository,
	hasher PasswordHasher,
	nav ports.Navigator,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) (*SessionManager, error) {
	if activity == nil {
		activity = NopRecorder()
	}
	m := &SessionManager{
		store:    store,
		users:    users,
		hasher:   hasher,
		nav:      nav,
		activity: activity,
		log:      log,
	}

	sess, err := m.rehydrate(ctx)
	if err != nil {
		return nil, err
	}
	m.current = observable.New(sess)
	return m, nil
}

var _ ports.SessionService = (*SessionManager)(nil)

func (m *SessionManager) rehydrate(ctx context.Context) (*domain.Session, error) {
	var sess domain.Session
	found, err := loadJSON(ctx, m.store, sessionKey, &sess)
	switch {
	case errors.Is(err, errCorrupt):
		m.log.Warn().Err(err).Msg("discarding unreadable persisted session")
		return nil, nil
	case err != nil:
		return nil, err
	case !found || !sess.LoggedIn:
		return nil, nil
	}
	return &sess, nil
}

// Current returns the session snapshot, nil when anonymous.
func (m *SessionManager) Current() *domain.Session {
	return m.current.Value()
}

func (m *SessionManager) Subscribe(fn func(*domain.Session)) (unsubscribe func()) {
	return m.current.Subscribe(fn)
}

// Login authenticates against the repository snapshot and, on success, sends
// the client to the landing route of its role.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	user, ok := m.users.FindByEmail(email)
	if !ok || !m.hasher.Matches(user.PasswordHash, password) {
		record(m.activity, email, domain.ActionLoginFailed, "")
		return nil, domain.ErrInvalidCredentials
	}

	sess := &domain.Session{LoggedIn: true, Email: user.Email, Role: user.Role}

	m.mu.Lock()
	if err := saveJSON(ctx, m.store, sessionKey, sess); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.current.Publish(sess)
	m.mu.Unlock()

	record(m.activity, sess.Email, domain.ActionLogin, string(sess.Role))
	m.nav.Navigate(ctx, domain.LandingRoute(sess.Role))
	return sess, nil
}

// Logout clears the session and sends the client home.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	prev := m.current.Value()
	if err := m.store.Delete(ctx, sessionKey); err != nil && !errors.Is(err, ports.ErrKeyNotFound) {
		m.mu.Unlock()
		return err
	}
	m.current.Publish(nil)
	m.mu.Unlock()

	if prev != nil {
		record(m.activity, prev.Email, domain.ActionLogout, "")
	}
	m.nav.Navigate(ctx, domain.RouteHome)
	return nil
}

// Register creates a regular user. The role is always usuario.
func (m *SessionManager) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if m.users.EmailExists(in.Email) {
		return nil, domain.ErrUserExists
	}
	hash, err := m.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := m.users.Add(ctx, domain.User{
		Name:         in.Name,
		Handle:       in.Handle,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		BirthDate:    in.BirthDate,
	})
	if err != nil {
		return nil, err
	}
	record(m.activity, created.Email, domain.ActionRegister, "")
	return redact(created), nil
}

func (m *SessionManager) CheckEmailExists(email string) bool {
	return m.users.EmailExists(email)
}

// RecoverPassword replaces the password of the user with the given email.
func (m *SessionManager) RecoverPassword(ctx context.Context, email, newPassword string) error {
	if !m.users.EmailExists(email) {
		return domain.ErrUserNotFound
	}
	hash, err := m.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if _, err := m.users.Update(ctx, domain.User{Email: email, PasswordHash: hash}); err != nil {
		return err
	}
	record(m.activity, email, domain.ActionPasswordRecover, "")
	return nil
}
