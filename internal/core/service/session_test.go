package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

func TestSessionManager_Login_Success(t *testing.T) {
	f := newFixture(t, userWithPassword(t, "a@b.com", "x", domain.RoleUser))

	sess, err := f.sessions.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)

	assert.Equal(t, &domain.Session{LoggedIn: true, Email: "a@b.com", Role: domain.RoleUser}, sess)
	assert.Equal(t, sess, f.sessions.Current())
	assert.Equal(t, domain.RouteProfile, f.nav.last())

	raw, ok := f.store.raw("client:c1:" + sessionKey)
	require.True(t, ok)
	assert.JSONEq(t, `{"logueado":true,"correo":"a@b.com","tipo":"usuario"}`, raw)
	assert.Equal(t, []string{domain.ActionLogin}, f.activity.actions())
}

func TestSessionManager_Login_AdminLanding(t *testing.T) {
	f := newFixture(t, userWithPassword(t, "root@b.com", "pw", domain.RoleAdmin))

	sess, err := f.sessions.Login(context.Background(), "root@b.com", "pw")
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin())
	assert.Equal(t, domain.RouteAdmin, f.nav.last())
}

func TestSessionManager_Login_Failures(t *testing.T) {
	f := newFixture(t, userWithPassword(t, "a@b.com", "x", domain.RoleUser))
	ctx := context.Background()

	cases := []struct {
		name, email, password string
	}{
		{"wrong password", "a@b.com", "y"},
		{"unknown email", "z@b.com", "x"},
		{"email case differs", "A@b.com", "x"},
		{"empty password", "a@b.com", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess, err := f.sessions.Login(ctx, tc.email, tc.password)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
			assert.Nil(t, sess)
			assert.Nil(t, f.sessions.Current())
		})
	}
	assert.Empty(t, f.nav.routes)
}

func TestSessionManager_Logout(t *testing.T) {
	f := newFixture(t, userWithPassword(t, "a@b.com", "x", domain.RoleUser))
	ctx := context.Background()

	var seen []*domain.Session
	unsubscribe := f.sessions.Subscribe(func(s *domain.Session) { seen = append(seen, s) })
	defer unsubscribe()

	_, err := f.sessions.Login(ctx, "a@b.com", "x")
	require.NoError(t, err)
	require.NoError(t, f.sessions.Logout(ctx))

	assert.Nil(t, f.sessions.Current())
	assert.Equal(t, domain.RouteHome, f.nav.last())
	_, ok := f.store.raw("client:c1:" + sessionKey)
	assert.False(t, ok)

	require.Len(t, seen, 3)
	assert.Nil(t, seen[0])
	assert.NotNil(t, seen[1])
	assert.Nil(t, seen[2])
}

func TestSessionManager_Rehydrate_TrustOnRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	// The persisted session names a user the repository does not know.
	require.NoError(t, f.store.Set(ctx, "client:c2:sesion", []byte(`{"logueado":true,"correo":"ghost@b.com","tipo":"admin"}`)))

	m, err := NewSessionManager(ctx, ClientStore(f.store, "c2"), f.users, testHasher, f.nav, nil, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, &domain.Session{LoggedIn: true, Email: "ghost@b.com", Role: domain.RoleAdmin}, m.Current())
}

func TestSessionManager_Rehydrate_Corrupt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, "client:c2:sesion", []byte(`{not json`)))

	m, err := NewSessionManager(ctx, ClientStore(f.store, "c2"), f.users, testHasher, f.nav, nil, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, m.Current())
}

func TestSessionManager_ClientsAreIsolated(t *testing.T) {
	f := newFixture(t, userWithPassword(t, "a@b.com", "x", domain.RoleUser))
	ctx := context.Background()

	other, err := NewSessionManager(ctx, ClientStore(f.store, "c2"), f.users, testHasher, f.nav, nil, zerolog.Nop())
	require.NoError(t, err)

	_, err = f.sessions.Login(ctx, "a@b.com", "x")
	require.NoError(t, err)
	assert.Nil(t, other.Current())
}

func TestSessionManager_Register(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.sessions.Register(ctx, ports.RegisterInput{
		Name: "Ana", Email: "a@b.com", Password: "Secret123", BirthDate: "1990-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash, "hash is not returned")

	stored, ok := f.users.FindByEmail("a@b.com")
	require.True(t, ok)
	assert.NotEqual(t, "Secret123", stored.PasswordHash)
	assert.True(t, testHasher.Matches(stored.PasswordHash, "Secret123"))

	sess, err := f.sessions.Login(ctx, "a@b.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, sess.Role)
}

func TestSessionManager_Register_ExistingEmail(t *testing.T) {
	f := newFixture(t, userWithPassword(t, "a@b.com", "x", domain.RoleAdmin))

	_, err := f.sessions.Register(context.Background(), ports.RegisterInput{Email: "a@b.com", Password: "Other1234"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
	assert.Len(t, f.users.Snapshot(), 1)
}

func TestSessionManager_CheckEmailExists(t *testing.T) {
	f := newFixture(t, domain.User{Email: "a@b.com"})
	assert.True(t, f.sessions.CheckEmailExists("a@b.com"))
	assert.False(t, f.sessions.CheckEmailExists("b@b.com"))
}

func TestSessionManager_RecoverPassword(t *testing.T) {
	f := newFixture(t, userWithPassword(t, "a@b.com", "old", domain.RoleUser))
	ctx := context.Background()

	require.NoError(t, f.sessions.RecoverPassword(ctx, "a@b.com", "NewPass1"))

	_, err := f.sessions.Login(ctx, "a@b.com", "old")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.sessions.Login(ctx, "a@b.com", "NewPass1")
	assert.NoError(t, err)

	stored, _ := f.users.FindByEmail("a@b.com")
	assert.Equal(t, domain.RoleUser, stored.Role)
}

func TestSessionManager_RecoverPassword_Unknown(t *testing.T) {
	f := newFixture(t)
	err := f.sessions.RecoverPassword(context.Background(), "ghost@b.com", "NewPass1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
