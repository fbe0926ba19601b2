package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

type stubCatalog struct {
	users       []ports.RemoteUser
	cart        []domain.CartItem
	specialties []domain.Specialty
	err         error
	calls       int
}

func (c *stubCatalog) FetchUsers(context.Context) ([]ports.RemoteUser, error) {
	c.calls++
	return c.users, c.err
}

func (c *stubCatalog) FetchCart(context.Context) ([]domain.CartItem, error) {
	c.calls++
	return c.cart, c.err
}

func (c *stubCatalog) FetchSpecialties(context.Context, string) ([]domain.Specialty, error) {
	c.calls++
	return c.specialties, c.err
}

var testAdmin = AdminAccount{Name: "Admin", Handle: "admin", Email: "admin@telemedicina.cl", Password: "Admin1234"}

func TestBootstrapper_SeedsEmptyStores(t *testing.T) {
	f := newFixture(t)
	catalog := &stubCatalog{
		users: []ports.RemoteUser{
			{ID: 1, Name: "Ana", Email: "a@b.com", Password: "x", Role: domain.RoleUser},
			{Name: "Bea", Email: "bea@b.com", Password: "y", Role: "weird"},
		},
		cart: []domain.CartItem{{Service: "Consulta", Email: "a@b.com"}},
	}

	b := NewBootstrapper(f.users, f.cart, catalog, testHasher, zerolog.Nop())
	require.NoError(t, b.Run(context.Background(), testAdmin))

	ana, ok := f.users.FindByEmail("a@b.com")
	require.True(t, ok)
	assert.True(t, testHasher.Matches(ana.PasswordHash, "x"), "plaintext passwords are hashed on import")

	bea, _ := f.users.FindByEmail("bea@b.com")
	assert.Equal(t, 2, bea.ID)
	assert.Equal(t, domain.RoleUser, bea.Role)

	admin, ok := f.users.FindByEmail(testAdmin.Email)
	require.True(t, ok)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.Equal(t, 3, admin.ID)

	assert.Equal(t, []domain.CartItem{{ID: 1, Service: "Consulta", Email: "a@b.com"}}, f.cart.Snapshot())

	_, err := f.sessions.Login(context.Background(), "a@b.com", "x")
	assert.NoError(t, err)
}

func TestBootstrapper_LocalDataWins(t *testing.T) {
	f := newFixture(t, domain.User{Email: "local@b.com"})
	catalog := &stubCatalog{users: []ports.RemoteUser{{Email: "remote@b.com", Password: "x"}}}

	b := NewBootstrapper(f.users, f.cart, catalog, testHasher, zerolog.Nop())
	require.NoError(t, b.Run(context.Background(), AdminAccount{}))

	assert.False(t, f.users.EmailExists("remote@b.com"))
	assert.Len(t, f.users.Snapshot(), 1)
}

func TestBootstrapper_RemoteFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	catalog := &stubCatalog{err: errors.New("connection refused")}

	b := NewBootstrapper(f.users, f.cart, catalog, testHasher, zerolog.Nop())
	require.NoError(t, b.Run(context.Background(), testAdmin))

	assert.Len(t, f.users.Snapshot(), 1)
	assert.Empty(t, f.cart.Snapshot())
}

func TestBootstrapper_EnsureAdminIsIdempotent(t *testing.T) {
	f := newFixture(t)
	b := NewBootstrapper(f.users, f.cart, nil, testHasher, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, b.Run(ctx, testAdmin))
	require.NoError(t, b.Run(ctx, testAdmin))
	assert.Len(t, f.users.Snapshot(), 1)

	sess, err := f.sessions.Login(ctx, testAdmin.Email, testAdmin.Password)
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin())
}

func TestBootstrapper_SeedCartDropsDuplicatePairs(t *testing.T) {
	f := newFixture(t)
	catalog := &stubCatalog{cart: []domain.CartItem{
		{Service: "Consulta", Email: "a@b.com"},
		{Service: "Consulta", Email: "a@b.com"},
		{Service: "Control", Email: "a@b.com"},
		{Service: "", Email: "a@b.com"},
		{Service: "Consulta", Email: ""},
	}}

	b := NewBootstrapper(f.users, f.cart, catalog, testHasher, zerolog.Nop())
	require.NoError(t, b.Run(context.Background(), AdminAccount{}))

	assert.Equal(t, []domain.CartItem{
		{ID: 1, Service: "Consulta", Email: "a@b.com"},
		{ID: 2, Service: "Control", Email: "a@b.com"},
	}, f.cart.Snapshot())
}

func TestBootstrapper_EmptyRemotePasswordCannotSignIn(t *testing.T) {
	f := newFixture(t)
	catalog := &stubCatalog{users: []ports.RemoteUser{{Name: "Ana", Email: "a@b.com"}}}

	b := NewBootstrapper(f.users, f.cart, catalog, testHasher, zerolog.Nop())
	require.NoError(t, b.Run(context.Background(), AdminAccount{}))

	ana, ok := f.users.FindByEmail("a@b.com")
	require.True(t, ok)
	assert.Empty(t, ana.PasswordHash)

	_, err := f.sessions.Login(context.Background(), "a@b.com", "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestBootstrapper_StorageFailureAborts(t *testing.T) {
	f := newFixture(t)
	f.store.failSet = errStoreDown

	b := NewBootstrapper(f.users, f.cart, nil, testHasher, zerolog.Nop())
	assert.ErrorIs(t, b.Run(context.Background(), testAdmin), errStoreDown)
}

func TestCatalogService_FallsBackToEmpty(t *testing.T) {
	ctx := context.Background()

	ok := NewCatalogService(&stubCatalog{specialties: []domain.Specialty{{
		ID: "pediatria", Doctors: []domain.Doctor{{ID: 1, Name: "Dra. Soto"}},
	}}}, zerolog.Nop())
	assert.Len(t, ok.DoctorsBySpecialty(ctx, "pediatria"), 1)

	failing := NewCatalogService(&stubCatalog{err: errors.New("boom")}, zerolog.Nop())
	doctors := failing.DoctorsBySpecialty(ctx, "pediatria")
	assert.NotNil(t, doctors)
	assert.Empty(t, doctors)

	empty := NewCatalogService(&stubCatalog{}, zerolog.Nop())
	assert.Empty(t, empty.DoctorsBySpecialty(ctx, "x"))
}
