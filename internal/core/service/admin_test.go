package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telemedicina/booking-api/internal/core/domain"
)

func TestUserAdmin_AddHashesAndRedacts(t *testing.T) {
	repo := newTestUsers(t, newStubStore())
	rec := &stubRecorder{}
	admin := NewUserAdmin(repo, testHasher, rec)

	created, err := admin.Add(context.Background(), domain.User{Email: "a@b.com", Name: "Ana"}, "Secret123")
	require.NoError(t, err)
	assert.Empty(t, created.PasswordHash)
	assert.Equal(t, domain.RoleUser, created.Role)

	stored, ok := repo.FindByEmail("a@b.com")
	require.True(t, ok)
	assert.True(t, testHasher.Matches(stored.PasswordHash, "Secret123"))

	for _, u := range admin.List() {
		assert.Empty(t, u.PasswordHash)
	}
	assert.Equal(t, []string{domain.ActionUserAdd}, rec.actions())
}

func TestUserAdmin_AddRejectsUnknownRole(t *testing.T) {
	admin := NewUserAdmin(newTestUsers(t, newStubStore()), testHasher, nil)
	_, err := admin.Add(context.Background(), domain.User{Email: "a@b.com", Role: "root"}, "Secret123")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestUserAdmin_UpdateKeepsPasswordWhenEmpty(t *testing.T) {
	repo := newTestUsers(t, newStubStore(), userWithPassword(t, "a@b.com", "pw", domain.RoleUser))
	admin := NewUserAdmin(repo, testHasher, nil)

	updated, err := admin.Update(context.Background(), domain.User{Email: "a@b.com", Role: domain.RoleAdmin, PasswordHash: "smuggled"}, "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)

	stored, _ := repo.FindByEmail("a@b.com")
	assert.True(t, testHasher.Matches(stored.PasswordHash, "pw"))
}

func TestUserAdmin_UpdateChangesPassword(t *testing.T) {
	repo := newTestUsers(t, newStubStore(), userWithPassword(t, "a@b.com", "pw", domain.RoleUser))
	admin := NewUserAdmin(repo, testHasher, nil)

	_, err := admin.Update(context.Background(), domain.User{Email: "a@b.com"}, "Fresh1234")
	require.NoError(t, err)

	stored, _ := repo.FindByEmail("a@b.com")
	assert.True(t, testHasher.Matches(stored.PasswordHash, "Fresh1234"))
}

func TestUserAdmin_Delete(t *testing.T) {
	repo := newTestUsers(t, newStubStore(), domain.User{Email: "a@b.com"})
	admin := NewUserAdmin(repo, testHasher, nil)

	require.NoError(t, admin.Delete(context.Background(), "a@b.com"))
	assert.Empty(t, admin.List())
	assert.ErrorIs(t, admin.Delete(context.Background(), "a@b.com"), domain.ErrUserNotFound)
}

func TestUserAdmin_SubscribeRedacts(t *testing.T) {
	repo := newTestUsers(t, newStubStore(), userWithPassword(t, "a@b.com", "pw", domain.RoleUser))
	admin := NewUserAdmin(repo, testHasher, nil)

	var got []domain.User
	unsubscribe := admin.Subscribe(func(users []domain.User) { got = users })
	defer unsubscribe()

	require.Len(t, got, 1)
	assert.Empty(t, got[0].PasswordHash)
	stored, _ := repo.FindByEmail("a@b.com")
	assert.NotEmpty(t, stored.PasswordHash)
}
