package service

import (
	"context"
	"slices"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

// UserAdmin is the admin-facing view of the user repository. Passwords arrive
// in plaintext and are hashed before they reach the repository.
type UserAdmin struct {
	users    *UserRepository
	hasher   PasswordHasher
	activity ports.ActivityRecorder
}

func NewUserAdmin(users *UserRepository, hasher PasswordHasher, activity ports.ActivityRecorder) *UserAdmin {
	if activity == nil {
		activity = NopRecorder()
	}
	return &UserAdmin{users: users, hasher: hasher, activity: activity}
}

var _ ports.UserAdminService = (*UserAdmin)(nil)

// List returns the users with password hashes stripped.
func (a *UserAdmin) List() []domain.User {
	return redactUsers(a.users.Snapshot())
}

func (a *UserAdmin) Subscribe(fn func([]domain.User)) (unsubscribe func()) {
	return a.users.Subscribe(func(users []domain.User) { fn(redactUsers(users)) })
}

func (a *UserAdmin) Add(ctx context.Context, user domain.User, password string) (*domain.User, error) {
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if !user.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	hash, err := a.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	created, err := a.users.Add(ctx, user)
	if err != nil {
		return nil, err
	}
	record(a.activity, created.Email, domain.ActionUserAdd, string(created.Role))
	return redact(created), nil
}

// Update merges user into the stored record. An empty password keeps the
// current hash.
func (a *UserAdmin) Update(ctx context.Context, user domain.User, password string) (*domain.User, error) {
	if user.Role != "" && !user.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	user.PasswordHash = ""
	if password != "" {
		hash, err := a.hasher.Hash(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	updated, err := a.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	record(a.activity, updated.Email, domain.ActionUserUpdate, "")
	return redact(updated), nil
}

func (a *UserAdmin) Delete(ctx context.Context, email string) error {
	if err := a.users.Delete(ctx, email); err != nil {
		return err
	}
	record(a.activity, email, domain.ActionUserDelete, "")
	return nil
}

func redact(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	c.PasswordHash = ""
	return &c
}

func redactUsers(users []domain.User) []domain.User {
	out := slices.Clone(users)
	for i := range out {
		out[i].PasswordHash = ""
	}
	return out
}
