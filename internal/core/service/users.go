package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
	"github.com/telemedicina/booking-api/internal/pkg/observable"
)

const usersKey = "usuarios"

// UserRepository owns the registered users. Every mutation is written to the
// store before it is published; a failed write leaves the snapshot unchanged.
// Mutations start from the persisted list, not the in-memory snapshot, so
// writes made by another process sharing the store survive.
type UserRepository struct {
	store ports.Store
	log   zerolog.Logger

	mu    sync.Mutex // serialises read-modify-write cycles
	users *observable.Subject[[]domain.User]
}

// NewUserRepository loads the persisted users. An absent key is an empty list.
func NewUserRepository(ctx context.Context, store ports.Store, log zerolog.Logger) (*UserRepository, error) {
	var users []domain.User
	if _, err := loadJSON(ctx, store, usersKey, &users); err != nil {
		return nil, err
	}
	return &UserRepository{
		store: store,
		log:   log,
		users: observable.New(users),
	}, nil
}

// Snapshot returns a copy of the current users.
func (r *UserRepository) Snapshot() []domain.User {
	return slices.Clone(r.users.Value())
}

// Subscribe delivers the current users now and after every mutation.
// Listeners must treat the slice as read-only.
func (r *UserRepository) Subscribe(fn func([]domain.User)) (unsubscribe func()) {
	return r.users.Subscribe(fn)
}

// FindByEmail looks a user up by exact, case-sensitive email.
func (r *UserRepository) FindByEmail(email string) (domain.User, bool) {
	for _, u := range r.users.Value() {
		if u.Email == email {
			return u, true
		}
	}
	return domain.User{}, false
}

func (r *UserRepository) EmailExists(email string) bool {
	_, ok := r.FindByEmail(email)
	return ok
}

// Add stores a new user with the next free id.
func (r *UserRepository) Add(ctx context.Context, user domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.latest(ctx)
	if err != nil {
		return nil, err
	}
	maxID := 0
	for _, u := range current {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
		maxID = max(maxID, u.ID)
	}
	user.ID = maxID + 1

	next := append(slices.Clone(current), user)
	if err := r.commit(ctx, next); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update merges edit into the user with the same email.
func (r *UserRepository) Update(ctx context.Context, edit domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.latest(ctx)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(current, func(u domain.User) bool { return u.Email == edit.Email })
	if idx < 0 {
		return nil, domain.ErrUserNotFound
	}

	next := slices.Clone(current)
	next[idx] = next[idx].Merge(edit)
	if err := r.commit(ctx, next); err != nil {
		return nil, err
	}
	updated := next[idx]
	return &updated, nil
}

// Delete removes the user with the given email.
func (r *UserRepository) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.latest(ctx)
	if err != nil {
		return err
	}
	next := slices.DeleteFunc(slices.Clone(current), func(u domain.User) bool { return u.Email == email })
	if len(next) == len(current) {
		return domain.ErrUserNotFound
	}
	return r.commit(ctx, next)
}

// Seed replaces an empty repository with users. It reports whether the seed
// was applied; a non-empty repository is left untouched.
func (r *UserRepository) Seed(ctx context.Context, users []domain.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.latest(ctx)
	if err != nil {
		return false, err
	}
	if len(current) > 0 || len(users) == 0 {
		return false, nil
	}
	if err := r.commit(ctx, slices.Clone(users)); err != nil {
		return false, err
	}
	return true, nil
}

// Refresh reloads the persisted users and publishes them when another
// process changed them.
func (r *UserRepository) Refresh(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.latest(ctx)
	if err != nil {
		return err
	}
	if !slices.Equal(current, r.users.Value()) {
		r.users.Publish(current)
	}
	return nil
}

// Watch calls Refresh every interval until ctx is done.
func (r *UserRepository) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
				r.log.Warn().Err(err).Msg("refresh users failed")
			}
		}
	}
}

// latest reads the persisted users. Callers hold r.mu.
func (r *UserRepository) latest(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if _, err := loadJSON(ctx, r.store, usersKey, &users); err != nil {
		r.log.Error().Err(err).Msg("reload users failed")
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) commit(ctx context.Context, next []domain.User) error {
	if err := saveJSON(ctx, r.store, usersKey, next); err != nil {
		r.log.Error().Err(err).Msg("persist users failed")
		return err
	}
	r.users.Publish(next)
	return nil
}
