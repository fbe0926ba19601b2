package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

// AdminAccount is the administrator guaranteed to exist after Bootstrap.
type AdminAccount struct {
	Name     string
	Handle   string
	Email    string
	Password string
}

// Bootstrapper prepares the shared stores before the service accepts traffic.
type Bootstrapper struct {
	users   *UserRepository
	cart    *CartStore
	catalog ports.CatalogClient
	hasher  PasswordHasher
	log     zerolog.Logger
}

// NewBootstrapper returns a Bootstrapper. catalog may be nil, in which case
// no remote seeding is attempted.
func NewBootstrapper(users *UserRepository, cart *CartStore, catalog ports.CatalogClient, hasher PasswordHasher, log zerolog.Logger) *Bootstrapper {
	return &Bootstrapper{users: users, cart: cart, catalog: catalog, hasher: hasher, log: log}
}

// Run seeds empty stores from the remote catalogue and ensures the admin
// account exists. Remote failures are logged and skipped; storage failures
// abort.
func (b *Bootstrapper) Run(ctx context.Context, admin AdminAccount) error {
	if b.catalog != nil {
		if err := b.seedUsers(ctx); err != nil {
			return err
		}
		if err := b.seedCart(ctx); err != nil {
			return err
		}
	}
	return b.EnsureAdmin(ctx, admin)
}

func (b *Bootstrapper) seedUsers(ctx context.Context) error {
	if len(b.users.Snapshot()) > 0 {
		return nil
	}
	remote, err := b.catalog.FetchUsers(ctx)
	if err != nil {
		b.log.Warn().Err(err).Msg("remote users unavailable, starting empty")
		return nil
	}

	users := make([]domain.User, 0, len(remote))
	seen := make(map[string]bool, len(remote))
	for _, ru := range remote {
		if ru.Email == "" || seen[ru.Email] {
			continue
		}
		seen[ru.Email] = true

		// An empty password leaves the hash empty so the account cannot sign in.
		var hash string
		if ru.Password != "" {
			h, err := b.hasher.Hash(ru.Password)
			if err != nil {
				return fmt.Errorf("seed users: %w", err)
			}
			hash = h
		}
		role := ru.Role
		if !role.Valid() {
			role = domain.RoleUser
		}
		users = append(users, domain.User{
			ID:           ru.ID,
			Name:         ru.Name,
			Handle:       ru.Handle,
			Email:        ru.Email,
			PasswordHash: hash,
			Role:         role,
			BirthDate:    ru.BirthDate,
		})
	}
	assignUserIDs(users)

	applied, err := b.users.Seed(ctx, users)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if applied {
		b.log.Info().Int("count", len(users)).Msg("users seeded from remote catalogue")
	}
	return nil
}

func (b *Bootstrapper) seedCart(ctx context.Context) error {
	if len(b.cart.Snapshot()) > 0 {
		return nil
	}
	remote, err := b.catalog.FetchCart(ctx)
	if err != nil {
		b.log.Warn().Err(err).Msg("remote cart unavailable, starting empty")
		return nil
	}

	type pair struct{ email, service string }
	items := make([]domain.CartItem, 0, len(remote))
	seen := make(map[pair]bool, len(remote))
	for _, it := range remote {
		k := pair{it.Email, it.Service}
		if it.Email == "" || it.Service == "" || seen[k] {
			continue
		}
		seen[k] = true
		items = append(items, it)
	}
	assignCartIDs(items)

	applied, err := b.cart.Seed(ctx, items)
	if err != nil {
		return fmt.Errorf("seed cart: %w", err)
	}
	if applied {
		b.log.Info().Int("count", len(items)).Msg("cart seeded from remote catalogue")
	}
	return nil
}

// EnsureAdmin adds the admin account unless its email is already registered.
func (b *Bootstrapper) EnsureAdmin(ctx context.Context, admin AdminAccount) error {
	if admin.Email == "" || b.users.EmailExists(admin.Email) {
		return nil
	}
	hash, err := b.hasher.Hash(admin.Password)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	if _, err := b.users.Add(ctx, domain.User{
		Name:         admin.Name,
		Handle:       admin.Handle,
		Email:        admin.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	b.log.Info().Str("email", admin.Email).Msg("default admin created")
	return nil
}

// assignUserIDs gives records without an id the next free one.
func assignUserIDs(users []domain.User) {
	next := 0
	for _, u := range users {
		next = max(next, u.ID)
	}
	for i := range users {
		if users[i].ID == 0 {
			next++
			users[i].ID = next
		}
	}
}

func assignCartIDs(items []domain.CartItem) {
	next := 0
	for _, it := range items {
		next = max(next, it.ID)
	}
	for i := range items {
		if items[i].ID == 0 {
			next++
			items[i].ID = next
		}
	}
}
