package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

var testHasher = PasswordHasher{Cost: bcrypt.MinCost}

type stubStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	failSet error
}

func newStubStore() *stubStore {
	return &stubStore{data: make(map[string][]byte)}
}

func (s *stubStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ports.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *stubStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet != nil {
		return s.failSet
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *stubStore) raw(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return string(v), ok
}

var errStoreDown = errors.New("store down")

type stubNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *stubNavigator) Navigate(_ context.Context, route string) {
	n.mu.Lock()
	n.routes = append(n.routes, route)
	n.mu.Unlock()
}

func (n *stubNavigator) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}

type stubRecorder struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (r *stubRecorder) Record(e domain.ActivityEvent) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *stubRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

func newTestUsers(t *testing.T, store ports.Store, users ...domain.User) *UserRepository {
	t.Helper()
	repo, err := NewUserRepository(context.Background(), store, zerolog.Nop())
	require.NoError(t, err)
	for _, u := range users {
		_, err := repo.Add(context.Background(), u)
		require.NoError(t, err)
	}
	return repo
}

func userWithPassword(t *testing.T, email, password string, role domain.Role) domain.User {
	t.Helper()
	hash, err := testHasher.Hash(password)
	require.NoError(t, err)
	return domain.User{Name: email, Email: email, PasswordHash: hash, Role: role}
}

type fixture struct {
	store    *stubStore
	users    *UserRepository
	cart     *CartStore
	nav      *stubNavigator
	activity *stubRecorder
	sessions *SessionManager
}

func newFixture(t *testing.T, users ...domain.User) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{store: newStubStore(), nav: &stubNavigator{}, activity: &stubRecorder{}}
	f.users = newTestUsers(t, f.store, users...)

	cart, err := NewCartStore(ctx, f.store, zerolog.Nop())
	require.NoError(t, err)
	f.cart = cart

	sessions, err := NewSessionManager(ctx, ClientStore(f.store, "c1"), f.users, testHasher, f.nav, f.activity, zerolog.Nop())
	require.NoError(t, err)
	f.sessions = sessions
	return f
}
