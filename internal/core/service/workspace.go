package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/telemedicina/booking-api/internal/core/ports"
	"github.com/telemedicina/booking-api/internal/pkg/flash"
)

// WorkspaceOptions tunes the per-client services built by a registry.
type WorkspaceOptions struct {
	NoticeTTL     time.Duration
	EmailDebounce time.Duration
	// OnCountChange, when set, observes the number of live workspaces.
	OnCountChange func(n int)
}

type workspaceEntry struct {
	ws       *ports.Workspace
	cart     *CartService
	profile  *ProfileService
	lastSeen time.Time
	holds    int // open streams; a held entry is never swept
}

func (e *workspaceEntry) close() {
	e.cart.Close()
	e.profile.Close()
}

// WorkspaceRegistry builds and caches the workspace of every client. An
// evicted workspace is rebuilt from the client's persisted session on its
// next request.
type WorkspaceRegistry struct {
	store    ports.Store
	users    *UserRepository
	cart     *CartStore
	hasher   PasswordHasher
	nav      ports.Navigator
	activity ports.ActivityRecorder
	opts     WorkspaceOptions
	log      zerolog.Logger

	mu      sync.Mutex
	entries map[string]*workspaceEntry
}

func NewWorkspaceRegistry(
	store ports.Store,
	users *UserRepository,
	cart *CartStore,
	hasher PasswordHasher,
	nav ports.Navigator,
	activity ports.ActivityRecorder,
	opts WorkspaceOptions,
	log zerolog.Logger,
) *WorkspaceRegistry {
	if activity == nil {
		activity = NopRecorder()
	}
	if opts.NoticeTTL <= 0 {
		opts.NoticeTTL = 3 * time.Second
	}
	return &WorkspaceRegistry{
		store:    store,
		users:    users,
		cart:     cart,
		hasher:   hasher,
		nav:      nav,
		activity: activity,
		opts:     opts,
		log:      log,
		entries:  make(map[string]*workspaceEntry),
	}
}

var _ ports.WorkspaceProvider = (*WorkspaceRegistry)(nil)

// Workspace returns the workspace of clientID, building it on first use.
func (r *WorkspaceRegistry) Workspace(ctx context.Context, clientID string) (*ports.Workspace, error) {
	if ws, ok := r.touch(clientID); ok {
		return ws, nil
	}

	entry, err := r.build(ctx, clientID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if existing, ok := r.entries[clientID]; ok {
		// Lost a race with a concurrent request of the same client.
		existing.lastSeen = time.Now()
		r.mu.Unlock()
		entry.close()
		return existing.ws, nil
	}
	r.entries[clientID] = entry
	n := len(r.entries)
	r.mu.Unlock()

	r.countChanged(n)
	return entry.ws, nil
}

func (r *WorkspaceRegistry) touch(clientID string) (*ports.Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[clientID]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.ws, true
}

func (r *WorkspaceRegistry) build(ctx context.Context, clientID string) (*workspaceEntry, error) {
	log := r.log.With().Str("client", clientID).Logger()
	sessions, err := NewSessionManager(ctx, ClientStore(r.store, clientID), r.users, r.hasher, r.nav, r.activity, log)
	if err != nil {
		return nil, err
	}
	cart := NewCartService(r.cart, sessions, r.activity)
	profile := NewProfileService(r.users, sessions, r.activity)

	entry := &workspaceEntry{
		ws: &ports.Workspace{
			ID:      clientID,
			Session: sessions,
			Cart:    cart,
			Profile: profile,
			Email:   NewEmailCheck(r.users, r.opts.EmailDebounce),
			Notices: flash.New(r.opts.NoticeTTL),
		},
		cart:     cart,
		profile:  profile,
		lastSeen: time.Now(),
	}
	entry.ws.Hold = func() func() { return r.hold(entry) }
	return entry, nil
}

func (r *WorkspaceRegistry) hold(e *workspaceEntry) (release func()) {
	r.mu.Lock()
	e.holds++
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			e.holds--
			e.lastSeen = time.Now()
			r.mu.Unlock()
		})
	}
}

// Len returns the number of live workspaces.
func (r *WorkspaceRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep evicts workspaces not used for longer than idle. Held workspaces are
// kept regardless of age.
func (r *WorkspaceRegistry) Sweep(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)

	r.mu.Lock()
	var evicted []*workspaceEntry
	for id, e := range r.entries {
		if e.holds == 0 && !e.lastSeen.After(cutoff) {
			evicted = append(evicted, e)
			delete(r.entries, id)
		}
	}
	n := len(r.entries)
	r.mu.Unlock()

	for _, e := range evicted {
		e.close()
	}
	if len(evicted) > 0 {
		r.log.Debug().Int("evicted", len(evicted)).Int("live", n).Msg("idle workspaces evicted")
		r.countChanged(n)
	}
	return len(evicted)
}

// Run sweeps idle workspaces every interval until ctx is cancelled.
func (r *WorkspaceRegistry) Run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(idle)
		}
	}
}

func (r *WorkspaceRegistry) countChanged(n int) {
	if r.opts.OnCountChange != nil {
		r.opts.OnCountChange(n)
	}
}
