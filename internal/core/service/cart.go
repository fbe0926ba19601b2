package service

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
	"github.com/telemedicina/booking-api/internal/pkg/observable"
)

const cartKey = "carrito"

// CartStore is the shared appointment collection.
type CartStore struct {
	store ports.Store
	log   zerolog.Logger

	mu    sync.Mutex
	items *observable.Subject[[]domain.CartItem]
}

func NewCartStore(ctx context.Context, store ports.Store, log zerolog.Logger) (*CartStore, error) {
	var items []domain.CartItem
	if _, err := loadJSON(ctx, store, cartKey, &items); err != nil {
		return nil, err
	}
	return &CartStore{store: store, log: log, items: observable.New(items)}, nil
}

func (c *CartStore) Snapshot() []domain.CartItem {
	return slices.Clone(c.items.Value())
}

func (c *CartStore) Subscribe(fn func([]domain.CartItem)) (unsubscribe func()) {
	return c.items.Subscribe(fn)
}

// Add appends item unless its (service, email) pair is already booked, in
// which case it reports added=false.
func (c *CartStore) Add(ctx context.Context, item domain.CartItem) (stored domain.CartItem, added bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.items.Value()
	maxID := 0
	for _, it := range current {
		if it.Service == item.Service && it.Email == item.Email {
			return it, false, nil
		}
		maxID = max(maxID, it.ID)
	}
	item.ID = maxID + 1

	if err := c.commit(ctx, append(slices.Clone(current), item)); err != nil {
		return domain.CartItem{}, false, err
	}
	return item, true, nil
}

// RemoveFunc deletes every item for which match returns true and reports how
// many were removed. Nothing is written when nothing matches.
func (c *CartStore) RemoveFunc(ctx context.Context, match func(domain.CartItem) bool) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.items.Value()
	next := slices.DeleteFunc(slices.Clone(current), match)
	removed := len(current) - len(next)
	if removed == 0 {
		return 0, nil
	}
	if err := c.commit(ctx, next); err != nil {
		return 0, err
	}
	return removed, nil
}

// Seed replaces an empty collection with items.
func (c *CartStore) Seed(ctx context.Context, items []domain.CartItem) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items.Value()) > 0 || len(items) == 0 {
		return false, nil
	}
	if err := c.commit(ctx, slices.Clone(items)); err != nil {
		return false, err
	}
	return true, nil
}

func (c *CartStore) commit(ctx context.Context, next []domain.CartItem) error {
	if err := saveJSON(ctx, c.store, cartKey, next); err != nil {
		c.log.Error().Err(err).Msg("persist cart failed")
		return err
	}
	c.items.Publish(next)
	return nil
}

// CartService is the cart as seen by one client's session. Its item stream is
// re-filtered whenever the cart or the session changes.
type CartService struct {
	cart     *CartStore
	sessions ports.SessionService
	activity ports.ActivityRecorder

	mine  *observable.Subject[[]domain.CartItem]
	unsub []func()
}

func NewCartService(cart *CartStore, sessions ports.SessionService, activity ports.ActivityRecorder) *CartService {
	if activity == nil {
		activity = NopRecorder()
	}
	s := &CartService{
		cart:     cart,
		sessions: sessions,
		activity: activity,
		mine:     observable.New[[]domain.CartItem](nil),
	}
	s.unsub = append(s.unsub,
		cart.Subscribe(func(items []domain.CartItem) {
			s.mine.Publish(itemsFor(items, sessions.Current()))
		}),
		sessions.Subscribe(func(sess *domain.Session) {
			s.mine.Publish(itemsFor(cart.Snapshot(), sess))
		}),
	)
	return s
}

var _ ports.CartService = (*CartService)(nil)

// AddItem books service for the signed-in user.
func (s *CartService) AddItem(ctx context.Context, service string) (domain.AddItemResult, error) {
	sess := s.sessions.Current()
	if sess == nil {
		return domain.NotLoggedInResult(), nil
	}

	item, added, err := s.cart.Add(ctx, domain.CartItem{Service: service, Email: sess.Email})
	if err != nil {
		return domain.AddItemResult{}, err
	}
	if !added {
		return domain.DuplicateResult(), nil
	}
	record(s.activity, sess.Email, domain.ActionCartAdd, service)
	return domain.AddedResult(item), nil
}

// RemoveItem removes one of the current user's items, matched by id when the
// argument carries one and by service otherwise.
func (s *CartService) RemoveItem(ctx context.Context, item domain.CartItem) error {
	sess := s.sessions.Current()
	if sess == nil {
		return domain.ErrNotAuthenticated
	}
	item.Email = sess.Email

	n, err := s.cart.RemoveFunc(ctx, func(it domain.CartItem) bool {
		return it.Email == sess.Email && it.Matches(item)
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}
	record(s.activity, sess.Email, domain.ActionCartRemove, item.Service)
	return nil
}

// ConfirmAppointments clears every item of the current user. It is a no-op
// without a session.
func (s *CartService) ConfirmAppointments(ctx context.Context) error {
	sess := s.sessions.Current()
	if sess == nil {
		return nil
	}
	n, err := s.cart.RemoveFunc(ctx, func(it domain.CartItem) bool { return it.Email == sess.Email })
	if err != nil {
		return err
	}
	if n > 0 {
		record(s.activity, sess.Email, domain.ActionCartConfirm, "")
	}
	return nil
}

func (s *CartService) ItemsForCurrentUser() []domain.CartItem {
	return itemsFor(s.cart.Snapshot(), s.sessions.Current())
}

func (s *CartService) SubscribeItems(fn func([]domain.CartItem)) (unsubscribe func()) {
	return s.mine.Subscribe(fn)
}

// Close detaches the service from the shared cart and the session.
func (s *CartService) Close() {
	for _, u := range s.unsub {
		u()
	}
}

func itemsFor(items []domain.CartItem, sess *domain.Session) []domain.CartItem {
	out := []domain.CartItem{}
	if sess == nil {
		return out
	}
	for _, it := range items {
		if it.Email == sess.Email {
			out = append(out, it)
		}
	}
	return out
}
