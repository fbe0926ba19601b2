package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/telemedicina/booking-api/internal/api/middleware"
	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
	"github.com/telemedicina/booking-api/internal/pkg/flash"
	"github.com/telemedicina/booking-api/internal/pkg/navigation"
)

type stubSession struct {
	current    *domain.Session
	loginFn    func(ctx context.Context, email, password string) (*domain.Session, error)
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	recoverFn  func(ctx context.Context, email, password string) error
}

func (s *stubSession) Current() *domain.Session { return s.current }

func (s *stubSession) Subscribe(fn func(*domain.Session)) func() {
	fn(s.current)
	return func() {}
}

func (s *stubSession) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubSession) Logout(context.Context) error {
	s.current = nil
	return nil
}

func (s *stubSession) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubSession) CheckEmailExists(string) bool { return false }

func (s *stubSession) RecoverPassword(ctx context.Context, email, password string) error {
	return s.recoverFn(ctx, email, password)
}

type stubCart struct {
	items    []domain.CartItem
	addFn    func(ctx context.Context, service string) (domain.AddItemResult, error)
	removeFn func(ctx context.Context, item domain.CartItem) error
	// onSubscribe, when set, runs as a stream attaches.
	onSubscribe func()
}

func (s *stubCart) AddItem(ctx context.Context, service string) (domain.AddItemResult, error) {
	return s.addFn(ctx, service)
}

func (s *stubCart) RemoveItem(ctx context.Context, item domain.CartItem) error {
	return s.removeFn(ctx, item)
}

func (s *stubCart) ConfirmAppointments(context.Context) error { return nil }

func (s *stubCart) ItemsForCurrentUser() []domain.CartItem { return s.items }

func (s *stubCart) SubscribeItems(fn func([]domain.CartItem)) func() {
	if s.onSubscribe != nil {
		s.onSubscribe()
	}
	fn(s.items)
	return func() {}
}

type stubProfile struct {
	current  *domain.User
	updateFn func(ctx context.Context, in ports.ProfileUpdate) (*domain.User, error)
}

func (s *stubProfile) CurrentProfile() *domain.User { return s.current }

func (s *stubProfile) SubscribeProfile(fn func(*domain.User)) func() {
	fn(s.current)
	return func() {}
}

func (s *stubProfile) UpdateProfile(ctx context.Context, in ports.ProfileUpdate) (*domain.User, error) {
	return s.updateFn(ctx, in)
}

type stubEmail struct {
	taken map[string]bool
	err   error
}

func (s *stubEmail) Check(_ context.Context, email string) (bool, error) {
	return s.taken[email], s.err
}

type stubNotices struct {
	mu      sync.Mutex
	current *flash.Message
}

func (s *stubNotices) Set(kind flash.Kind, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &flash.Message{Kind: kind, Text: text}
}

func (s *stubNotices) Current() (flash.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return flash.Message{}, false
	}
	return *s.current, true
}

func newWorkspace(sess *stubSession) *ports.Workspace {
	if sess == nil {
		sess = &stubSession{}
	}
	return &ports.Workspace{
		ID:      "c1",
		Session: sess,
		Cart:    &stubCart{},
		Profile: &stubProfile{},
		Email:   &stubEmail{},
		Notices: &stubNotices{},
	}
}

// newContext builds an echo context carrying ws and a navigation recorder,
// the way the router's client middleware chain would.
func newContext(method, target string, body io.Reader, ws *ports.Workspace) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	ctx, _ := navigation.WithRecorder(req.Context())
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if ws != nil {
		c.Set(middleware.ContextWorkspace, ws)
	}
	return c, rec
}

func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}

// disconnectAfterEvent simulates a client that hangs up once it has received
// its first event.
type disconnectAfterEvent struct {
	*httptest.ResponseRecorder
	disconnect context.CancelFunc
}

func (w *disconnectAfterEvent) Write(b []byte) (int, error) {
	n, err := w.ResponseRecorder.Write(b)
	if strings.HasPrefix(string(b), "event:") {
		w.disconnect()
	}
	return n, err
}
