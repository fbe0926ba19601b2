package ports

import (
	"context"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/pkg/flash"
)

// RegisterInput carries a self-registration request.
type RegisterInput struct {
	Name      string
	Handle    string
	Email     string
	Password  string
	BirthDate string
}

// ProfileUpdate carries the fields a user may edit on their own profile.
type ProfileUpdate struct {
	Name      string
	Handle    string
	BirthDate string
}

// SessionService is one client's session state machine.
type SessionService interface {
	Current() *domain.Session
	Subscribe(fn func(*domain.Session)) (unsubscribe func())
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	CheckEmailExists(email string) bool
	RecoverPassword(ctx context.Context, email, newPassword string) error
}

// CartService is the scheduling cart seen through one client's session.
type CartService interface {
	AddItem(ctx context.Context, service string) (domain.AddItemResult, error)
	RemoveItem(ctx context.Context, item domain.CartItem) error
	ConfirmAppointments(ctx context.Context) error
	ItemsForCurrentUser() []domain.CartItem
	SubscribeItems(fn func([]domain.CartItem)) (unsubscribe func())
}

// ProfileService reads and edits the signed-in user's own record.
type ProfileService interface {
	CurrentProfile() *domain.User
	SubscribeProfile(fn func(*domain.User)) (unsubscribe func())
	UpdateProfile(ctx context.Context, in ProfileUpdate) (*domain.User, error)
}

// EmailChecker answers "is this email taken?" after a quiet period. A newer
// call supersedes a pending one with domain.ErrSuperseded.
type EmailChecker interface {
	Check(ctx context.Context, email string) (bool, error)
}

// NoticeBoard is a client's transient message slot.
type NoticeBoard interface {
	Set(kind flash.Kind, text string)
	Current() (flash.Message, bool)
}

// UserAdminService manages the shared user repository.
type UserAdminService interface {
	List() []domain.User
	Subscribe(fn func([]domain.User)) (unsubscribe func())
	Add(ctx context.Context, user domain.User, password string) (*domain.User, error)
	Update(ctx context.Context, user domain.User, password string) (*domain.User, error)
	Delete(ctx context.Context, email string) error
}

// Workspace bundles the per-client services.
type Workspace struct {
	ID      string
	Session SessionService
	Cart    CartService
	Profile ProfileService
	Email   EmailChecker
	Notices NoticeBoard
	// Hold, when set, keeps the workspace from being evicted until the
	// returned release is called.
	Hold func() (release func())
}

// Pin holds the workspace for the lifetime of a long-lived request such as
// an event stream.
func (w *Workspace) Pin() (release func()) {
	if w.Hold == nil {
		return func() {}
	}
	return w.Hold()
}

// WorkspaceProvider resolves the workspace of a client id.
type WorkspaceProvider interface {
	Workspace(ctx context.Context, clientID string) (*Workspace, error)
}
