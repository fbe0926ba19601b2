package service

import (
	"context"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
	"github.com/telemedicina/booking-api/internal/pkg/observable"
)

// ProfileService joins the client's session with the user repository.
type ProfileService struct {
	users    *UserRepository
	sessions ports.SessionService
	activity ports.ActivityRecorder

	profile *observable.Subject[*domain.User]
	unsub   []func()
}

func NewProfileService(users *UserRepository, sessions ports.SessionService, activity ports.ActivityRecorder) *ProfileService {
	if activity == nil {
		activity = NopRecorder()
	}
	s := &ProfileService{
		users:    users,
		sessions: sessions,
		activity: activity,
		profile:  observable.New[*domain.User](nil),
	}
	s.unsub = append(s.unsub,
		users.Subscribe(func(all []domain.User) {
			s.profile.Publish(profileOf(all, sessions.Current()))
		}),
		sessions.Subscribe(func(sess *domain.Session) {
			s.profile.Publish(profileOf(users.Snapshot(), sess))
		}),
	)
	return s
}

var _ ports.ProfileService = (*ProfileService)(nil)

// CurrentProfile returns the signed-in user's record, or nil.
func (s *ProfileService) CurrentProfile() *domain.User {
	return profileOf(s.users.Snapshot(), s.sessions.Current())
}

func (s *ProfileService) SubscribeProfile(fn func(*domain.User)) (unsubscribe func()) {
	return s.profile.Subscribe(fn)
}

// UpdateProfile merges the editable fields into the current user's record.
// Email is taken from the session; password and role are never touched.
func (s *ProfileService) UpdateProfile(ctx context.Context, in ports.ProfileUpdate) (*domain.User, error) {
	sess := s.sessions.Current()
	if sess == nil {
		return nil, domain.ErrNotAuthenticated
	}
	updated, err := s.users.Update(ctx, domain.User{
		Email:     sess.Email,
		Name:      in.Name,
		Handle:    in.Handle,
		BirthDate: in.BirthDate,
	})
	if err != nil {
		return nil, err
	}
	record(s.activity, sess.Email, domain.ActionProfileUpdate, "")
	return redact(updated), nil
}

func (s *ProfileService) Close() {
	for _, u := range s.unsub {
		u()
	}
}

func profileOf(users []domain.User, sess *domain.Session) *domain.User {
	if sess == nil {
		return nil
	}
	for _, u := range users {
		if u.Email == sess.Email {
			u.PasswordHash = ""
			return &u
		}
	}
	return nil
}
