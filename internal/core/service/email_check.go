package service

import (
	"context"
	"sync"
	"time"

	"github.com/telemedicina/booking-api/internal/core/domain"
	"github.com/telemedicina/booking-api/internal/core/ports"
)

const defaultEmailDebounce = 500 * time.Millisecond

// EmailCheck answers email availability after a quiet period. Only the most
// recent pending call of a client is answered; older ones are superseded.
type EmailCheck struct {
	users *UserRepository
	delay time.Duration

	mu      sync.Mutex
	pending chan struct{}
}

func NewEmailCheck(users *UserRepository, delay time.Duration) *EmailCheck {
	if delay <= 0 {
		delay = defaultEmailDebounce
	}
	return &EmailCheck{users: users, delay: delay}
}

var _ ports.EmailChecker = (*EmailCheck)(nil)

// Check reports whether email is already registered.
func (c *EmailCheck) Check(ctx context.Context, email string) (bool, error) {
	c.mu.Lock()
	if c.pending != nil {
		close(c.pending)
	}
	mine := make(chan struct{})
	c.pending = mine
	c.mu.Unlock()

	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-mine:
		return false, domain.ErrSuperseded
	case <-ctx.Done():
		c.release(mine)
		return false, ctx.Err()
	case <-timer.C:
	}

	c.release(mine)
	return c.users.EmailExists(email), nil
}

func (c *EmailCheck) release(ch chan struct{}) {
	c.mu.Lock()
	if c.pending == ch {
		c.pending = nil
	}
	c.mu.Unlock()
}
