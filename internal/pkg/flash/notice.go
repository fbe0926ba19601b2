// Package flash holds short-lived user-facing notices.
package flash

import (
	"sync"
	"time"
)

// Kind is the tone of a notice.
type Kind string

const (
	KindSuccess Kind = "exito"
	KindError   Kind = "error"
)

// Message is a notice shown to the user.
type Message struct {
	Kind Kind   `json:"tipo"`
	Text string `json:"texto"`
}

// Notice is a single-slot message that clears itself after a TTL.
// Every Set bumps a generation counter; a timer only clears the slot if no
// newer message was set since it was armed.
type Notice struct {
	ttl time.Duration

	mu         sync.Mutex
	current    *Message
	generation uint64
	timer      *time.Timer
}

// New returns a Notice whose messages expire after ttl.
func New(ttl time.Duration) *Notice {
	return &Notice{ttl: ttl}
}

// Set replaces the current message and arms its expiry.
func (n *Notice) Set(kind Kind, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.generation++
	gen := n.generation
	n.current = &Message{Kind: kind, Text: text}

	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(gen) })
}

// Current returns the live message, if any.
func (n *Notice) Current() (Message, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Message{}, false
	}
	return *n.current, true
}

// Clear drops the current message immediately.
func (n *Notice) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.generation++
	n.current = nil
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

func (n *Notice) expire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.generation {
		return
	}
	n.current = nil
	n.timer = nil
}
