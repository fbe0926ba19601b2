// Package observable provides a current-value holder with synchronous change
// notification, the building block of every state store in the service.
package observable

import "sync"

// Subject holds a current value and a set of listeners. Publish replaces the
// value and notifies listeners synchronously, in registration order, on the
// publishing goroutine.
//
// Listeners must not call Publish or Subscribe on the same Subject.
type Subject[T any] struct {
	emit sync.Mutex // serialises deliveries so listeners see values in publish order

	mu        sync.RWMutex
	value     T
	nextID    uint64
	listeners []listener[T]
}

type listener[T any] struct {
	id uint64
	fn func(T)
}

// New returns a Subject holding initial.
func New[T any](initial T) *Subject[T] {
	return &Subject[T]{value: initial}
}

// Value returns the current value.
func (s *Subject[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Publish stores v and delivers it to every listener.
func (s *Subject[T]) Publish(v T) {
	s.emit.Lock()
	defer s.emit.Unlock()

	s.mu.Lock()
	s.value = v
	ls := make([]listener[T], len(s.listeners))
	copy(ls, s.listeners)
	s.mu.Unlock()

	for _, l := range ls {
		l.fn(v)
	}
}

// Subscribe registers fn and immediately calls it with the current value.
// The returned function removes the listener; calling it more than once is safe.
func (s *Subject[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.emit.Lock()
	defer s.emit.Unlock()

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener[T]{id: id, fn: fn})
	current := s.value
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

// Len returns the number of registered listeners.
func (s *Subject[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners)
}

func (s *Subject[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}
